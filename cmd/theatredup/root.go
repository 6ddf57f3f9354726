package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/theatredup/pkg/config"
	"github.com/walteh/theatredup/pkg/dialog"
	"github.com/walteh/theatredup/pkg/fileset"
	"github.com/walteh/theatredup/pkg/log"
	"github.com/walteh/theatredup/pkg/notify"
	"github.com/walteh/theatredup/pkg/operation"
)

// rootFlags holds the flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	outputDir  string
	async      bool
}

// newRootCmd builds the command tree. newDialogs is called once per run.
func newRootCmd(newDialogs func() dialog.Dialogs) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "theatredup [files or globs...]",
		Short: "Duplicate mission templates into other theatres",
		Long: `theatredup copies mission template files once per chosen theatre,
rewriting the ["theatre"] assignment in each copy.
It will:
1. Read the given files, or ask for them when none are given
2. Ask which theatres to generate
3. Ask for the output directory
4. Write {theatre}-{file} for every file and theatre`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd, flags.debug)
			cmd.SetContext(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDuplicate(cmd, flags, newDialogs(), args)
		},
	}

	addRootFlags(cmd, flags)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "config file path")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVarP(&flags.outputDir, "out", "o", "", "suggested output directory")
	cmd.Flags().BoolVar(&flags.async, "async", false, "return as soon as interrupted, without waiting for the current step")
}

// setupLogging installs the diagnostic logger and the console logger in the
// command context
func setupLogging(cmd *cobra.Command, debug bool) context.Context {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	logger := newLogger(cmd.ErrOrStderr(), level)
	zerolog.DefaultContextLogger = &logger

	ctx := logger.WithContext(cmd.Context())
	return log.NewContext(ctx, log.New(cmd.OutOrStdout(), logger))
}

func newLogger(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()
}

func runDuplicate(cmd *cobra.Command, flags *rootFlags, dialogs dialog.Dialogs, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadOptional(ctx, flags.configFile, cmd.Flags().Changed("config"))
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	// the config can only raise the level
	if cfg.Debug && !flags.debug {
		ctx = setupLogging(cmd, true)
	}

	outputDir := cfg.OutputDir
	if flags.outputDir != "" {
		outputDir = flags.outputDir
	}

	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	op, err := operation.New(operation.Options{
		Args:      args,
		Dir:       wd,
		OutputDir: outputDir,
		Filter:    fileset.ExtensionFilter(cfg.Extension),
		Dialogs:   dialogs,
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("config", cfg.Location()).
		Str("extension", cfg.Extension).
		Str("output_dir", outputDir).
		Strs("args", args).
		Msg("starting")

	return operation.NewRunner(flags.async).Run(ctx, op)
}

// exitCode shows errors no operation has shown yet and maps err to a
// process status
func exitCode(ctx context.Context, w io.Writer, err error) int {
	if err != nil && !operation.IsFatal(err) && !errors.Is(err, operation.ErrCancelled) {
		notify.New(w).Notify(ctx, notify.Errorf("Error", "%v", err))
	}
	return operation.ExitCode(err)
}
