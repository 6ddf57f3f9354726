// Package notify shows operator-facing notices: errors, warnings, information
// and success summaries.
package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 🎨 Kind is the severity of a notice
type Kind int

const (
	KindInfo Kind = iota
	KindWarning
	KindError
	KindSuccess
)

func (k Kind) String() string {
	switch k {
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	case KindSuccess:
		return "success"
	default:
		return "info"
	}
}

// 🖼️ Notice is one message for the operator
type Notice struct {
	Kind    Kind
	Title   string
	Message string
	Items   []string // listed under the message, one per line
}

// Errorf builds an error notice.
func Errorf(title, format string, args ...interface{}) Notice {
	return Notice{Kind: KindError, Title: title, Message: fmt.Sprintf(format, args...)}
}

// Warningf builds a warning notice.
func Warningf(title, format string, args ...interface{}) Notice {
	return Notice{Kind: KindWarning, Title: title, Message: fmt.Sprintf(format, args...)}
}

// Infof builds an info notice.
func Infof(title, format string, args ...interface{}) Notice {
	return Notice{Kind: KindInfo, Title: title, Message: fmt.Sprintf(format, args...)}
}

// Success builds a success notice listing items.
func Success(title, message string, items []string) Notice {
	return Notice{Kind: KindSuccess, Title: title, Message: message, Items: items}
}

// 📢 Notifier prints notices with pterm and mirrors them to zerolog
type Notifier struct {
	out io.Writer
}

// 🎯 New creates a notifier writing to out, or stderr when out is nil
func New(out io.Writer) *Notifier {
	if out == nil {
		out = os.Stderr
	}
	return &Notifier{out: out}
}

func (n *Notifier) printer(kind Kind) *pterm.PrefixPrinter {
	switch kind {
	case KindWarning:
		return pterm.Warning.WithPrefix(pterm.Prefix{Text: "⚠️", Style: pterm.Warning.Prefix.Style}).WithWriter(n.out)
	case KindError:
		return pterm.Error.WithPrefix(pterm.Prefix{Text: "❌", Style: pterm.Error.Prefix.Style}).WithWriter(n.out)
	case KindSuccess:
		return pterm.Success.WithPrefix(pterm.Prefix{Text: "✅", Style: pterm.Success.Prefix.Style}).WithWriter(n.out)
	default:
		return pterm.Info.WithPrefix(pterm.Prefix{Text: "ℹ️", Style: pterm.Info.Prefix.Style}).WithWriter(n.out)
	}
}

// 📝 Notify shows the notice
func (n *Notifier) Notify(ctx context.Context, notice Notice) {
	msg := notice.Message
	if notice.Title != "" {
		msg = notice.Title + ": " + msg
	}

	n.printer(notice.Kind).Println(msg)
	for _, item := range notice.Items {
		fmt.Fprintf(n.out, "    %s\n", item)
	}

	logger := zerolog.Ctx(ctx)
	var event *zerolog.Event
	switch notice.Kind {
	case KindError:
		event = logger.Error()
	case KindWarning:
		event = logger.Warn()
	default:
		event = logger.Info()
	}
	event.Str("kind", notice.Kind.String()).Strs("items", notice.Items).Msg(msg)
}
