package notify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotify(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name      string
		notice    Notice
		wantLines []string
		wantLevel string
	}{
		{
			name:      "error",
			notice:    Errorf("Error", "Failed to read:\n%s", "/tmp/a.stm"),
			wantLines: []string{"Error: Failed to read:", "/tmp/a.stm"},
			wantLevel: `"level":"error"`,
		},
		{
			name:      "warning",
			notice:    Warningf("Warning", "No theatres selected."),
			wantLines: []string{"Warning: No theatres selected."},
			wantLevel: `"level":"warn"`,
		},
		{
			name:      "info_without_title",
			notice:    Infof("", "No directory selected."),
			wantLines: []string{"No directory selected."},
			wantLevel: `"level":"info"`,
		},
		{
			name:      "success_with_items",
			notice:    Success("Success", "Files created:", []string{"Nevada-a.stm", "Syria-a.stm"}),
			wantLines: []string{"Success: Files created:", "    Nevada-a.stm", "    Syria-a.stm"},
			wantLevel: `"items":["Nevada-a.stm","Syria-a.stm"]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			logs := &bytes.Buffer{}
			logger := zerolog.New(logs)
			ctx := logger.WithContext(context.Background())

			New(out).Notify(ctx, tt.notice)

			for _, want := range tt.wantLines {
				assert.Contains(t, out.String(), want)
			}
			require.NotEmpty(t, logs.String())
			assert.Contains(t, logs.String(), tt.wantLevel)
		})
	}
}

func TestNotifyItemsOrder(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	out := &bytes.Buffer{}
	New(out).Notify(context.Background(), Success("Success", "Files created:", []string{"b", "a"}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "    b", lines[len(lines)-2])
	assert.Equal(t, "    a", lines[len(lines)-1])
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "info", KindInfo.String())
	assert.Equal(t, "warning", KindWarning.String())
	assert.Equal(t, "error", KindError.String())
	assert.Equal(t, "success", KindSuccess.String())
}
