package theatre

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	got := Names()
	require.Len(t, got, 13)
	assert.Equal(t, "Afghanistan", got[0])
	assert.Equal(t, "Syria", got[len(got)-1])

	// callers must not be able to mutate the enumeration
	got[0] = "Mars"
	assert.Equal(t, "Afghanistan", Names()[0])
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "known", in: "Nevada", want: true},
		{name: "case_sensitive", in: "nevada", want: false},
		{name: "unknown", in: "Mars", want: false},
		{name: "empty", in: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}
