package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		input string
		want  EventKind
	}{
		{"", EventStartup},
		{"startup", EventStartup},
		{"upload", EventUpload},
		{"load", EventLoad},
		{"reset", EventReset},
	}
	for _, tt := range tests {
		got, err := ParseEventKind(tt.input)
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestParseEventKindUnknown(t *testing.T) {
	for _, input := range []string{"click", "LOAD", "start up"} {
		if _, err := ParseEventKind(input); err == nil {
			t.Errorf("ParseEventKind(%q) should fail", input)
		}
	}
}

func TestEventKindString(t *testing.T) {
	for _, e := range []EventKind{EventStartup, EventUpload, EventLoad, EventReset} {
		parsed, err := ParseEventKind(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, parsed)
	}
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}
