package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNotifyTime(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"09:30", "09:30", true},
		{"9:30", "09:30", true},
		{"9.30", "09:30", true},
		{" 23:59 ", "23:59", true},
		{"0:00", "00:00", true},
		{"00:00", "00:00", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"abc", "", false},
		{"9:5", "", false},
		{"930", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeNotifyTime(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNotifyTime(t *testing.T) {
	assert.True(t, NotifyTime("7.45", nil))
	assert.False(t, NotifyTime("25:00", nil))
}
