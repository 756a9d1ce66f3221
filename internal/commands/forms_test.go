package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredField(t *testing.T) {
	validate := requiredField("name")

	require.Error(t, validate(""))
	assert.EqualError(t, validate(""), "name is required")
	assert.NoError(t, validate("Ada"))
}

func TestValidFloat(t *testing.T) {
	tests := []struct {
		input string
		ok    bool
	}{
		{"19.99", true},
		{"0", true},
		{"-3.5", true},
		{"", false},
		{"abc", false},
		{"1,50", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := validFloat(tt.input)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidInt(t *testing.T) {
	assert.NoError(t, validInt("42"))
	assert.NoError(t, validInt("0"))
	assert.Error(t, validInt("4.2"))
	assert.Error(t, validInt(""))
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	got := DefaultConfigPath()
	assert.Equal(t, filepath.Join("/tmp/xdg", "storekeep", "config.yaml"), got)
}

func TestDefaultConfigPath_FallsBackToHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/tester")

	got := DefaultConfigPath()
	assert.Equal(t, filepath.Join("/home/tester", ".config", "storekeep", "config.yaml"), got)
}
