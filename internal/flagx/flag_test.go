package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-c", "conf.json", "-a", "http://localhost"},
			allowed: []string{"-c"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "equals form",
			args:    []string{"-config=alt.json", "-a", "http://localhost"},
			allowed: []string{"-c", "-config"},
			want:    []string{"-config=alt.json"},
		},
		{
			name:    "unknown flags dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "flag at end without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "next token looks like a flag",
			args:    []string{"-c", "-t", "5"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "several allowed flags keep order",
			args:    []string{"-a", "http://h:1", "-d", "x.db", "-l", "debug"},
			allowed: []string{"-a", "-l"},
			want:    []string{"-a", "http://h:1", "-l", "debug"},
		},
		{
			name:    "terminator stops scanning",
			args:    []string{"-a", "http://h:1", "--", "-c", "conf.json"},
			allowed: []string{"-a", "-c"},
			want:    []string{"-a", "http://h:1"},
		},
		{
			name:    "empty",
			args:    []string{},
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short flag", func(t *testing.T) {
		os.Args = []string{"tm", "-c", "/tmp/short.json"}
		assert.Equal(t, "/tmp/short.json", ConfigPath())
	})

	t.Run("long flag", func(t *testing.T) {
		os.Args = []string{"tm", "-config", "/tmp/long.json", "-a", "http://x"}
		assert.Equal(t, "/tmp/long.json", ConfigPath())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"tm", "-c", "/tmp/1.json", "-config=/tmp/2.json"}
		assert.Equal(t, "/tmp/2.json", ConfigPath())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"tm", "-a", "http://x"}
		assert.Empty(t, ConfigPath())
	})
}
