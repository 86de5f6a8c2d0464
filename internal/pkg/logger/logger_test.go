package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(DebugLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestConfigure_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Info().Str("program", "leadership").Msg("seeded")

	out := buf.String()
	assert.Contains(t, out, `"program":"leadership"`)
	assert.Contains(t, out, `"message":"seeded"`)
}

func TestConfigure_WritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "academy.log")
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf, File: FileConfig{Path: path, MaxSizeMB: 1}})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	l := WithComponent("test")
	l.Info().Msg("to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.Contains(t, buf.String(), "to file")
}
