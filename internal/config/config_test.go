package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/typstxl"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ModeRecord, cfg.Mode)
	assert.Equal(t, 0, cfg.Sheet)
	assert.Equal(t, ParseConfig{}, cfg.Parse)
	assert.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
sheet: 2
mode: markup
parse:
  alignment: true
  fontStyle: true
  tableStyle: true
`))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Sheet)
	assert.Equal(t, ModeMarkup, cfg.Mode)
	assert.Equal(t, ParseConfig{Alignment: true, FontStyle: true, TableStyle: true}, cfg.Parse)

	assert.Equal(t, typstxl.Options{
		SheetIndex: 2,
		Alignment:  true,
		FontStyle:  true,
		TableStyle: true,
	}, cfg.Options())
}

func TestParseKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("parse:\n  border: true\n"))
	require.NoError(t, err)
	assert.Equal(t, ModeRecord, cfg.Mode)
	assert.True(t, cfg.Parse.Border)

	cfg, err = Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"unknown field", "sheet: 0\ncolour: red\n", ErrConfigParse},
		{"wrong type", "sheet: first\n", ErrConfigParse},
		{"bad mode", "mode: html\n", ErrInvalidMode},
		{"negative sheet", "sheet: -1\n", ErrInvalidSheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "typstxl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mode: markup\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeMarkup, cfg.Mode)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)

	big := filepath.Join(dir, "big.yaml")
	require.NoError(t, os.WriteFile(big, []byte("# "+strings.Repeat("x", MaxFileSize)), 0o644))
	_, err = Load(big)
	assert.ErrorIs(t, err, ErrConfigParse)
}
