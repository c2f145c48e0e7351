package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerissecure/typstxl/internal/xlsxtest"
)

func writeWorkbook(t *testing.T, sheets ...xlsxtest.Sheet) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, os.WriteFile(path, xlsxtest.Build(sheets...), 0o644))
	return path
}

func simpleSheet() xlsxtest.Sheet {
	return xlsxtest.Sheet{
		Merges: []string{"A1:B1"},
		Cells: []xlsxtest.Cell{
			{Ref: "A1", Text: "Title"},
			{Ref: "A2", Text: "a"},
			{Ref: "B2", Text: "b"},
		},
	}
}

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunRecord(t *testing.T) {
	path := writeWorkbook(t, simpleSheet())

	code, out, _ := runCLI(path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "[dimensions]")
	assert.Contains(t, out, `range = "A1:B1"`)
}

func TestRunMarkup(t *testing.T) {
	path := writeWorkbook(t, simpleSheet())

	code, out, _ := runCLI("--mode", "markup", path)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, "table(\n  columns: 2,\n  rows: 2,\n  table.cell(colspan: 2)[Title],\n  [a], [b],\n)\n", out)

	code, out, _ = runCLI("-m", "markup", "--cbor", path)
	require.Equal(t, ExitSuccess, code)
	assert.Equal(t, byte(3), out[0]>>5)
}

func TestRunOutputFile(t *testing.T) {
	path := writeWorkbook(t, simpleSheet())
	dest := filepath.Join(t.TempDir(), "out.toml")

	code, out, _ := runCLI("-o", dest, path)
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_rows = 2")
}

func TestRunConfigFile(t *testing.T) {
	path := writeWorkbook(t, simpleSheet(), xlsxtest.Sheet{Cells: []xlsxtest.Cell{{Ref: "A1", Text: "second"}}})
	cfg := filepath.Join(t.TempDir(), "typstxl.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("sheet: 1\nmode: markup\n"), 0o644))

	code, out, _ := runCLI("-c", cfg, path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "[second]")

	// flags override the file
	code, out, _ = runCLI("-c", cfg, "--sheet", "0", path)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, out, "[Title]")
}

func TestRunExitCodes(t *testing.T) {
	path := writeWorkbook(t, simpleSheet())
	errPath := writeWorkbook(t, xlsxtest.Sheet{Cells: []xlsxtest.Cell{{Ref: "B3", Error: "#DIV/0!"}}})

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"no input", nil, ExitUsage},
		{"unknown flag", []string{"--nope", path}, ExitUsage},
		{"bad mode", []string{"--mode", "html", path}, ExitUsage},
		{"missing file", []string{filepath.Join(t.TempDir(), "none.xlsx")}, ExitIO},
		{"sheet out of range", []string{"--sheet", "5", path}, ExitConversion},
		{"cell error", []string{errPath}, ExitConversion},
		{"version", []string{"--version"}, ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRunLogsConversionError(t *testing.T) {
	path := writeWorkbook(t, xlsxtest.Sheet{Cells: []xlsxtest.Cell{{Ref: "B3", Error: "#DIV/0!"}}})

	code, out, errOut := runCLI(path)
	assert.Equal(t, ExitConversion, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "conversion failed")
	assert.Contains(t, errOut, "error in cell B3: #DIV/0!")
}
