package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planetscale/runedata/go/runes"
)

func TestGenerateAndInspect(t *testing.T) {
	outDir := t.TempDir()

	Root.SetArgs([]string{"generate", "--ucd", filepath.Join("..", "..", "..", "runes", "ucd", "testdata", "gz"), "--out", outDir})
	require.NoError(t, Root.Execute())

	categoryCasing, err := os.ReadFile(filepath.Join(outDir, FileCategoryCasing))
	require.NoError(t, err)
	numericGrapheme, err := os.ReadFile(filepath.Join(outDir, FileNumericGrapheme))
	require.NoError(t, err)

	tables, err := runes.LoadTables(categoryCasing, numericGrapheme)
	require.NoError(t, err)
	assert.Equal(t, runes.UppercaseLetter, tables.Category('A'))
	assert.Equal(t, runes.DecimalDigitNumber, tables.Category('0'))

	var out bytes.Buffer
	Root.SetOut(&out)
	Root.SetArgs([]string{"inspect", filepath.Join(outDir, FileCategoryCasing)})
	require.NoError(t, Root.Execute())
	assert.Contains(t, out.String(), "category/casing")
	assert.Contains(t, out.String(), "value tuples")
}

func TestGenerateMissingInput(t *testing.T) {
	Root.SetArgs([]string{"generate", "--ucd", t.TempDir(), "--out", t.TempDir()})
	assert.Error(t, Root.Execute())
}
