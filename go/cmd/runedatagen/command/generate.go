package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planetscale/runedata/go/runes"
	"github.com/planetscale/runedata/go/runes/tablegen"
	"github.com/planetscale/runedata/go/runes/ucd"
)

// Output file names, matching what go/runes/internal/tabledata embeds.
const (
	FileCategoryCasing  = "category_casing.bin"
	FileNumericGrapheme = "numeric_grapheme.bin"
)

var (
	Generate = &cobra.Command{
		Use:   "generate --ucd <dir> --out <dir>",
		Short: "Builds both lookup table blobs from a UCD directory.",
		Long: `Reads the five UCD source files (plain or gzipped) from the --ucd
directory, builds the category/casing and numeric/grapheme table blobs, and
writes them to the --out directory. Nothing is written unless both tables
build successfully, so a failed run never leaves the output half updated.`,
		DisableFlagsInUseLine: true,
		Args:                  cobra.NoArgs,
		RunE:                  commandGenerate,
	}

	generateOptions = struct {
		ucdDir string
		outDir string
	}{}
)

func commandGenerate(cmd *cobra.Command, args []string) error {
	db, err := ucd.Load(generateOptions.ucdDir)
	if err != nil {
		return err
	}
	log.Info("parsed character database",
		zap.String("dir", generateOptions.ucdDir),
		zap.Int("code_points", db.Len()))

	categoryCasing, err := tablegen.BuildCategoryCasing(db)
	if err != nil {
		return err
	}
	numericGrapheme, err := tablegen.BuildNumericGrapheme(db)
	if err != nil {
		return err
	}

	// Loading the fresh blobs exercises the same validation the runtime
	// performs on its embedded copies.
	if _, err := runes.LoadTables(categoryCasing, numericGrapheme); err != nil {
		return fmt.Errorf("generated tables failed validation: %w", err)
	}

	for _, out := range []struct {
		name string
		blob []byte
	}{
		{FileCategoryCasing, categoryCasing},
		{FileNumericGrapheme, numericGrapheme},
	} {
		path := filepath.Join(generateOptions.outDir, out.name)
		if err := os.WriteFile(path, out.blob, 0o644); err != nil {
			return err
		}
		log.Info("wrote table blob",
			zap.String("path", path),
			zap.Int("bytes", len(out.blob)))
	}

	return nil
}

func init() {
	Generate.Flags().StringVar(&generateOptions.ucdDir, "ucd", "", "Directory containing the UCD source files.")
	Generate.Flags().StringVar(&generateOptions.outDir, "out", ".", "Directory the table blobs are written to.")
	Generate.MarkFlagRequired("ucd")
	Root.AddCommand(Generate)
}
