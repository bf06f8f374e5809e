package command

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/planetscale/runedata/go/runes"
	"github.com/planetscale/runedata/go/runes/utrie"
)

var Inspect = &cobra.Command{
	Use:   "inspect <blob>",
	Short: "Prints the header and section sizes of a table blob.",
	Args:  cobra.ExactArgs(1),
	RunE:  commandInspect,
}

func commandInspect(cmd *cobra.Command, args []string) error {
	blob, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	header, rest, err := runes.ParseTableHeader(blob)
	if err != nil {
		return err
	}
	trie, values, err := utrie.Parse(rest)
	if err != nil {
		return err
	}
	n1, n2, n3 := trie.SectionLengths()

	kind := "category/casing"
	if header.Kind == runes.KindNumericGrapheme {
		kind = "numeric/grapheme"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:         %s (%d bytes)\n", args[0], len(blob))
	fmt.Fprintf(out, "kind:         %s (version %d)\n", kind, header.Version)
	fmt.Fprintf(out, "value tuples: %d\n", header.ValueCount)
	fmt.Fprintf(out, "trie:         index1=%d index2=%d index3=%d (%d bytes)\n",
		n1, n2, n3, trie.SerializedSize())
	fmt.Fprintf(out, "value arrays: %d bytes\n", len(values))
	return nil
}

func init() {
	Root.AddCommand(Inspect)
}
