// Package tabledata embeds the serialized property tables produced by the
// runedatagen tool. Regenerate with:
//
//	runedatagen generate --ucd <dir with UCD files> --out go/runes/internal/tabledata
package tabledata

import _ "embed"

// CategoryCasing is the serialized general category, bidi class, white
// space and simple case mapping table.
//
//go:embed category_casing.bin
var CategoryCasing []byte

// NumericGrapheme is the serialized decimal/digit/numeric value and
// grapheme cluster break table.
//
//go:embed numeric_grapheme.bin
var NumericGrapheme []byte
