package ucd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/planetscale/runedata/go/runes"
)

// RangeEntry is one parsed line of a range-format UCD file
// (`XXXX[..YYYY] ; PropertyName [# comment]`).
type RangeEntry struct {
	Lo, Hi   rune
	Property string
}

func parseCodePoint(s string) (rune, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad code point %q: %w", s, err)
	}
	if v > uint64(runes.MaxCodePoint) {
		return 0, fmt.Errorf("code point %04X out of range", v)
	}
	return rune(v), nil
}

// ParseRangeLine parses one line of a range-format file. It returns ok=false
// for blank lines and pure comment lines, and an error for anything else
// that does not match the format.
func ParseRangeLine(line string) (entry RangeEntry, ok bool, err error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return RangeEntry{}, false, nil
	}

	cps, prop, found := strings.Cut(line, ";")
	if !found {
		return RangeEntry{}, false, fmt.Errorf("missing ';' separator")
	}
	entry.Property = strings.TrimSpace(prop)
	if entry.Property == "" || strings.ContainsAny(entry.Property, "; \t") {
		return RangeEntry{}, false, fmt.Errorf("bad property name %q", entry.Property)
	}

	lo, hi, isRange := strings.Cut(strings.TrimSpace(cps), "..")
	if entry.Lo, err = parseCodePoint(lo); err != nil {
		return RangeEntry{}, false, err
	}
	entry.Hi = entry.Lo
	if isRange {
		if entry.Hi, err = parseCodePoint(hi); err != nil {
			return RangeEntry{}, false, err
		}
		if entry.Hi < entry.Lo {
			return RangeEntry{}, false, fmt.Errorf("inverted range %04X..%04X", entry.Lo, entry.Hi)
		}
	}
	return entry, true, nil
}

// ParseRangeFile feeds every entry of a range-format file to apply, in file
// order. The first malformed line or apply error aborts the scan.
func ParseRangeFile(r io.Reader, apply func(RangeEntry) error) error {
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		entry, ok, err := ParseRangeLine(sc.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		if !ok {
			continue
		}
		if err := apply(entry); err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	return sc.Err()
}

// unicodeDataFields is the positional field count of UnicodeData.txt per
// UAX #44.
const unicodeDataFields = 15

const (
	fName         = 1
	fCategory     = 2
	fBidi         = 4
	fDecimalDigit = 6
	fDigit        = 7
	fNumeric      = 8
	fUppercase    = 12
	fLowercase    = 13
	fTitlecase    = 14
)

func parseBidi(s string) runes.BidiClass {
	switch s {
	case "L":
		return runes.BidiLeftToRight
	case "R", "AL":
		return runes.BidiRightToLeft
	default:
		return runes.BidiOther
	}
}

func parseDigitField(s string) (int8, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > 9 {
		return -1, fmt.Errorf("bad digit value %q", s)
	}
	return int8(v), nil
}

// parseNumericField evaluates the numeric value field, which may be empty,
// an integer, or a fraction like 1/3. More than one '/' is malformed.
func parseNumericField(s string) (float64, error) {
	if s == "" {
		return -1, nil
	}
	num, den, isFraction := strings.Cut(s, "/")
	if isFraction && strings.Contains(den, "/") {
		return 0, fmt.Errorf("numeric value %q has more than one '/'", s)
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("bad numeric value %q: %w", s, err)
	}
	if !isFraction {
		return n, nil
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, fmt.Errorf("bad fraction denominator in %q", s)
	}
	return n / d, nil
}

func parseMappingDelta(cp rune, field string) (int32, error) {
	if field == "" {
		return 0, nil
	}
	target, err := parseCodePoint(field)
	if err != nil {
		return 0, err
	}
	return int32(target - cp), nil
}

// ParseUnicodeData parses the primary UnicodeData.txt stream and emits one
// record per code point, in file order. `<Name, First>`/`<Name, Last>` pairs
// expand into one record per code point in the range, all sharing the First
// record's fields. Mismatched or dangling range markers and wrong field
// counts are fatal.
func ParseUnicodeData(r io.Reader, emit func(cp rune, rec Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		lineno    int
		rangeName string // pending base name from a ", First>" record
		rangeRec  Record
		rangeLo   rune
	)
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) != unicodeDataFields {
			return fmt.Errorf("line %d: %d fields, want %d", lineno, len(fields), unicodeDataFields)
		}

		cp, err := parseCodePoint(fields[0])
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}
		rec, err := parseDataFields(cp, fields)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineno, err)
		}

		name := fields[fName]
		switch {
		case strings.HasSuffix(name, ", First>"):
			if rangeName != "" {
				return fmt.Errorf("line %d: range %q opened while %q is unclosed", lineno, name, rangeName)
			}
			rangeName = strings.TrimSuffix(name, ", First>")
			rangeRec = rec
			rangeLo = cp
			continue

		case strings.HasSuffix(name, ", Last>"):
			base := strings.TrimSuffix(name, ", Last>")
			if rangeName == "" || base != rangeName {
				return fmt.Errorf("line %d: %q closes no open range (open: %q)", lineno, name, rangeName)
			}
			if cp < rangeLo {
				return fmt.Errorf("line %d: range %q ends at %04X before its start %04X", lineno, base, cp, rangeLo)
			}
			for c := rangeLo; c <= cp; c++ {
				if err := emit(c, rangeRec); err != nil {
					return err
				}
			}
			rangeName = ""
			continue
		}

		if rangeName != "" {
			return fmt.Errorf("line %d: record inside unclosed range %q", lineno, rangeName)
		}
		if err := emit(cp, rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if rangeName != "" {
		return fmt.Errorf("range %q never closed", rangeName)
	}
	return nil
}

func parseDataFields(cp rune, fields []string) (Record, error) {
	rec := DefaultRecord()

	cat, ok := runes.CategoryFromAbbr(fields[fCategory])
	if !ok {
		return rec, fmt.Errorf("unknown general category %q", fields[fCategory])
	}
	rec.Category = cat
	rec.Bidi = parseBidi(fields[fBidi])

	var err error
	if rec.DecimalDigit, err = parseDigitField(fields[fDecimalDigit]); err != nil {
		return rec, err
	}
	if rec.Digit, err = parseDigitField(fields[fDigit]); err != nil {
		return rec, err
	}
	if rec.Numeric, err = parseNumericField(fields[fNumeric]); err != nil {
		return rec, err
	}

	if rec.UppercaseDelta, err = parseMappingDelta(cp, fields[fUppercase]); err != nil {
		return rec, err
	}
	if rec.LowercaseDelta, err = parseMappingDelta(cp, fields[fLowercase]); err != nil {
		return rec, err
	}
	// An empty titlecase field means the titlecase mapping equals the
	// uppercase mapping (UAX #44).
	title := fields[fTitlecase]
	if title == "" {
		rec.TitlecaseDelta = rec.UppercaseDelta
	} else if rec.TitlecaseDelta, err = parseMappingDelta(cp, title); err != nil {
		return rec, err
	}
	return rec, nil
}

// ParseCaseFolding parses CaseFolding.txt and returns the simple case fold
// deltas. Only rows with status C (common) or S (simple) contribute; full
// and Turkic-special rows are ignored.
func ParseCaseFolding(r io.Reader) (map[rune]int32, error) {
	folds := make(map[rune]int32)
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: %d fields, want at least 3", lineno, len(fields))
		}
		status := strings.TrimSpace(fields[1])
		if status != "C" && status != "S" {
			continue
		}
		cp, err := parseCodePoint(fields[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		target, err := parseCodePoint(fields[2])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
		folds[cp] = int32(target - cp)
	}
	return folds, sc.Err()
}
