package runes

// SimpleCaseMap applies the simple (1:1) case mapping m to cp. Code points
// without the requested mapping are returned unchanged. The result never
// leaves cp's 64K plane. Panics if cp is outside [0, 0x10FFFF].
func SimpleCaseMap(cp rune, m CaseMapping) rune {
	checkCodePoint(cp)
	return defaultTables().SimpleCaseMap(cp, m)
}

// ToUpper returns the simple uppercase mapping of cp.
// Panics if cp is outside [0, 0x10FFFF].
func ToUpper(cp rune) rune {
	checkCodePoint(cp)
	return defaultTables().SimpleCaseMap(cp, Uppercase)
}

// ToLower returns the simple lowercase mapping of cp.
// Panics if cp is outside [0, 0x10FFFF].
func ToLower(cp rune) rune {
	checkCodePoint(cp)
	return defaultTables().SimpleCaseMap(cp, Lowercase)
}

// ToTitle returns the simple titlecase mapping of cp.
// Panics if cp is outside [0, 0x10FFFF].
func ToTitle(cp rune) rune {
	checkCodePoint(cp)
	return defaultTables().SimpleCaseMap(cp, Titlecase)
}

// Fold returns the simple case folding of cp.
// Panics if cp is outside [0, 0x10FFFF].
func Fold(cp rune) rune {
	checkCodePoint(cp)
	return defaultTables().SimpleCaseMap(cp, CaseFolding)
}
