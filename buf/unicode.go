package buf

import "github.com/unilibs/uniwidth"

// Control-code rendering width, e.g. `^@`..`^_`, `^?`.
const controlCodeWidth = 2

// CharWidth returns the number of terminal cells rune r occupies when
// rendered under opt. It is a total function: every rune, including
// surrogate-range and unassigned code points, maps to a non-negative
// width.
func CharWidth(opt *TextOptions, r rune) int {
	switch r {
	case '\n':
		return 0
	case '\r':
		switch opt.FileFormat() {
		case Dos, Mac:
			// Absorbed by the following LF (Dos) or is the sole EOL (Mac);
			// neither renders the literal ^M glyph.
			return 0
		default:
			return controlCodeWidth
		}
	case '\t':
		return opt.TabStop()
	}

	if r == 0x7f || (r >= 0x00 && r <= 0x1f) {
		return controlCodeWidth
	}

	w := uniwidth.RuneWidth(r)
	if w < 0 {
		// uniwidth reports -1 for unassigned/combining-only code points it
		// cannot classify; treat as zero-width rather than propagating a
		// negative width into the prefix-sum index.
		return 0
	}
	if w == 1 && opt.AmbiWidth() == AmbiWidthWide && isAmbiguousWidth(r) {
		return 2
	}
	return w
}

// ControlCodeGlyph renders an ASCII control code the way Vim does:
// `^@`..`^_` for 0x00-0x1f, and `^?` for DEL (0x7f).
func ControlCodeGlyph(r rune) string {
	if r == 0x7f {
		return "^?"
	}
	if r >= 0x00 && r <= 0x1f {
		return string([]rune{'^', rune('@' + r)})
	}
	return string(r)
}

// isAmbiguousWidth reports whether r falls in the East-Asian "Ambiguous"
// width class, whose rendered width depends on terminal/locale
// configuration rather than being fixed by the Unicode tables alone.
// uniwidth already resolves Ambiguous runes to 1 cell by default; this
// check widens the common Latin-1 supplement / box-drawing / Cyrillic
// ambiguous ranges when the user has opted into "ambiwidth=wide".
func isAmbiguousWidth(r rune) bool {
	switch {
	case r >= 0x00A1 && r <= 0x00FF: // Latin-1 Supplement punctuation/letters
		return true
	case r >= 0x2010 && r <= 0x2027: // General punctuation
		return true
	case r >= 0x2500 && r <= 0x257F: // Box drawing
		return true
	case r >= 0x2580 && r <= 0x259F: // Block elements
		return true
	case r >= 0x25A0 && r <= 0x25FF: // Geometric shapes
		return true
	case r >= 0x2E80 && r <= 0x303E: // CJK radicals / symbols
		return true
	case r >= 0xFF00 && r <= 0xFF60: // Fullwidth forms (already wide though)
		return true
	}
	return false
}
