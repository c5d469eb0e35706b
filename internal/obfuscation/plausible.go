package obfuscation

// IsPlausibleText reports whether b could be a fragment of UTF-8 text.
//
// Control bytes other than tab, line feed and carriage return are rejected,
// as are 0xC0 and 0xC1 (never valid lead bytes) and anything from 0xF5 up
// (past the Unicode range). Multi-byte sequences are not checked for
// completeness because callers pass arbitrary slices of a larger text.
func IsPlausibleText(b []byte) bool {
	for _, c := range b {
		switch {
		case c < 0x20:
			if c != '\t' && c != '\n' && c != '\r' {
				return false
			}
		case c == 0xC0, c == 0xC1:
			return false
		case c >= 0xF5:
			return false
		}
	}
	return true
}
