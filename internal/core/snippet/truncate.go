package snippet

import "unicode/utf8"

// TruncateUTF8 shortens text to at most maxBytes bytes without splitting a
// multi-byte UTF-8 sequence. The boolean reports whether text was longer than
// maxBytes. A negative maxBytes is treated as zero.
func TruncateUTF8(text string, maxBytes int) (string, bool) {
	if text == "" || len(text) <= maxBytes {
		return text, false
	}
	if maxBytes < 0 {
		maxBytes = 0
	}

	cut := text[:maxBytes]
	// Only the final rune can be incomplete; look back at most UTFMax bytes.
	for i := len(cut) - 1; i >= 0 && i >= len(cut)-utf8.UTFMax; i-- {
		if utf8.RuneStart(cut[i]) {
			if !utf8.FullRuneInString(cut[i:]) {
				cut = cut[:i]
			}
			break
		}
	}
	return cut, true
}
