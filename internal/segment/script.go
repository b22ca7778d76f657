package segment

// IsKanji reports whether r is a CJK ideograph or the iteration mark 々.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFC) || // CJK Unified Ideographs
		(r >= 0xF900 && r <= 0xFAFF) || // CJK Compatibility Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // Extension A
		(r >= 0x20000 && r <= 0x2A6DD) || // Extension B
		(r >= 0x2A700 && r <= 0x2B734) || // Extension C
		(r >= 0x2B740 && r <= 0x2B81D) || // Extension D
		(r >= 0x2B820 && r <= 0x2CEA1) || // Extension E
		(r >= 0x2CEB0 && r <= 0x2EBE0) || // Extension F
		(r >= 0x2F800 && r <= 0x2FA1D) || // Compatibility Ideographs Supplement
		(r >= 0x30000 && r <= 0x3134A) || // Extension G
		r == 0x3005 // 々
}

// IsHiragana reports whether r is a Hiragana letter.
func IsHiragana(r rune) bool {
	return (r >= 0x3041 && r <= 0x3096) ||
		r == 0x1B001 || // Kana Supplement
		r == 0x1B11F || // Kana Extended-A
		(r >= 0x1B150 && r <= 0x1B152) // Small Kana Extension
}

// IsKatakana reports whether r is a Katakana letter or the prolonged sound mark ー.
func IsKatakana(r rune) bool {
	return (r >= 0x30A1 && r <= 0x30FA) ||
		r == 0x30FC || // ー
		(r >= 0x31F0 && r <= 0x31FF) || // Phonetic Extensions
		(r >= 0xFF66 && r <= 0xFF9D) || // Halfwidth Katakana
		r == 0x1B000 || // Kana Supplement
		(r >= 0x1B164 && r <= 0x1B167) // Small Kana Extension
}

// IsJapanese reports whether r is Kanji, Hiragana or Katakana.
func IsJapanese(r rune) bool {
	return IsKanji(r) || IsHiragana(r) || IsKatakana(r)
}

// IsJapaneseText reports whether every character of s is Japanese script.
// Mixed tokens such as "２階" are rejected as a whole.
func IsJapaneseText(s string) bool {
	for _, r := range s {
		if !IsJapanese(r) {
			return false
		}
	}
	return true
}
