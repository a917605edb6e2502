// Package emoji classifies the runes of a grapheme cluster for emoji
// presentation. The monospace measurer uses it to give emoji clusters a
// two-cell width regardless of their East Asian Width property.
package emoji

// IsPresentation reports whether r defaults to emoji presentation
// (Emoji_Presentation=Yes) in the common pictographic blocks.
func IsPresentation(r rune) bool {
	switch {
	case r >= 0x1F600 && r <= 0x1F64F: // Emoticons
		return true
	case r >= 0x1F300 && r <= 0x1F5FF: // Miscellaneous Symbols and Pictographs
		return true
	case r >= 0x1F680 && r <= 0x1F6FF: // Transport and Map Symbols
		return true
	case r >= 0x1F900 && r <= 0x1F9FF: // Supplemental Symbols and Pictographs
		return true
	case r >= 0x1FA70 && r <= 0x1FAFF: // Symbols and Pictographs Extended-A
		return true
	case r >= 0x1F1E6 && r <= 0x1F1FF: // Regional indicators
		return true
	case r >= 0x1F000 && r <= 0x1F02F: // Mahjong tiles
		return true
	case r >= 0x1F0A0 && r <= 0x1F0FF: // Playing cards
		return true
	}
	return false
}

// IsModifier reports whether r is a Fitzpatrick skin tone modifier.
func IsModifier(r rune) bool {
	return r >= 0x1F3FB && r <= 0x1F3FF
}

// IsZWJ reports whether r is the zero-width joiner.
func IsZWJ(r rune) bool {
	return r == 0x200D
}

// IsRegionalIndicator reports whether r is a regional indicator symbol.
func IsRegionalIndicator(r rune) bool {
	return r >= 0x1F1E6 && r <= 0x1F1FF
}

// IsEmojiVariation reports whether r is VS16, which requests emoji
// presentation for the preceding character.
func IsEmojiVariation(r rune) bool {
	return r == 0xFE0F
}

// IsTextVariation reports whether r is VS15, which requests text
// presentation.
func IsTextVariation(r rune) bool {
	return r == 0xFE0E
}

// IsKeycapMark reports whether r is the combining enclosing keycap.
func IsKeycapMark(r rune) bool {
	return r == 0x20E3
}

// IsEmojiCluster reports whether a grapheme cluster is rendered as an
// emoji: it starts with an emoji-presentation character, or it contains
// VS16 or a keycap mark. VS15 anywhere forces text presentation.
func IsEmojiCluster(cluster string) bool {
	presentation := false
	for i, r := range cluster {
		switch {
		case IsTextVariation(r):
			return false
		case IsEmojiVariation(r), IsKeycapMark(r):
			presentation = true
		case i == 0 && IsPresentation(r):
			presentation = true
		}
	}
	return presentation
}
