package content

// BinarySampleSize is the number of leading bytes scanned for NUL bytes,
// the same window git uses.
const BinarySampleSize = 8000

// IsBinaryContent reports whether content looks binary: a NUL byte in the
// first BinarySampleSize bytes. Content starting with a UTF-16 or UTF-32 BOM
// is always text.
func IsBinaryContent(content []byte) bool {
	if len(content) >= 2 {
		if (content[0] == 0xFF && content[1] == 0xFE) ||
			(content[0] == 0xFE && content[1] == 0xFF) {
			return false
		}
	}
	if len(content) >= 4 {
		if content[0] == 0x00 && content[1] == 0x00 && content[2] == 0xFE && content[3] == 0xFF {
			return false
		}
	}

	sampleSize := min(len(content), BinarySampleSize)
	for i := range sampleSize {
		if content[i] == 0 {
			return true
		}
	}
	return false
}
