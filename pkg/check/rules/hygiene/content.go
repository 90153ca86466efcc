package hygiene

import "bytes"

// isBinary reports whether content looks like a binary file.
// The content rules skip such files instead of flagging them.
func isBinary(content []byte) bool {
	return bytes.IndexByte(content, 0) >= 0
}

// lines splits content into lines without their terminators. The final
// element is the text after the last newline, which is empty for files
// that end with one.
func lines(content []byte) [][]byte {
	return bytes.Split(content, []byte{'\n'})
}
