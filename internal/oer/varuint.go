package oer

// minimalBytes returns the big-endian minimum-length encoding of v. Zero
// encodes as the empty slice.
func minimalBytes(v uint64) []byte {
	if v == 0 {
		return nil
	}
	var buf [8]byte
	n := 8
	for v > 0 {
		n--
		buf[n] = byte(v)
		v >>= 8
	}
	return buf[n:]
}

// lengthPrefixBytes returns the encoded length determinant for a content of
// the given byte length: short form (a single byte) for length <= 0x7F,
// long form (0x80|n followed by n big-endian length bytes) otherwise.
func lengthPrefixBytes(length int) []byte {
	if length <= 0x7f {
		return []byte{byte(length)}
	}
	content := minimalBytes(uint64(length))
	out := make([]byte, 0, 1+len(content))
	out = append(out, 0x80|byte(len(content)))
	out = append(out, content...)
	return out
}
