package oer

// Writer appends the OER encoding of values to a growable buffer.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteVarUInt writes v as a length-prefixed, minimum-length, big-endian
// unsigned integer.
func (w *Writer) WriteVarUInt(v uint64) {
	content := minimalBytes(v)
	w.buf = append(w.buf, lengthPrefixBytes(len(content))...)
	w.buf = append(w.buf, content...)
}

// WriteVarOctetString writes buf prefixed by its length.
func (w *Writer) WriteVarOctetString(buf []byte) {
	w.buf = append(w.buf, lengthPrefixBytes(len(buf))...)
	w.buf = append(w.buf, buf...)
}

// WriteOctetString writes buf verbatim with no length framing, for
// fixed-size fields whose length is implied by the type (Ed25519's public
// key and signature).
func (w *Writer) WriteOctetString(buf []byte) {
	w.buf = append(w.buf, buf...)
}

// WriteUint16 writes v as a fixed-size big-endian 16-bit field (the
// condition/fulfillment type ID header).
func (w *Writer) WriteUint16(v uint16) {
	w.buf = append(w.buf, byte(v>>8), byte(v))
}
