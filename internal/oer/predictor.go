package oer

// Predictor accumulates a length counter only, used to compute a
// fulfillment's maximum length without ever allocating the bytes it is
// predicting the size of. It exposes the same shape as Writer and Hasher so
// a single writePayload/writeHashPayload method serves all three.
type Predictor struct {
	n int
}

// NewPredictor returns a zeroed Predictor.
func NewPredictor() *Predictor { return &Predictor{} }

// WriteVarUInt accounts for the length-prefixed encoding of v.
func (p *Predictor) WriteVarUInt(v uint64) {
	content := minimalBytes(v)
	p.n += len(lengthPrefixBytes(len(content))) + len(content)
}

// WriteVarOctetString accounts for a length-prefixed octet string holding
// len(buf) content bytes; buf's contents are never inspected.
func (p *Predictor) WriteVarOctetString(buf []byte) {
	p.n += len(lengthPrefixBytes(len(buf))) + len(buf)
}

// WriteOctetString accounts for a fixed-size, unframed field.
func (p *Predictor) WriteOctetString(buf []byte) { p.n += len(buf) }

// WriteUint16 accounts for a fixed 2-byte field.
func (p *Predictor) WriteUint16(uint16) { p.n += 2 }

// Len returns the predicted total length.
func (p *Predictor) Len() int { return p.n }

// AddVarOctetStringLen accounts for a length-prefixed octet string of a
// known content length without materializing a buffer of that size, for
// worst-case predictions (e.g. RSA modulus/signature sizing).
func (p *Predictor) AddVarOctetStringLen(length int) {
	p.n += len(lengthPrefixBytes(length)) + length
}
