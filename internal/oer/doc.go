// Package oer implements the small subset of Octet Encoding Rules used to
// encode and decode crypto-conditions: a length-prefixed variable-length
// unsigned integer (VarUInt), a length-prefixed octet string
// (VarOctetString), and fixed-size octet fields.
//
// Three writer-shaped types share one method set (WriteVarUInt,
// WriteVarOctetString, WriteOctetString, WriteUint16):
//
//   - Writer appends to a growable in-memory buffer.
//   - Hasher feeds a running SHA-256 context instead of buffering bytes.
//   - Predictor only counts how many bytes would be written, for
//     calculating a fulfillment's maximum size without allocating one.
//
// Reader is the mirror read side. All three write types and the read side
// agree on one encoding: a length determinant (see lengthPrefixBytes) is
// either the single byte 0x00-0x7F holding a byte count directly, or (long
// form) 0x80|n followed by n big-endian length bytes. A VarUInt's length
// determinant is always the short form; Reader rejects a long one.
package oer
