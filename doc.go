// Package conditions implements crypto-conditions: compact, portable
// cryptographic commitments (Conditions) and the binary proofs that satisfy
// them (Fulfillments).
//
// A Condition is a short fingerprint of a verification predicate: its type,
// the feature bits a verifier must support, a 32-byte hash of the
// type-specific payload, and a maximum fulfillment length. A Fulfillment is
// the type-specific proof; together with an optional message it either
// satisfies the predicate or it doesn't. Five types are supported:
// Preimage-SHA-256, Prefix-SHA-256, Threshold-SHA-256, RSA-SHA-256, and
// Ed25519-SHA-256.
//
// Both forms have a canonical binary encoding and a textual URI form
// (cc:... for conditions, cf:... for fulfillments). The high-level entry
// points are FromConditionURI, FromFulfillmentURI, ValidateCondition,
// ValidateFulfillment, and FulfillmentToCondition.
//
// The package is purely computational: no I/O, no persistent state beyond
// the read-only type registry populated at init, no network transport. It
// is safe for concurrent use provided each goroutine owns its own
// Fulfillment values.
package conditions
