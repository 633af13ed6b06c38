package conditions

import "crypto-conditions/internal/oer"

// Fulfillment is the common contract every condition type satisfies. The
// registry below dispatches parseFulfillmentPayload calls by TypeID;
// decoding a type ID absent from the registry fails with ErrUnsupportedType.
type Fulfillment interface {
	// TypeID returns the fulfillment's type.
	TypeID() TypeID

	// Condition derives this fulfillment's Condition.
	Condition() Condition

	// Validate checks the fulfillment against message.
	Validate(message []byte) error

	// writeHashPayload writes the type-specific hash payload (never
	// including the type ID or bitmask) into w.
	writeHashPayload(w hashWriter)

	// writePayload writes the type-specific fulfillment payload into w.
	writePayload(w payloadWriter, depth int) error

	// maxFulfillmentLength predicts the worst-case serialized size.
	maxFulfillmentLength() uint64

	// featureBitmask returns this fulfillment's contribution to a
	// Condition's FeatureBitmask, including any subcondition bits.
	featureBitmask() uint32
}

// hashWriter is satisfied by oer.Hasher: only hash payloads are written
// through it, never fixed-size octet fields that aren't part of a hash.
type hashWriter interface {
	WriteVarUInt(uint64)
	WriteVarOctetString([]byte)
	WriteOctetString([]byte)
	WriteUint16(uint16)
}

// payloadWriter is satisfied by both oer.Writer and oer.Predictor so
// writePayload doubles as the size predictor when given a Predictor.
type payloadWriter interface {
	WriteVarUInt(uint64)
	WriteVarOctetString([]byte)
	WriteOctetString([]byte)
	WriteUint16(uint16)
}

type typeInfo struct {
	name        string
	parsePayload func(r *oer.Reader, depth int) (Fulfillment, error)
}

var registry = map[TypeID]typeInfo{}

func registerType(id TypeID, info typeInfo) {
	registry[id] = info
}

// parseFulfillmentPayload dispatches to the registered parser for typeID.
func parseFulfillmentPayload(typeID TypeID, r *oer.Reader, depth int) (Fulfillment, error) {
	info, ok := registry[typeID]
	if !ok {
		return nil, errUnsupportedType(typeID)
	}
	return info.parsePayload(r, depth)
}
