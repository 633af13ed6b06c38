package conditions

import "crypto-conditions/internal/oer"

func init() {
	registerType(TypePreimage, typeInfo{
		name:         "preimage-sha-256",
		parsePayload: parsePreimagePayload,
	})
}

// PreimageFulfillment proves knowledge of preimage bytes whose SHA-256 the
// condition commits to. It never inspects the message passed to Validate.
type PreimageFulfillment struct {
	Preimage []byte
}

// NewPreimageFulfillment builds a fulfillment over preimage.
func NewPreimageFulfillment(preimage []byte) *PreimageFulfillment {
	return &PreimageFulfillment{Preimage: preimage}
}

func (f *PreimageFulfillment) TypeID() TypeID { return TypePreimage }

func (f *PreimageFulfillment) Condition() Condition { return deriveCondition(f) }

// Validate always succeeds: a preimage fulfillment has nothing to check
// against a message.
func (f *PreimageFulfillment) Validate(message []byte) error { return nil }

func (f *PreimageFulfillment) writeHashPayload(w hashWriter) {
	w.WriteOctetString(f.Preimage)
}

// writePayload writes the preimage unframed: the fulfillment payload is
// always the tail of its buffer, so no length prefix is needed to make it
// self-delimiting.
func (f *PreimageFulfillment) writePayload(w payloadWriter, depth int) error {
	w.WriteOctetString(f.Preimage)
	return nil
}

func (f *PreimageFulfillment) maxFulfillmentLength() uint64 {
	p := oer.NewPredictor()
	p.WriteOctetString(f.Preimage)
	return uint64(p.Len())
}

func (f *PreimageFulfillment) featureBitmask() uint32 {
	return FeatureSHA256 | FeaturePreimage
}

func parsePreimagePayload(r *oer.Reader, depth int) (Fulfillment, error) {
	return &PreimageFulfillment{Preimage: r.ReadRemaining()}, nil
}
