package conditions

import "crypto-conditions/internal/oer"

func init() {
	registerType(TypePrefix, typeInfo{
		name:         "prefix-sha-256",
		parsePayload: parsePrefixPayload,
	})
}

// PrefixFulfillment prepends Prefix to the message before delegating
// validation to Subfulfillment.
type PrefixFulfillment struct {
	Prefix         []byte
	Subfulfillment Fulfillment
}

// NewPrefixFulfillment wraps sub with a fixed prefix.
func NewPrefixFulfillment(prefix []byte, sub Fulfillment) *PrefixFulfillment {
	return &PrefixFulfillment{Prefix: prefix, Subfulfillment: sub}
}

func (f *PrefixFulfillment) TypeID() TypeID { return TypePrefix }

func (f *PrefixFulfillment) Condition() Condition { return deriveCondition(f) }

// Validate builds prefix||message and delegates to the subfulfillment.
func (f *PrefixFulfillment) Validate(message []byte) error {
	effective := make([]byte, 0, len(f.Prefix)+len(message))
	effective = append(effective, f.Prefix...)
	effective = append(effective, message...)
	return f.Subfulfillment.Validate(effective)
}

func (f *PrefixFulfillment) writeHashPayload(w hashWriter) {
	w.WriteVarOctetString(f.Prefix)
	sub := f.Subfulfillment.Condition()
	wr := oer.NewWriter()
	sub.writeBinary(wr)
	w.WriteOctetString(wr.Bytes())
}

func (f *PrefixFulfillment) writePayload(w payloadWriter, depth int) error {
	if depth >= maxNestingDepth {
		return errNestingTooDeep
	}
	w.WriteVarOctetString(f.Prefix)
	w.WriteUint16(uint16(f.Subfulfillment.TypeID()))
	return f.Subfulfillment.writePayload(w, depth+1)
}

func (f *PrefixFulfillment) maxFulfillmentLength() uint64 {
	p := oer.NewPredictor()
	p.WriteVarOctetString(f.Prefix)
	p.WriteUint16(0)
	return uint64(p.Len()) + f.Subfulfillment.maxFulfillmentLength()
}

func (f *PrefixFulfillment) featureBitmask() uint32 {
	return FeatureSHA256 | FeaturePrefix | f.Subfulfillment.featureBitmask()
}

func parsePrefixPayload(r *oer.Reader, depth int) (Fulfillment, error) {
	if depth >= maxNestingDepth {
		return nil, errNestingTooDeep
	}
	prefix, err := r.ReadVarOctetString()
	if err != nil {
		return nil, err
	}
	sub, err := parseFulfillmentBinary(r, depth+1)
	if err != nil {
		return nil, err
	}
	return &PrefixFulfillment{Prefix: prefix, Subfulfillment: sub}, nil
}
