package conditions

import (
	"bytes"
	"fmt"
	"sort"

	"crypto-conditions/internal/oer"
)

func init() {
	registerType(TypeThreshold, typeInfo{
		name:         "threshold-sha-256",
		parsePayload: parseThresholdPayload,
	})
}

// ThresholdMember is one weighted entry in a threshold composite. Exactly
// one of Subfulfillment (a fully-known subfulfillment) or Subcondition (an
// as-yet-unfulfilled subcondition) determines the member's contributed
// Condition; if Subfulfillment is set, its derived condition is used and
// Subcondition is ignored.
type ThresholdMember struct {
	Weight         uint64
	Subfulfillment Fulfillment
	Subcondition   Condition
}

func (m ThresholdMember) condition() Condition {
	if m.Subfulfillment != nil {
		return m.Subfulfillment.Condition()
	}
	return m.Subcondition
}

// ThresholdFulfillment is a weighted M-of-N composite: it is satisfied when
// the weights of its revealed, validating subfulfillments sum to at least
// Threshold.
type ThresholdFulfillment struct {
	Threshold uint64
	Members   []ThresholdMember
}

// NewThresholdFulfillment builds a threshold composite over members.
func NewThresholdFulfillment(threshold uint64, members []ThresholdMember) *ThresholdFulfillment {
	return &ThresholdFulfillment{Threshold: threshold, Members: members}
}

func (f *ThresholdFulfillment) TypeID() TypeID { return TypeThreshold }

func (f *ThresholdFulfillment) Condition() Condition { return deriveCondition(f) }

// canonicalMembers returns f.Members sorted by the lexicographic byte order
// of VarUInt(weight)||condition.Binary(), the canonical order used for both
// the hash payload and the fulfillment payload. This ordering depends only
// on the multiset of (weight, condition) pairs, never on insertion order or
// on which members happen to carry a known subfulfillment.
func (f *ThresholdFulfillment) canonicalMembers() []ThresholdMember {
	members := make([]ThresholdMember, len(f.Members))
	copy(members, f.Members)

	keys := make([][]byte, len(members))
	for i, m := range members {
		w := oer.NewWriter()
		w.WriteVarUInt(m.Weight)
		keys[i] = append(w.Bytes(), m.condition().Binary()...)
	}
	sort.SliceStable(members, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return members
}

func (f *ThresholdFulfillment) writeHashPayload(w hashWriter) {
	members := f.canonicalMembers()
	w.WriteVarUInt(f.Threshold)
	w.WriteVarUInt(uint64(len(members)))
	for _, m := range members {
		w.WriteVarUInt(m.Weight)
		w.WriteOctetString(m.condition().Binary())
	}
}

// writePayload serializes the threshold fulfillment, choosing (via
// selectOptimalSubset) the minimum-length subset of fulfillable members to
// reveal while still meeting Threshold; every other member is downgraded to
// a bare subcondition. Each member's body is wrapped in a VarOctetString so
// members remain independently parseable when several sit in one buffer;
// the preceding tag byte tells the reader whether to parse a fulfillment or
// a condition from that body.
func (f *ThresholdFulfillment) writePayload(w payloadWriter, depth int) error {
	if depth >= maxNestingDepth {
		return errNestingTooDeep
	}
	members := f.canonicalMembers()
	reveal, err := selectOptimalSubset(members, f.Threshold, depth)
	if err != nil {
		return err
	}

	w.WriteVarUInt(f.Threshold)
	w.WriteVarUInt(uint64(len(members)))
	for i, m := range members {
		w.WriteVarUInt(m.Weight)
		if reveal[i] {
			w.WriteOctetString([]byte{0x01})
			body, err := binaryFulfillment(m.Subfulfillment, depth+1)
			if err != nil {
				return err
			}
			w.WriteVarOctetString(body)
		} else {
			w.WriteOctetString([]byte{0x00})
			w.WriteVarOctetString(m.condition().Binary())
		}
	}
	return nil
}

func (f *ThresholdFulfillment) maxFulfillmentLength() uint64 {
	members := f.canonicalMembers()
	return thresholdMaxLength(members, f.Threshold)
}

func (f *ThresholdFulfillment) featureBitmask() uint32 {
	mask := FeatureSHA256 | FeatureThreshold
	for _, m := range f.Members {
		mask |= m.condition().FeatureBitmask
	}
	return mask
}

// Validate requires at least Threshold worth of weight among members that
// carry a subfulfillment, and that every present subfulfillment validates
// against message.
func (f *ThresholdFulfillment) Validate(message []byte) error {
	var fulfilledWeight uint64
	for _, m := range f.Members {
		if m.Subfulfillment == nil {
			continue
		}
		if err := m.Subfulfillment.Validate(message); err != nil {
			return fmt.Errorf("threshold subfulfillment: %w", err)
		}
		fulfilledWeight += m.Weight
	}
	if fulfilledWeight < f.Threshold {
		return fmt.Errorf("%w: have %d, need %d", ErrThresholdNotMet, fulfilledWeight, f.Threshold)
	}
	return nil
}

func parseThresholdPayload(r *oer.Reader, depth int) (Fulfillment, error) {
	if depth >= maxNestingDepth {
		return nil, errNestingTooDeep
	}
	threshold, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	count, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	members := make([]ThresholdMember, 0, count)
	for i := uint64(0); i < count; i++ {
		weight, err := r.ReadVarUInt()
		if err != nil {
			return nil, err
		}
		tag, err := r.ReadOctetString(1)
		if err != nil {
			return nil, err
		}
		body, err := r.ReadVarOctetString()
		if err != nil {
			return nil, err
		}
		br := oer.NewReader(body)
		switch tag[0] {
		case 0x01:
			sub, err := parseFulfillmentBinary(br, depth+1)
			if err != nil {
				return nil, err
			}
			members = append(members, ThresholdMember{Weight: weight, Subfulfillment: sub})
		case 0x00:
			cond, err := parseConditionBinary(br)
			if err != nil {
				return nil, err
			}
			members = append(members, ThresholdMember{Weight: weight, Subcondition: cond})
		default:
			return nil, fmt.Errorf("%w: bad threshold member tag 0x%x", ErrParse, tag[0])
		}
	}
	return &ThresholdFulfillment{Threshold: threshold, Members: members}, nil
}
