package conditions

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/multiformats/go-multihash"

	"crypto-conditions/internal/oer"
)

// Condition is the immutable tuple a payer locks value against: a type, a
// feature bitmask, a 32-byte hash of the type-specific payload, and an
// upper bound on the size of any fulfillment that satisfies it.
type Condition struct {
	TypeID              TypeID
	FeatureBitmask      uint32
	Hash                [32]byte
	MaxFulfillmentLength uint64
}

// Validate reports whether c is well-formed: its type is registered, every
// set feature bit is within the implementation's supported mask, and its
// max fulfillment length is within bounds.
func (c Condition) Validate() error {
	if _, ok := registry[c.TypeID]; !ok {
		return fmt.Errorf("%w: type id %d", ErrUnsupportedType, c.TypeID)
	}
	if c.FeatureBitmask&^supportedFeatureMask != 0 {
		return fmt.Errorf("%w: bitmask 0x%x", ErrUnsupportedFeature, c.FeatureBitmask)
	}
	if c.MaxFulfillmentLength > maxSafeFulfillmentSize {
		return fmt.Errorf("%w: max fulfillment length %d", ErrTooLarge, c.MaxFulfillmentLength)
	}
	return nil
}

// Binary returns the canonical binary encoding:
// uint16 type_id | varUInt bitmask | varOctetString hash | varUInt max_fulfillment_length.
func (c Condition) Binary() []byte {
	w := oer.NewWriter()
	c.writeBinary(w)
	return w.Bytes()
}

func (c Condition) writeBinary(w *oer.Writer) {
	w.WriteUint16(uint16(c.TypeID))
	w.WriteVarUInt(uint64(c.FeatureBitmask))
	w.WriteVarOctetString(c.Hash[:])
	w.WriteVarUInt(c.MaxFulfillmentLength)
}

// predictBinaryLen accounts for the encoded size of c without allocating it.
func (c Condition) predictBinaryLen() int {
	p := oer.NewPredictor()
	p.WriteUint16(uint16(c.TypeID))
	p.WriteVarUInt(uint64(c.FeatureBitmask))
	p.WriteVarOctetString(c.Hash[:])
	p.WriteVarUInt(c.MaxFulfillmentLength)
	return p.Len()
}

// parseConditionBinary decodes a Condition from r, used both at the top
// level and for subconditions nested inside Threshold members.
func parseConditionBinary(r *oer.Reader) (Condition, error) {
	typeID, err := r.ReadUint16()
	if err != nil {
		return Condition{}, err
	}
	bitmask, err := r.ReadVarUInt()
	if err != nil {
		return Condition{}, err
	}
	hash, err := r.ReadVarOctetString()
	if err != nil {
		return Condition{}, err
	}
	maxLen, err := r.ReadVarUInt()
	if err != nil {
		return Condition{}, err
	}
	if len(hash) != 32 {
		return Condition{}, fmt.Errorf("%w: hash length %d", ErrParse, len(hash))
	}
	c := Condition{TypeID: TypeID(typeID), FeatureBitmask: uint32(bitmask), MaxFulfillmentLength: maxLen}
	copy(c.Hash[:], hash)
	return c, nil
}

// URI returns the textual cc:<hex type_id>:<hex bitmask>:<base64url
// hash>:<decimal max length> form.
func (c Condition) URI() string {
	return fmt.Sprintf("cc:%s:%s:%s:%s",
		strconv.FormatUint(uint64(c.TypeID), 16),
		strconv.FormatUint(uint64(c.FeatureBitmask), 16),
		base64.RawURLEncoding.EncodeToString(c.Hash[:]),
		strconv.FormatUint(c.MaxFulfillmentLength, 10),
	)
}

// Multihash wraps c.Hash in standard multihash framing (SHA2-256), for
// interop with multihash-aware tooling. This is purely additive: it has no
// bearing on Binary, URI, or any validation path.
func (c Condition) Multihash() ([]byte, error) {
	return multihash.Encode(c.Hash[:], multihash.SHA2_256)
}
