package conditions

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"crypto-conditions/internal/oer"
)

func errUnsupportedType(id TypeID) error {
	return fmt.Errorf("%w: type id %d", ErrUnsupportedType, id)
}

// deriveCondition builds the Condition a fulfillment commits to:
// (f.TypeID(), f.featureBitmask(), generateHash(f), f.maxFulfillmentLength()).
func deriveCondition(f Fulfillment) Condition {
	return Condition{
		TypeID:               f.TypeID(),
		FeatureBitmask:       f.featureBitmask(),
		Hash:                 generateHash(f),
		MaxFulfillmentLength: f.maxFulfillmentLength(),
	}
}

// generateHash returns SHA-256 of f's hash payload. Ed25519 overrides this
// by implementing its own Condition method directly, since its "hash"
// field is the raw public key rather than a SHA-256 digest.
func generateHash(f Fulfillment) [32]byte {
	h := oer.NewHasher()
	f.writeHashPayload(h)
	return h.Digest()
}

// binaryFulfillment returns the canonical binary encoding of f:
// uint16 type_id | type-specific payload.
func binaryFulfillment(f Fulfillment, depth int) ([]byte, error) {
	w := oer.NewWriter()
	w.WriteUint16(uint16(f.TypeID()))
	if err := f.writePayload(w, depth); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// FulfillmentURI returns the cf:<hex type_id>:<base64url payload, no
// padding> textual form of f.
func FulfillmentURI(f Fulfillment) (string, error) {
	w := oer.NewWriter()
	if err := f.writePayload(w, 0); err != nil {
		return "", err
	}
	return fmt.Sprintf("cf:%s:%s",
		strconv.FormatUint(uint64(f.TypeID()), 16),
		base64.RawURLEncoding.EncodeToString(w.Bytes()),
	), nil
}

// FromFulfillmentURI parses a cf: URI into a Fulfillment.
func FromFulfillmentURI(uri string) (Fulfillment, error) {
	parts := strings.SplitN(uri, ":", 3)
	if len(parts) != 3 || parts[0] != "cf" {
		return nil, fmt.Errorf("%w: malformed fulfillment uri", ErrParse)
	}
	typeVal, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return nil, fmt.Errorf("%w: bad type id: %v", ErrParse, err)
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad base64url payload: %v", ErrParse, err)
	}
	r := oer.NewReader(payload)
	f, err := parseFulfillmentPayload(TypeID(typeVal), r, 0)
	if err != nil {
		if errors.Is(err, oer.ErrParse) {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: trailing bytes after fulfillment payload", ErrParse)
	}
	return f, nil
}

// parseFulfillmentBinary decodes a full uint16-type-id-prefixed fulfillment
// binary, used when a Threshold member is itself a subfulfillment.
func parseFulfillmentBinary(r *oer.Reader, depth int) (Fulfillment, error) {
	typeID, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	return parseFulfillmentPayload(TypeID(typeID), r, depth)
}
