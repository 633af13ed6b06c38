package conditions

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// FromConditionURI parses a cc:<hex type_id>:<hex bitmask>:<base64url
// hash>:<decimal max_fulfillment_length> URI into a Condition.
func FromConditionURI(uri string) (Condition, error) {
	parts := strings.Split(uri, ":")
	if len(parts) != 5 || parts[0] != "cc" {
		return Condition{}, fmt.Errorf("%w: malformed condition uri", ErrParse)
	}
	typeVal, err := strconv.ParseUint(parts[1], 16, 16)
	if err != nil {
		return Condition{}, fmt.Errorf("%w: bad type id: %v", ErrParse, err)
	}
	bitmask, err := strconv.ParseUint(parts[2], 16, 32)
	if err != nil {
		return Condition{}, fmt.Errorf("%w: bad feature bitmask: %v", ErrParse, err)
	}
	hash, err := base64.RawURLEncoding.DecodeString(parts[3])
	if err != nil {
		return Condition{}, fmt.Errorf("%w: bad base64url hash: %v", ErrParse, err)
	}
	if len(hash) != 32 {
		return Condition{}, fmt.Errorf("%w: hash length %d, want 32", ErrParse, len(hash))
	}
	maxLen, err := strconv.ParseUint(parts[4], 10, 64)
	if err != nil {
		return Condition{}, fmt.Errorf("%w: bad max fulfillment length: %v", ErrParse, err)
	}
	c := Condition{TypeID: TypeID(typeVal), FeatureBitmask: uint32(bitmask), MaxFulfillmentLength: maxLen}
	copy(c.Hash[:], hash)
	return c, nil
}
