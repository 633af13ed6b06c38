package conditions

import (
	"errors"
	"testing"

	"crypto-conditions/internal/oer"
)

func TestConditionURIRoundTrip(t *testing.T) {
	c := NewPreimageFulfillment([]byte("hello")).Condition()
	uri := c.URI()
	parsed, err := FromConditionURI(uri)
	if err != nil {
		t.Fatalf("FromConditionURI: %v", err)
	}
	if parsed != c {
		t.Fatalf("got %+v, want %+v", parsed, c)
	}
}

func TestConditionValidateRejectsUnsupportedType(t *testing.T) {
	c := Condition{TypeID: TypeID(999)}
	if err := c.Validate(); !errors.Is(err, ErrUnsupportedType) {
		t.Fatalf("got %v, want ErrUnsupportedType", err)
	}
}

func TestConditionValidateRejectsOversizedMaxLength(t *testing.T) {
	c := NewPreimageFulfillment(nil).Condition()
	c.MaxFulfillmentLength = maxSafeFulfillmentSize + 1
	if err := c.Validate(); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("got %v, want ErrTooLarge", err)
	}
}

func TestConditionMultihash(t *testing.T) {
	c := NewPreimageFulfillment([]byte("x")).Condition()
	mh, err := c.Multihash()
	if err != nil {
		t.Fatalf("Multihash: %v", err)
	}
	if len(mh) == 0 {
		t.Fatal("expected non-empty multihash")
	}
}

func TestConditionBinaryRoundTrip(t *testing.T) {
	c := NewEd25519Fulfillment(make([]byte, 32), make([]byte, 64)).Condition()
	r := oer.NewReader(c.Binary())
	parsed, err := parseConditionBinary(r)
	if err != nil {
		t.Fatalf("parseConditionBinary: %v", err)
	}
	if parsed != c {
		t.Fatalf("got %+v, want %+v", parsed, c)
	}
}
