package conditions

import "testing"

func TestPreimageValidateIgnoresMessage(t *testing.T) {
	f := NewPreimageFulfillment([]byte("shh"))
	if err := f.Validate([]byte("anything at all")); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if err := f.Validate(nil); err != nil {
		t.Fatalf("Validate(nil): %v", err)
	}
}

func TestPreimageFeatureBitmask(t *testing.T) {
	f := NewPreimageFulfillment([]byte("x"))
	if got := f.featureBitmask(); got != FeatureSHA256|FeaturePreimage {
		t.Fatalf("featureBitmask = 0x%x, want 0x%x", got, FeatureSHA256|FeaturePreimage)
	}
}

func TestPreimageDistinctPreimagesYieldDistinctConditions(t *testing.T) {
	a := NewPreimageFulfillment([]byte("a"))
	b := NewPreimageFulfillment([]byte("b"))
	if a.Condition().URI() == b.Condition().URI() {
		t.Fatal("different preimages produced the same condition")
	}
}
