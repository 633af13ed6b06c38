package conditions

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestThresholdNotMetWithoutEnoughFulfillments(t *testing.T) {
	f := NewThresholdFulfillment(2, []ThresholdMember{
		{Weight: 1, Subfulfillment: NewPreimageFulfillment([]byte("a"))},
	})
	err := f.Validate(nil)
	require.ErrorIs(t, err, ErrThresholdNotMet)
}

func TestThresholdSelectsShorterCovering(t *testing.T) {
	short := NewPreimageFulfillment(nil)
	long := NewPreimageFulfillment(make([]byte, 200))

	f := NewThresholdFulfillment(1, []ThresholdMember{
		{Weight: 1, Subfulfillment: short},
		{Weight: 1, Subfulfillment: long},
	})

	uri, err := FulfillmentURI(f)
	require.NoError(t, err)
	parsed, err := FromFulfillmentURI(uri)
	require.NoError(t, err)

	tf := parsed.(*ThresholdFulfillment)
	var revealed []ThresholdMember
	for _, m := range tf.Members {
		if m.Subfulfillment != nil {
			revealed = append(revealed, m)
		}
	}
	require.Len(t, revealed, 1)
	pf, ok := revealed[0].Subfulfillment.(*PreimageFulfillment)
	require.True(t, ok)
	require.Empty(t, pf.Preimage)
}

func TestThresholdRequiresAllWeightsWhenNoSingleMemberSuffices(t *testing.T) {
	f := NewThresholdFulfillment(2, []ThresholdMember{
		{Weight: 1, Subfulfillment: NewPreimageFulfillment([]byte("a"))},
		{Weight: 1, Subfulfillment: NewPreimageFulfillment([]byte("b"))},
	})
	require.NoError(t, f.Validate(nil))

	uri, err := FulfillmentURI(f)
	require.NoError(t, err)
	parsed, err := FromFulfillmentURI(uri)
	require.NoError(t, err)

	tf := parsed.(*ThresholdFulfillment)
	revealedCount := 0
	for _, m := range tf.Members {
		if m.Subfulfillment != nil {
			revealedCount++
		}
	}
	require.Equal(t, 2, revealedCount)
}

func TestThresholdCannotMeetThresholdReturnsError(t *testing.T) {
	f := NewThresholdFulfillment(5, []ThresholdMember{
		{Weight: 1, Subfulfillment: NewPreimageFulfillment([]byte("a"))},
	})
	_, err := FulfillmentURI(f)
	require.ErrorIs(t, err, ErrThresholdNotMet)
}

func TestThresholdMaxLengthCoversUnknownSubfulfillments(t *testing.T) {
	small := NewPreimageFulfillment([]byte("a")).Condition()
	large := NewPreimageFulfillment(make([]byte, 500)).Condition()

	// Neither subfulfillment is known to this instance; threshold 2 forces
	// both members to be revealed in any satisfying fulfillment.
	f := NewThresholdFulfillment(2, []ThresholdMember{
		{Weight: 1, Subcondition: small},
		{Weight: 1, Subcondition: large},
	})
	maxLen := f.Condition().MaxFulfillmentLength

	// A third party who knows both preimages builds the one fulfillment
	// this condition admits; it must still fit within maxLen, even though
	// this instance never held either subfulfillment when maxLen was
	// computed.
	revealed := NewThresholdFulfillment(2, []ThresholdMember{
		{Weight: 1, Subfulfillment: NewPreimageFulfillment([]byte("a"))},
		{Weight: 1, Subfulfillment: NewPreimageFulfillment(make([]byte, 500))},
	})
	require.Equal(t, f.Condition().URI(), revealed.Condition().URI())

	binary, err := binaryFulfillment(revealed, 0)
	require.NoError(t, err)
	// binaryFulfillment includes the 2-byte type_id prefix that maxLen
	// does not count.
	require.LessOrEqual(t, uint64(len(binary)-2), maxLen)
}

func TestThresholdNestedThreshold(t *testing.T) {
	inner := NewThresholdFulfillment(1, []ThresholdMember{
		{Weight: 1, Subfulfillment: NewPreimageFulfillment([]byte("x"))},
	})
	outer := NewThresholdFulfillment(1, []ThresholdMember{
		{Weight: 1, Subfulfillment: inner},
	})

	uri, err := FulfillmentURI(outer)
	require.NoError(t, err)
	parsed, err := FromFulfillmentURI(uri)
	require.NoError(t, err)
	require.Equal(t, outer.Condition().URI(), parsed.Condition().URI())
	require.NoError(t, parsed.Validate(nil))
}
