package conditions

import (
	"fmt"
	"math"
	"sort"

	"crypto-conditions/internal/oer"
)

// varOctetWrapLen returns the encoded size of VarOctetString(<contentLen
// bytes>) without allocating the content.
func varOctetWrapLen(contentLen int) int {
	p := oer.NewPredictor()
	p.AddVarOctetStringLen(contentLen)
	return p.Len()
}

// fulfillmentWrapLen returns the encoded size of VarOctetString(binary(sub))
// for a concrete subfulfillment, sizing binary(sub) as the 2-byte type id
// plus sub's predicted maximum payload length rather than serializing it.
func fulfillmentWrapLen(sub Fulfillment, depth int) (int, error) {
	if depth >= maxNestingDepth {
		return 0, errNestingTooDeep
	}
	bodyLen := 2 + int(sub.maxFulfillmentLength()) // uint16 type id + payload
	return varOctetWrapLen(bodyLen), nil
}

// dpSelectionLimit bounds the size of the exact dynamic-programming table
// (candidates x capped-threshold). Inputs larger than this fall back to a
// greedy heuristic: cheapest-delta-first among members that could reach the
// threshold, which is optimal whenever no two candidates share a weight
// that makes a combinatorial trade-off necessary, and merely a reasonable
// approximation otherwise.
const dpSelectionLimit = 4_000_000

// lengthCandidate is a member eligible to be revealed, along with the
// marginal cost of doing so: the encoded size of its revealed form minus
// the encoded size of downgrading it to a bare subcondition.
type lengthCandidate struct {
	idx    int
	weight uint64
	delta  int
}

// selectMinCostSubset picks a subset of candidates whose weights sum to at
// least threshold, minimizing total delta, via an exact bounded-knapsack DP
// (falling back to a greedy cheapest-delta ordering when the DP table would
// be too large). It returns a bool slice sized to numMembers with the
// chosen candidates' original indices set true.
func selectMinCostSubset(numMembers int, threshold uint64, candidates []lengthCandidate) ([]bool, error) {
	revealed := make([]bool, numMembers)
	if threshold == 0 {
		return revealed, nil
	}

	var totalWeight uint64
	for _, c := range candidates {
		totalWeight += c.weight
	}
	if totalWeight < threshold {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrThresholdNotMet, totalWeight, threshold)
	}

	cap := threshold
	if cap > math.MaxInt32 {
		cap = math.MaxInt32
	}
	capInt := int(cap)

	if (len(candidates)+1)*(capInt+1) > dpSelectionLimit {
		sort.Slice(candidates, func(i, j int) bool { return candidates[i].delta < candidates[j].delta })
		var sum uint64
		for _, c := range candidates {
			if sum >= threshold {
				break
			}
			revealed[c.idx] = true
			sum += c.weight
		}
		return revealed, nil
	}

	const unreachable = math.MaxInt32
	rows := len(candidates) + 1
	dp := make([][]int, rows)
	for k := range dp {
		dp[k] = make([]int, capInt+1)
		for w := range dp[k] {
			dp[k][w] = unreachable
		}
	}
	dp[0][0] = 0
	for k, c := range candidates {
		w := int(c.weight)
		if w > capInt {
			w = capInt
		}
		for have := 0; have <= capInt; have++ {
			dp[k+1][have] = dp[k][have]
		}
		for have := 0; have <= capInt; have++ {
			if dp[k][have] == unreachable {
				continue
			}
			next := have + w
			if next > capInt {
				next = capInt
			}
			if cost := dp[k][have] + c.delta; cost < dp[k+1][next] {
				dp[k+1][next] = cost
			}
		}
	}

	have := capInt
	for k := len(candidates); k > 0; k-- {
		c := candidates[k-1]
		w := int(c.weight)
		if w > capInt {
			w = capInt
		}
		prevWithout := have
		if dp[k][have] == dp[k-1][prevWithout] {
			continue
		}
		revealed[c.idx] = true
		// have may be a capped sum, so find the predecessor state that
		// actually produced dp[k][have] rather than assuming have-w.
		for prev := 0; prev <= capInt; prev++ {
			next := prev + w
			if next > capInt {
				next = capInt
			}
			if next == have && dp[k-1][prev] != unreachable && dp[k-1][prev]+c.delta == dp[k][have] {
				have = prev
				break
			}
		}
	}
	return revealed, nil
}

// selectOptimalSubset chooses which members with a known Subfulfillment to
// reveal so that their weights sum to at least threshold, minimizing the
// total serialized payload size. Members without a Subfulfillment are never
// selected: there is nothing to reveal for them. This drives the actual
// writePayload reveal choice, which can only work with subfulfillments this
// instance actually holds.
func selectOptimalSubset(members []ThresholdMember, threshold uint64, depth int) ([]bool, error) {
	var candidates []lengthCandidate
	for i, m := range members {
		if m.Subfulfillment == nil {
			continue
		}
		condLen := varOctetWrapLen(len(m.condition().Binary()))
		fulfLen, err := fulfillmentWrapLen(m.Subfulfillment, depth)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, lengthCandidate{idx: i, weight: m.Weight, delta: fulfLen - condLen})
	}
	return selectMinCostSubset(len(members), threshold, candidates)
}

// selectMaxLengthCandidates chooses, for the purpose of predicting
// max_fulfillment_length, which members would be revealed if the fulfiller
// held every member's subfulfillment. Per §4.6, the prediction must bound
// every legal fulfillment over this member set, not just the one this
// concrete instance happens to hold: a member with only a Subcondition
// today may still be revealed by a different party later, since a
// threshold condition's hash commits only to the (weight, condition)
// multiset, not to who can fulfill which member. So every member is a
// candidate here, sized by member.condition().MaxFulfillmentLength(),
// which is available whether or not a concrete Subfulfillment is present.
func selectMaxLengthCandidates(members []ThresholdMember, threshold uint64) ([]bool, error) {
	candidates := make([]lengthCandidate, len(members))
	for i, m := range members {
		cond := m.condition()
		condLen := varOctetWrapLen(len(cond.Binary()))
		fulfLen := varOctetWrapLen(2 + int(cond.MaxFulfillmentLength))
		candidates[i] = lengthCandidate{idx: i, weight: m.Weight, delta: fulfLen - condLen}
	}
	return selectMinCostSubset(len(members), threshold, candidates)
}

// thresholdMaxLength predicts the worst-case serialized payload size for
// members under threshold, per §4.6's "sort by max_subfulfillment_length -
// max_subcondition_length" procedure.
func thresholdMaxLength(members []ThresholdMember, threshold uint64) uint64 {
	revealed, err := selectMaxLengthCandidates(members, threshold)
	if err != nil {
		// No combination of members can ever meet the threshold, regardless
		// of who holds what subfulfillment. Report the size as if every
		// member were downgraded to a condition, the only shape this
		// fulfillment could still take.
		revealed = make([]bool, len(members))
	}
	p := oer.NewPredictor()
	p.WriteVarUInt(threshold)
	p.WriteVarUInt(uint64(len(members)))
	for i, m := range members {
		p.WriteVarUInt(m.Weight)
		p.WriteOctetString([]byte{0x00})
		if revealed[i] {
			bodyLen := 2 + int(m.condition().MaxFulfillmentLength)
			p.AddVarOctetStringLen(bodyLen)
		} else {
			p.AddVarOctetStringLen(len(m.condition().Binary()))
		}
	}
	return uint64(p.Len())
}
