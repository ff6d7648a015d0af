package schedule

import (
	"math/rand"

	"github.com/fundwit/go-commons/types"
)

type Candidate struct {
	MemberID types.ID
	Score    int
}

// SelectMembers sequential weighted sampling without replacement: draw one
// candidate, remove it from the pool, recompute weights, repeat until k
// picks are made or the pool is exhausted. A pool smaller than k is not an
// error, the caller gets as many picks as the pool holds.
//
// Weights favor low scores: weight = maxScore(pool) - score + 1, where
// maxScore is taken over the remaining pool at each step. The +1 keeps the
// probability of every remaining candidate strictly positive, including the
// highest scorer.
func SelectMembers(pool []Candidate, k int, rng *rand.Rand) []types.ID {
	remaining := make([]Candidate, len(pool))
	copy(remaining, pool)

	picked := []types.ID{}
	for len(picked) < k && len(remaining) > 0 {
		idx := drawWeighted(remaining, rng)
		picked = append(picked, remaining[idx].MemberID)
		remaining = append(remaining[:idx], remaining[idx+1:]...)
	}
	return picked
}

func drawWeighted(pool []Candidate, rng *rand.Rand) int {
	maxScore := pool[0].Score
	for _, c := range pool[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	total := int64(0)
	for _, c := range pool {
		total += int64(maxScore - c.Score + 1)
	}

	draw := rng.Int63n(total)
	for i, c := range pool {
		draw -= int64(maxScore - c.Score + 1)
		if draw < 0 {
			return i
		}
	}
	return len(pool) - 1
}
