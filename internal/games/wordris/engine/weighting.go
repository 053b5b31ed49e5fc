package engine

import "math/rand"

// occurrence is one letter position of one target word, with the share of
// settled tiles currently carrying that letter.
type occurrence struct {
	letter rune
	amount float64
}

// NextLetter picks the next letter to drop.
//
// Every letter of every word is an occurrence whose amount is the fraction
// of settled tiles showing that letter (0 for all when nothing is settled).
// The occurrences tied at the lowest amount form the pool; easy further
// draws, with replacement, from the occurrences whose letter is not already
// in the pool. The result is a uniform pick from the pool. Returns 0 when
// the words hold no letters.
func NextLetter(words []string, settled []rune, easy int, rng *rand.Rand) rune {
	counts := make(map[rune]int, len(settled))
	for _, r := range settled {
		counts[r]++
	}

	var occ []occurrence
	for _, w := range words {
		for _, r := range w {
			amount := 0.0
			if len(settled) > 0 {
				amount = float64(counts[r]) / float64(len(settled))
			}
			occ = append(occ, occurrence{letter: r, amount: amount})
		}
	}
	if len(occ) == 0 {
		return 0
	}

	lowest := occ[0].amount
	for _, o := range occ[1:] {
		if o.amount < lowest {
			lowest = o.amount
		}
	}

	var pool []occurrence
	needy := make(map[rune]bool)
	for _, o := range occ {
		if o.amount == lowest {
			pool = append(pool, o)
			needy[o.letter] = true
		}
	}

	var remaining []occurrence
	for _, o := range occ {
		if !needy[o.letter] {
			remaining = append(remaining, o)
		}
	}
	if len(remaining) > 0 {
		for j := 0; j < easy; j++ {
			pool = append(pool, remaining[rng.Intn(len(remaining))])
		}
	}

	return pool[rng.Intn(len(pool))].letter
}
