// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package registry

import (
	"sort"

	"github.com/danielhkuo/printvote/models"
)

// BuildTally ranks candidates by vote count, highest first. Ties keep the
// order of the input slice. Winner is only set once at least one vote exists.
func BuildTally(candidates []models.Candidate) models.Tally {
	ranked := make([]models.Candidate, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].VoteCount > ranked[j].VoteCount
	})

	total := 0
	for _, c := range ranked {
		total += c.VoteCount
	}

	tally := models.Tally{
		TotalVotes: total,
		Entries:    make([]models.TallyEntry, len(ranked)),
	}
	for i, c := range ranked {
		tally.Entries[i] = models.TallyEntry{
			Rank:       i + 1, // 1-indexed ranking
			Candidate:  c,
			VoteCount:  c.VoteCount,
			Percentage: percentOf(c.VoteCount, total),
		}
	}

	if total > 0 {
		winner := tally.Entries[0]
		tally.Winner = &winner
	}

	return tally
}
