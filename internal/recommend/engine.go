// Package recommend implements the deterministic catalog scoring engine.
package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/scentlab/scent-cli/internal/model"
)

// DefaultLimit is the number of recommendations returned when callers do not
// specify their own.
const DefaultLimit = 3

// Rule score deltas. The occasion match dominates: a scent that fits the
// wrong occasion is a worse miss than one that fits the wrong season.
const (
	seasonBonus    = 2
	occasionBonus  = 3
	intensityBonus = 2
	avoidPenalty   = 2 // per avoided note
)

// Score scores every catalog item against the answers and returns the top
// recommendations, best first. It is pure: no I/O, no shared state, identical
// inputs always produce identical output.
//
// Items that match nothing, or whose penalties outweigh their matches, are
// excluded; ties keep catalog iteration order. An empty catalog, a
// non-positive limit, or a catalog with no positive scorer all yield an empty
// result, never an error. Answers are assumed to have passed Validate.
func Score(answers model.Answers, catalog []model.Item, limit int) []model.Recommendation {
	if limit <= 0 || len(catalog) == 0 {
		return nil
	}

	scored := make([]model.Recommendation, 0, len(catalog))
	for _, item := range catalog {
		score := 0
		var reasons []string

		if item.HasSeason(answers.Season) {
			score += seasonBonus
			reasons = append(reasons, "matches season")
		}
		if item.HasOccasion(answers.Occasion) {
			score += occasionBonus
			reasons = append(reasons, "matches occasion")
		}
		if item.Intensity == answers.Intensity {
			score += intensityBonus
			reasons = append(reasons, "matching intensity")
		}

		if liked := notesIn(item.Notes, answers.PreferredNotes); len(liked) > 0 {
			score += len(liked)
			reasons = append(reasons, fmt.Sprintf("contains notes you like (%s)", strings.Join(liked, ", ")))
		}
		if avoided := notesIn(item.Notes, answers.AvoidNotes); len(avoided) > 0 {
			score -= avoidPenalty * len(avoided)
			reasons = append(reasons, fmt.Sprintf("contains notes you avoid (%s)", strings.Join(avoided, ", ")))
		}

		// A recommendation that matches nothing is not a recommendation.
		if score > 0 {
			scored = append(scored, model.Recommendation{Item: item, Score: score, Reasons: reasons})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

// notesIn returns the item notes present in wanted, preserving item note
// order. Duplicate notes in the item are kept; dedup is the catalog store's
// concern.
func notesIn(notes, wanted []string) []string {
	if len(notes) == 0 || len(wanted) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(wanted))
	for _, w := range wanted {
		set[w] = struct{}{}
	}
	var hit []string
	for _, n := range notes {
		if _, ok := set[n]; ok {
			hit = append(hit, n)
		}
	}
	return hit
}
