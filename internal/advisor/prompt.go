package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scentlab/scent-cli/internal/model"
)

// candidate is the reduced, privacy-conscious view of a recommendation sent
// to the advisory service. Never the full catalog record.
type candidate struct {
	ID        string          `json:"id"`
	Brand     string          `json:"brand"`
	Name      string          `json:"name"`
	Notes     []string        `json:"notes"`
	Intensity model.Intensity `json:"intensity"`
	Longevity int             `json:"longevity"`
	Score     int             `json:"score"`
}

const promptInstructions = `TASK:
1) Write a short summary (1-2 sentences).
2) Give 3-6 practical tips.
3) Return a ranked entry for each candidate: its id plus "why" (1-2 sentences).
4) Optionally list 1-3 alternative styles or note directions (not brands).

FORMAT: Return EXACTLY ONE valid JSON object and nothing else - no prose, no
markdown fences. Required top-level keys and types:
{
  "summary": "string",
  "tips": ["string"],
  "ranked": [{"id": "string", "why": "string"}],
  "alternatives": ["string"]
}
"summary" must be a non-empty string; "tips" and "ranked" must be present as
arrays (they may be empty); "alternatives" is optional.`

// BuildPrompt renders the advisory instruction for one request: the user's
// answers, the reduced candidate list, and a strict output contract matching
// what decodeAdvice will accept.
func BuildPrompt(answers model.Answers, recs []model.Recommendation) string {
	candidates := make([]candidate, 0, len(recs))
	for _, r := range recs {
		candidates = append(candidates, candidate{
			ID:        r.Item.ID,
			Brand:     r.Item.Brand,
			Name:      r.Item.Name,
			Notes:     r.Item.Notes,
			Intensity: r.Item.Intensity,
			Longevity: r.Item.Longevity,
			Score:     r.Score,
		})
	}
	// Marshal of these fields cannot fail; ignore the error like a static value.
	candidateJSON, _ := json.Marshal(candidates)

	budget := "not set"
	if answers.BudgetEur != nil {
		budget = fmt.Sprintf("%.0f EUR", *answers.BudgetEur)
	}

	var b strings.Builder
	b.WriteString("You are a fragrance advisor. The user wants a perfume recommendation.\n\n")
	b.WriteString("USER:\n")
	fmt.Fprintf(&b, "- occasion: %s\n", answers.Occasion)
	fmt.Fprintf(&b, "- season: %s\n", answers.Season)
	fmt.Fprintf(&b, "- time of day: %s\n", answers.TimeOfDay)
	fmt.Fprintf(&b, "- intensity: %s\n", answers.Intensity)
	fmt.Fprintf(&b, "- likes notes: %s\n", orDash(answers.PreferredNotes))
	fmt.Fprintf(&b, "- avoids notes: %s\n", orDash(answers.AvoidNotes))
	fmt.Fprintf(&b, "- budget: %s\n", budget)
	b.WriteString("\nCANDIDATES (from our scoring algorithm):\n")
	b.Write(candidateJSON)
	b.WriteString("\n\n")
	b.WriteString(promptInstructions)
	return b.String()
}

func orDash(notes []string) string {
	if len(notes) == 0 {
		return "-"
	}
	return strings.Join(notes, ", ")
}
