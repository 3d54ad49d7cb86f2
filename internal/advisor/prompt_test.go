package advisor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/scentlab/scent-cli/internal/model"
)

func TestBuildPrompt_ContainsAnswersAndCandidates(t *testing.T) {
	prompt := BuildPrompt(testAnswers(), testRecs())

	assert.Contains(t, prompt, "occasion: posao")
	assert.Contains(t, prompt, "season: zima")
	assert.Contains(t, prompt, "time of day: dan")
	assert.Contains(t, prompt, "intensity: srednje")
	assert.Contains(t, prompt, "likes notes: vanilija")
	assert.Contains(t, prompt, "avoids notes: oud")
	assert.Contains(t, prompt, "budget: not set")

	// Reduced candidate view, as JSON.
	assert.Contains(t, prompt, `"id":"p1"`)
	assert.Contains(t, prompt, `"brand":"Acme"`)
	assert.Contains(t, prompt, `"score":6`)
	assert.Contains(t, prompt, `"longevity":7`)
}

func TestBuildPrompt_PrivacyReducedView(t *testing.T) {
	recs := testRecs()
	recs[0].Item.Concentration = "EDP"
	recs[0].Item.Gender = "unisex"
	recs[0].Item.Year = 2019
	recs[0].Item.Season = []model.Season{model.SeasonWinter}

	prompt := BuildPrompt(testAnswers(), recs)

	// Only the reduced fields go out: no concentration, gender, year, or the
	// item's own season/occasion tags.
	assert.NotContains(t, prompt, "EDP")
	assert.NotContains(t, prompt, "unisex")
	assert.NotContains(t, prompt, "2019")
	assert.NotContains(t, prompt, `"season"`)
}

func TestBuildPrompt_EnumeratesContract(t *testing.T) {
	prompt := BuildPrompt(testAnswers(), nil)

	assert.Contains(t, prompt, "EXACTLY ONE valid JSON object")
	for _, key := range []string{`"summary"`, `"tips"`, `"ranked"`, `"alternatives"`} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, "non-empty string")
}

func TestBuildPrompt_BudgetAndEmptyNotes(t *testing.T) {
	answers := testAnswers()
	answers.PreferredNotes = nil
	answers.AvoidNotes = nil
	budget := 120.0
	answers.BudgetEur = &budget

	prompt := BuildPrompt(answers, nil)
	assert.Contains(t, prompt, "budget: 120 EUR")
	assert.Contains(t, prompt, "likes notes: -")
	assert.Contains(t, prompt, "avoids notes: -")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt(testAnswers(), testRecs())
	b := BuildPrompt(testAnswers(), testRecs())
	assert.True(t, strings.Contains(a, "fragrance advisor"))
	assert.Equal(t, a, b)
}
