package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumValidity(t *testing.T) {
	for _, s := range Seasons() {
		assert.True(t, s.Valid(), s)
	}
	for _, o := range Occasions() {
		assert.True(t, o.Valid(), o)
	}
	for _, tod := range TimesOfDay() {
		assert.True(t, tod.Valid(), tod)
	}
	for _, i := range Intensities() {
		assert.True(t, i.Valid(), i)
	}

	assert.False(t, Season("summer").Valid())
	assert.False(t, Occasion("piknik").Valid())
	assert.False(t, TimeOfDay("jutro").Valid())
	assert.False(t, Intensity("blago").Valid())
	assert.False(t, Season("").Valid())
}

func TestItemTagHelpers(t *testing.T) {
	it := Item{
		Notes:    []string{"vanilija", "ambra"},
		Season:   []Season{SeasonWinter},
		Occasion: []Occasion{OccasionNight, OccasionDate},
	}

	assert.True(t, it.HasSeason(SeasonWinter))
	assert.False(t, it.HasSeason(SeasonSummer))
	assert.True(t, it.HasOccasion(OccasionDate))
	assert.False(t, it.HasOccasion(OccasionWork))
	assert.True(t, it.HasNote("ambra"))
	assert.False(t, it.HasNote("citrus"))
	// Note matching is exact, not case-folded.
	assert.False(t, it.HasNote("Vanilija"))
}
