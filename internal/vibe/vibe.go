// Package vibe provides curated catalog filters. Each vibe is a named
// predicate over catalog items, useful as a browsing shortcut when the
// user does not want to answer the full questionnaire.
package vibe

import (
	"github.com/rotisserie/eris"

	"github.com/scentlab/scent-cli/internal/model"
)

// Vibe is a named mood filter over the catalog.
type Vibe struct {
	ID          string
	Title       string
	Description string
	matches     func(model.Item) bool
}

// All returns the built-in vibes in display order.
func All() []Vibe {
	return []Vibe{
		{
			ID:          "fresh",
			Title:       "Svježe i lagano",
			Description: "Citrusi, morske note i ljetna lakoća.",
			matches: func(it model.Item) bool {
				return it.HasNote("citrus") || it.HasNote("morsko") ||
					it.HasOccasion(model.OccasionCasual) || it.HasSeason(model.SeasonSummer)
			},
		},
		{
			ID:          "office",
			Title:       "Ured",
			Description: "Nenametljivi mirisi za radni dan.",
			matches: func(it model.Item) bool {
				return it.HasOccasion(model.OccasionWork) ||
					it.Intensity == model.IntensityFresh || it.Intensity == model.IntensityMedium
			},
		},
		{
			ID:          "date",
			Title:       "Dejt",
			Description: "Topli i zavodljivi potpisi.",
			matches: func(it model.Item) bool {
				return it.HasOccasion(model.OccasionDate) ||
					it.HasNote("vanilija") || it.HasNote("ambra") ||
					it.HasNote("mošus") || it.HasNote("koža")
			},
		},
		{
			ID:          "night",
			Title:       "Noćni izlazak",
			Description: "Jaki mirisi koji se primijete.",
			matches: func(it model.Item) bool {
				return it.HasOccasion(model.OccasionNight) || it.Intensity == model.IntensityStrong
			},
		},
		{
			ID:          "winter",
			Title:       "Zima",
			Description: "Gusti, topli mirisi za hladne dane.",
			matches: func(it model.Item) bool {
				return it.HasSeason(model.SeasonWinter) || it.HasSeason(model.SeasonAutumn) ||
					it.HasNote("vanilija") || it.HasNote("ambra") || it.HasNote("oud") ||
					it.HasNote("koža") || it.HasNote("začinsko")
			},
		},
		{
			ID:          "minimal",
			Title:       "Minimalizam",
			Description: "Čiste, jednostavne kompozicije.",
			matches: func(it model.Item) bool {
				return it.Intensity == model.IntensityFresh ||
					it.HasNote("iris") || it.HasNote("cvjetno") || it.HasNote("drvo")
			},
		},
	}
}

// Find returns the vibe with the given id.
func Find(id string) (*Vibe, error) {
	for _, v := range All() {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, eris.Errorf("vibe: unknown vibe %q", id)
}

// Filter returns the catalog items matching the vibe, deduplicated by id
// and in catalog order.
func (v *Vibe) Filter(catalog []model.Item) []model.Item {
	seen := make(map[string]bool, len(catalog))
	var out []model.Item
	for _, it := range catalog {
		if seen[it.ID] || !v.matches(it) {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}
