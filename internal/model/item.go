// Package model defines the domain types shared across the recommendation
// pipeline: catalog items, questionnaire answers, and scored recommendations.
package model

// Season is a closed set of season tags. The tag vocabulary matches the
// catalog data contract and must not be translated.
type Season string

const (
	SeasonSpring Season = "proljeće"
	SeasonSummer Season = "ljeto"
	SeasonAutumn Season = "jesen"
	SeasonWinter Season = "zima"
)

// Seasons returns all valid season tags.
func Seasons() []Season {
	return []Season{SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter}
}

// Valid reports whether s is a known season tag.
func (s Season) Valid() bool {
	switch s {
	case SeasonSpring, SeasonSummer, SeasonAutumn, SeasonWinter:
		return true
	}
	return false
}

// Occasion is a closed set of occasion tags.
type Occasion string

const (
	OccasionWork   Occasion = "posao"
	OccasionDate   Occasion = "dejt"
	OccasionNight  Occasion = "izlazak"
	OccasionCasual Occasion = "casual"
	OccasionFormal Occasion = "svečano"
)

// Occasions returns all valid occasion tags.
func Occasions() []Occasion {
	return []Occasion{OccasionWork, OccasionDate, OccasionNight, OccasionCasual, OccasionFormal}
}

// Valid reports whether o is a known occasion tag.
func (o Occasion) Valid() bool {
	switch o {
	case OccasionWork, OccasionDate, OccasionNight, OccasionCasual, OccasionFormal:
		return true
	}
	return false
}

// TimeOfDay is a closed set of time-of-day tags.
type TimeOfDay string

const (
	TimeDay   TimeOfDay = "dan"
	TimeNight TimeOfDay = "noć"
)

// TimesOfDay returns all valid time-of-day tags.
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{TimeDay, TimeNight}
}

// Valid reports whether t is a known time-of-day tag.
func (t TimeOfDay) Valid() bool {
	return t == TimeDay || t == TimeNight
}

// Intensity is a closed set of three ordered intensity levels,
// fresh < medium < strong.
type Intensity string

const (
	IntensityFresh  Intensity = "svježe"
	IntensityMedium Intensity = "srednje"
	IntensityStrong Intensity = "jako"
)

// Intensities returns all valid intensity levels in ascending order.
func Intensities() []Intensity {
	return []Intensity{IntensityFresh, IntensityMedium, IntensityStrong}
}

// Valid reports whether i is a known intensity level.
func (i Intensity) Valid() bool {
	switch i {
	case IntensityFresh, IntensityMedium, IntensityStrong:
		return true
	}
	return false
}

// Item is a single catalog record. Items are owned by the catalog store and
// treated as immutable by the recommendation pipeline.
type Item struct {
	ID            string     `json:"id"`
	Brand         string     `json:"brand"`
	Name          string     `json:"name"`
	Concentration string     `json:"concentration,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	Year          int        `json:"year,omitempty"`
	Intensity     Intensity  `json:"intensity"`
	Longevity     int        `json:"longevity"` // 0-10 rating
	Notes         []string   `json:"notes"`
	Season        []Season   `json:"season"`
	Occasion      []Occasion `json:"occasion"`
}

// HasSeason reports whether the item carries the given season tag.
func (it Item) HasSeason(s Season) bool {
	for _, v := range it.Season {
		if v == s {
			return true
		}
	}
	return false
}

// HasOccasion reports whether the item carries the given occasion tag.
func (it Item) HasOccasion(o Occasion) bool {
	for _, v := range it.Occasion {
		if v == o {
			return true
		}
	}
	return false
}

// HasNote reports whether the item carries the given scent note.
func (it Item) HasNote(note string) bool {
	for _, n := range it.Notes {
		if n == note {
			return true
		}
	}
	return false
}
