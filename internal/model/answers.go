package model

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// Answers is one validated questionnaire result. The four enum fields are
// required; the scoring engine assumes Validate has already passed.
type Answers struct {
	Occasion       Occasion  `json:"occasion"`
	Season         Season    `json:"season"`
	TimeOfDay      TimeOfDay `json:"time_of_day"`
	Intensity      Intensity `json:"intensity"`
	PreferredNotes []string  `json:"preferred_notes,omitempty"`
	AvoidNotes     []string  `json:"avoid_notes,omitempty"`

	// BudgetEur is collected and surfaced to the advisory prompt but is not
	// consumed by the scoring formula.
	BudgetEur *float64 `json:"budget_eur,omitempty"`
}

// Validate checks that all required fields are present and drawn from their
// closed vocabularies. Callers must validate before invoking the scoring
// engine.
func (a Answers) Validate() error {
	var errs []string

	if a.Occasion == "" {
		errs = append(errs, "occasion is required")
	} else if !a.Occasion.Valid() {
		errs = append(errs, fmt.Sprintf("unknown occasion %q", a.Occasion))
	}

	if a.Season == "" {
		errs = append(errs, "season is required")
	} else if !a.Season.Valid() {
		errs = append(errs, fmt.Sprintf("unknown season %q", a.Season))
	}

	if a.TimeOfDay == "" {
		errs = append(errs, "time of day is required")
	} else if !a.TimeOfDay.Valid() {
		errs = append(errs, fmt.Sprintf("unknown time of day %q", a.TimeOfDay))
	}

	if a.Intensity == "" {
		errs = append(errs, "intensity is required")
	} else if !a.Intensity.Valid() {
		errs = append(errs, fmt.Sprintf("unknown intensity %q", a.Intensity))
	}

	if a.BudgetEur != nil && *a.BudgetEur <= 0 {
		errs = append(errs, "budget must be > 0 when set")
	}

	if len(errs) > 0 {
		return eris.Errorf("model: invalid answers: %s", strings.Join(errs, "; "))
	}
	return nil
}
