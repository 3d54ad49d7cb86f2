package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnswers() Answers {
	return Answers{
		Occasion:  OccasionWork,
		Season:    SeasonWinter,
		TimeOfDay: TimeDay,
		Intensity: IntensityMedium,
	}
}

func TestAnswersValidate(t *testing.T) {
	require.NoError(t, validAnswers().Validate())

	budget := 80.0
	a := validAnswers()
	a.BudgetEur = &budget
	a.PreferredNotes = []string{"vanilija"}
	a.AvoidNotes = []string{"citrus"}
	require.NoError(t, a.Validate())
}

func TestAnswersValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Answers)
		wantMsg string
	}{
		{"missing occasion", func(a *Answers) { a.Occasion = "" }, "occasion is required"},
		{"unknown occasion", func(a *Answers) { a.Occasion = "piknik" }, `unknown occasion "piknik"`},
		{"missing season", func(a *Answers) { a.Season = "" }, "season is required"},
		{"unknown season", func(a *Answers) { a.Season = "summer" }, `unknown season "summer"`},
		{"missing time of day", func(a *Answers) { a.TimeOfDay = "" }, "time of day is required"},
		{"unknown intensity", func(a *Answers) { a.Intensity = "blago" }, `unknown intensity "blago"`},
		{"non-positive budget", func(a *Answers) {
			zero := 0.0
			a.BudgetEur = &zero
		}, "budget must be > 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validAnswers()
			tt.mutate(&a)
			err := a.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestAnswersValidate_CollectsAllErrors(t *testing.T) {
	err := Answers{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "occasion is required")
	assert.Contains(t, err.Error(), "season is required")
	assert.Contains(t, err.Error(), "time of day is required")
	assert.Contains(t, err.Error(), "intensity is required")
}
