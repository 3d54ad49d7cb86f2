package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentlab/scent-cli/internal/config"
	"github.com/scentlab/scent-cli/internal/model"
	"github.com/scentlab/scent-cli/internal/recommend"
)

func setTestConfig(t *testing.T, advisory config.AdvisoryConfig) {
	t.Helper()
	prev := cfg
	cfg = &config.Config{Advisory: advisory}
	t.Cleanup(func() { cfg = prev })
}

func adviceFixtures() (model.Answers, []model.Recommendation) {
	answers := model.Answers{
		Occasion:  model.OccasionNight,
		Season:    model.SeasonWinter,
		TimeOfDay: model.TimeNight,
		Intensity: model.IntensityStrong,
	}
	recs := recommend.Score(answers, demoCatalog(), 3)
	return answers, recs
}

func TestFetchAdvice_Success(t *testing.T) {
	advice := `{"summary":"Zimski izlazak traži jak potpis.","tips":["Nanesi na pulsne točke."],"ranked":[{"id":"nightfall-oud","why":"Oud za hladne noći."}]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"model":    "llama3.1:8b",
			"response": advice,
			"done":     true,
		})
	}))
	defer srv.Close()

	setTestConfig(t, config.AdvisoryConfig{BaseURL: srv.URL, TimeoutSecs: 2, Temperature: 0.4})

	answers, recs := adviceFixtures()
	require.NotEmpty(t, recs)

	result := fetchAdvice(context.Background(), answers, recs)
	require.NotNil(t, result)
	assert.Equal(t, "Zimski izlazak traži jak potpis.", result.Summary)
}

func TestFetchAdvice_FailureIsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	setTestConfig(t, config.AdvisoryConfig{BaseURL: srv.URL, TimeoutSecs: 2})

	answers, recs := adviceFixtures()
	assert.Nil(t, fetchAdvice(context.Background(), answers, recs))
}

func TestFetchAdvice_BadProviderIsSoft(t *testing.T) {
	setTestConfig(t, config.AdvisoryConfig{Provider: "gemini"})

	answers, recs := adviceFixtures()
	assert.Nil(t, fetchAdvice(context.Background(), answers, recs))
}
