package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/scentlab/scent-cli/internal/advisor"
	"github.com/scentlab/scent-cli/internal/model"
	"github.com/scentlab/scent-cli/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Score the catalog against questionnaire answers",
	Long: `Scores every catalog item against the questionnaire answers, prints the
top matches, and optionally asks the configured LLM provider for advisory
text over the picks.

Examples:
  # Office perfume for winter days
  recommend --occasion posao --season zima --time dan --intensity srednje

  # Date night with note preferences and advisory text
  recommend --occasion dejt --season jesen --time noć --intensity jako \
    --notes vanilija,ambra --avoid citrus --advice`,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.String("occasion", "", "occasion: posao, dejt, izlazak, casual, svečano")
	f.String("season", "", "season: proljeće, ljeto, jesen, zima")
	f.String("time", "", "time of day: dan, noć")
	f.String("intensity", "", "intensity: svježe, srednje, jako")
	f.String("notes", "", "comma-separated preferred notes")
	f.String("avoid", "", "comma-separated notes to avoid")
	f.Float64("budget", 0, "budget in EUR (informational)")
	f.Int("limit", 0, "maximum number of recommendations (0=use config default)")
	f.Bool("advice", false, "request LLM advisory text for the picks")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	answers, err := answersFromFlags(cmd)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "table" && format != "json" {
		return eris.Errorf("recommend: --format must be table or json (got %q)", format)
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.Recommend.Limit
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	catalog, err := st.ListItems(ctx)
	if err != nil {
		return err
	}
	if len(catalog) == 0 {
		fmt.Println("Catalog is empty. Run 'catalog import <file>' first.")
		return nil
	}

	recs := recommend.Score(answers, catalog, limit)

	var advice *model.AdvisoryResult
	if wantAdvice, _ := cmd.Flags().GetBool("advice"); wantAdvice && len(recs) > 0 {
		advice = fetchAdvice(ctx, answers, recs)
	}

	if format == "json" {
		return printRecommendJSON(recs, advice)
	}
	printRecommendTable(recs, advice)
	return nil
}

// fetchAdvice asks the configured provider for advisory text. Advisory is
// strictly additive: any failure is logged and the deterministic picks
// stand on their own.
func fetchAdvice(ctx context.Context, answers model.Answers, recs []model.Recommendation) *model.AdvisoryResult {
	bridge, err := advisor.FromConfig(cfg.Advisory)
	if err != nil {
		zap.L().Warn("advisory disabled", zap.Error(err))
		return nil
	}

	result, err := bridge.Advise(ctx, answers, recs)
	if err != nil {
		if errors.Is(err, advisor.ErrUnavailable) {
			zap.L().Warn("advisory unavailable", zap.Error(err))
		} else {
			zap.L().Warn("advisory failed", zap.Error(err))
		}
		return nil
	}
	return result
}

func answersFromFlags(cmd *cobra.Command) (model.Answers, error) {
	occasion, _ := cmd.Flags().GetString("occasion")
	season, _ := cmd.Flags().GetString("season")
	timeOfDay, _ := cmd.Flags().GetString("time")
	intensity, _ := cmd.Flags().GetString("intensity")
	notes, _ := cmd.Flags().GetString("notes")
	avoid, _ := cmd.Flags().GetString("avoid")

	answers := model.Answers{
		Occasion:       model.Occasion(occasion),
		Season:         model.Season(season),
		TimeOfDay:      model.TimeOfDay(timeOfDay),
		Intensity:      model.Intensity(intensity),
		PreferredNotes: splitAndTrim(notes),
		AvoidNotes:     splitAndTrim(avoid),
	}
	if budget, _ := cmd.Flags().GetFloat64("budget"); budget > 0 {
		answers.BudgetEur = &budget
	}

	return answers, answers.Validate()
}

func printRecommendTable(recs []model.Recommendation, advice *model.AdvisoryResult) {
	if len(recs) == 0 {
		fmt.Println("No matches. Try loosening the note filters.")
		return
	}

	fmt.Printf("%-4s %-20s %-30s %6s\n", "#", "Brand", "Name", "Score")
	fmt.Println(strings.Repeat("-", 64))
	for i, r := range recs {
		fmt.Printf("%-4d %-20s %-30s %6d\n", i+1, r.Item.Brand, r.Item.Name, r.Score)
		for _, reason := range r.Reasons {
			fmt.Printf("     - %s\n", reason)
		}
	}

	if advice == nil {
		return
	}
	fmt.Printf("\n--- Advisory ---\n%s\n", advice.Summary)
	for _, tip := range advice.Tips {
		fmt.Printf("  * %s\n", tip)
	}
	for _, ranked := range advice.Ranked {
		fmt.Printf("  %s: %s\n", ranked.ID, ranked.Why)
	}
	if len(advice.Alternatives) > 0 {
		fmt.Printf("  Also consider: %s\n", strings.Join(advice.Alternatives, ", "))
	}
}

func printRecommendJSON(recs []model.Recommendation, advice *model.AdvisoryResult) error {
	out := struct {
		Recommendations []model.Recommendation `json:"recommendations"`
		Advice          *model.AdvisoryResult  `json:"advice,omitempty"`
	}{recs, advice}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(out), "recommend: encode output")
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
