package advisor

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/scentlab/scent-cli/internal/model"
)

// decodeAdvice parses the model's raw text as the advice JSON object and
// enforces the minimal contract: summary is a non-empty string, tips and
// ranked are present as arrays (possibly empty). The transport envelope has
// already been unwrapped by the Generator, so this is the second of the two
// parse steps.
func decodeAdvice(raw string) (*model.AdvisoryResult, error) {
	var result model.AdvisoryResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &result); err != nil {
		return nil, eris.Wrap(err, "advisor: parse advice")
	}

	if strings.TrimSpace(result.Summary) == "" {
		return nil, eris.New("advisor: advice missing summary")
	}
	// nil means the key was absent; an empty array decodes to a non-nil slice.
	if result.Tips == nil {
		return nil, eris.New("advisor: advice missing tips")
	}
	if result.Ranked == nil {
		return nil, eris.New("advisor: advice missing ranked")
	}

	return &result, nil
}
