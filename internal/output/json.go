package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rgehrsitz/finfree/internal/domain"
)

// JSONFormatter emits the derived summary as JSON
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

type jsonReport struct {
	Currency    string                 `json:"currency"`
	GeneratedAt time.Time              `json:"generated_at"`
	Name        string                 `json:"name,omitempty"`
	Summary     *domain.DerivedSummary `json:"summary"`
}

func (j JSONFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	doc := jsonReport{
		Currency:    r.Currency,
		GeneratedAt: r.GeneratedAt,
		Summary:     r.Summary,
	}
	if r.State != nil {
		doc.Name = r.State.Personal.Name
	}
	if j.Pretty {
		return json.MarshalIndent(doc, "", "  ")
	}
	return json.Marshal(doc)
}

// SensitivityJSONFormatter emits sensitivity analyses as indented JSON
type SensitivityJSONFormatter struct{}

func (s SensitivityJSONFormatter) Name() string { return "json" }

func (s SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
