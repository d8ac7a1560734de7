package compare

import (
	"context"
	"fmt"
	"time"

	"github.com/rgehrsitz/finfree/internal/calculation"
	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/rgehrsitz/finfree/internal/transform"
)

// BaseScenarioName labels the unmodified state in a comparison
const BaseScenarioName = "current"

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	Templates  []string  // built-in template names
	Transforms []string  // ad-hoc transform specs, each run as its own alternative
	AsOf       time.Time // zero means now
}

// Compare recomputes the base state and every requested alternative
func (ce *CompareEngine) Compare(
	ctx context.Context,
	state *domain.AppState,
	options CompareOptions,
) (*ComparisonSet, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}

	baseResult, err := ce.run(BaseScenarioName, state, options.AsOf)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(state, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.run(template.Name, modified, options.AsOf)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	for _, spec := range options.Transforms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTransforms(state, []transform.StateTransform{t})
		if err != nil {
			return nil, err
		}

		altResult, err := ce.run(spec, modified, options.AsOf)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", spec, err)
		}
		altResult.Description = t.Description()
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   BaseScenarioName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) run(name string, state *domain.AppState, asOf time.Time) (ComparisonResult, error) {
	s := state.Clone()
	s.Normalize()
	summary, err := ce.CalcEngine.Recompute(s, calculation.ParamsFromAssumptions(s.Assumptions, asOf))
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, summary, s.Assumptions), nil
}
