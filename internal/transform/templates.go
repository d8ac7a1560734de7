package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/finfree/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Category    string
	Transforms  []StateTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names in alphabetical order
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Template categories, in help order
const (
	categoryMarket   = "Market Assumptions"
	categorySavings  = "Savings"
	categorySpending = "Spending"
)

// CreateBuiltInTemplates creates a template registry with the common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "conservative",
		Description: "Returns 3 points lower, inflation 1 point higher",
		Category:    categoryMarket,
		Transforms: []StateTransform{
			&AdjustReturn{Delta: decimal.NewFromInt(-3)},
			&AdjustInflation{Delta: decimal.NewFromInt(1)},
		},
	})

	registry.Register(Template{
		Name:        "aggressive",
		Description: "Returns 2 points higher",
		Category:    categoryMarket,
		Transforms: []StateTransform{
			&AdjustReturn{Delta: decimal.NewFromInt(2)},
		},
	})

	registry.Register(Template{
		Name:        "high_inflation",
		Description: "Inflation 3 points higher",
		Category:    categoryMarket,
		Transforms: []StateTransform{
			&AdjustInflation{Delta: decimal.NewFromInt(3)},
		},
	})

	registry.Register(Template{
		Name:        "save_more_10pct",
		Description: "Save 10% more every month",
		Category:    categorySavings,
		Transforms: []StateTransform{
			&ScaleSavings{Factor: decimal.NewFromFloat(1.10)},
		},
	})

	registry.Register(Template{
		Name:        "save_more_25pct",
		Description: "Save 25% more every month",
		Category:    categorySavings,
		Transforms: []StateTransform{
			&ScaleSavings{Factor: decimal.NewFromFloat(1.25)},
		},
	})

	registry.Register(Template{
		Name:        "lean_fire",
		Description: "Cut recurring expenses by a quarter",
		Category:    categorySpending,
		Transforms: []StateTransform{
			&ScaleExpenses{Factor: decimal.NewFromFloat(0.75)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base state
func ApplyTemplate(base *domain.AppState, template Template) (*domain.AppState, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		t := registry.templates[name]
		categories[t.Category] = append(categories[t.Category], t)
	}

	for _, category := range []string{categoryMarket, categorySavings, categorySpending, ""} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		if category == "" {
			category = "Other"
		}
		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  finfree compare --with conservative,save_more_10pct\n")
	sb.WriteString("  finfree compare --with lean_fire --transform adjust_return:delta=-1\n")

	return sb.String()
}
