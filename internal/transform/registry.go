package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (StateTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("adjust_return", createAdjustReturn)
	registry.Register("adjust_inflation", createAdjustInflation)
	registry.Register("adjust_savings_growth", createAdjustSavingsGrowth)
	registry.Register("set_life_expectancy", createSetLifeExpectancy)
	registry.Register("set_savings", createSetMonthlySavings)
	registry.Register("scale_savings", createScaleSavings)
	registry.Register("scale_expenses", createScaleExpenses)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (StateTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "adjust_return:delta=-2"
func (r *TransformRegistry) ParseTransformSpec(spec string) (StateTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func decimalParam(transform, key string, params map[string]string) (decimal.Decimal, error) {
	raw, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

// Factory functions for each transform

func createAdjustReturn(params map[string]string) (StateTransform, error) {
	delta, err := decimalParam("adjust_return", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustReturn{Delta: delta}, nil
}

func createAdjustInflation(params map[string]string) (StateTransform, error) {
	delta, err := decimalParam("adjust_inflation", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustInflation{Delta: delta}, nil
}

func createAdjustSavingsGrowth(params map[string]string) (StateTransform, error) {
	delta, err := decimalParam("adjust_savings_growth", "delta", params)
	if err != nil {
		return nil, err
	}
	return &AdjustSavingsGrowth{Delta: delta}, nil
}

func createSetLifeExpectancy(params map[string]string) (StateTransform, error) {
	ageStr, ok := params["age"]
	if !ok {
		return nil, fmt.Errorf("set_life_expectancy requires 'age' parameter")
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return nil, fmt.Errorf("invalid age value: %w", err)
	}

	return &SetLifeExpectancy{Age: age}, nil
}

func createSetMonthlySavings(params map[string]string) (StateTransform, error) {
	amount, err := decimalParam("set_savings", "amount", params)
	if err != nil {
		return nil, err
	}
	return &SetMonthlySavings{Amount: amount}, nil
}

func createScaleSavings(params map[string]string) (StateTransform, error) {
	factor, err := decimalParam("scale_savings", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleSavings{Factor: factor}, nil
}

func createScaleExpenses(params map[string]string) (StateTransform, error) {
	factor, err := decimalParam("scale_expenses", "factor", params)
	if err != nil {
		return nil, err
	}
	return &ScaleExpenses{Factor: factor}, nil
}
