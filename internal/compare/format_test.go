package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func intPtr(i int) *int { return &i }

func sampleComparisonSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "current",
		StatePath:        "/path/to/finfree.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:   "current",
			DepletionYears: 12,
			YearsToFreedom: intPtr(18),
			FFScorePct:     decimal.NewFromFloat(22.5),
			RequiredCorpus: decimal.NewFromInt(12000000),
			MonthlySavings: decimal.NewFromInt(50000),
			HealthOverall:  decimal.NewFromInt(64),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:       "lean_fire",
				Description:        "Cut recurring expenses by a quarter",
				DepletionYears:     17,
				YearsToFreedom:     intPtr(13),
				FFScorePct:         decimal.NewFromInt(30),
				RequiredCorpus:     decimal.NewFromInt(9000000),
				MonthlySavings:     decimal.NewFromInt(65000),
				DepletionYearsDiff: 5,
				FreedomYearsDiff:   intPtr(-5),
				FFScoreDiff:        decimal.NewFromFloat(7.5),
				RequiredCorpusDiff: decimal.NewFromInt(-3000000),
			},
		},
		Recommendations: []string{
			"Fastest Freedom: lean_fire reaches financial freedom 5 years sooner than base",
		},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.Format(sampleComparisonSet())

	if result == "" {
		t.Fatal("Expected formatted output, got empty string")
	}

	for _, want := range []string{
		"FINANCIAL FREEDOM SCENARIO COMPARISON",
		"Base Scenario: current",
		"State: /path/to/finfree.yaml",
		"current (base)",
		"lean_fire",
		"18 years",
		"12.00M",
		"Coverage:         +5 years",
		"Years to Freedom: -5",
		"FF Score:         +7.50 points",
		"Required Corpus:  -3.00M",
		"RECOMMENDATIONS",
	} {
		if !strings.Contains(result, want) {
			t.Errorf("Expected %q in output:\n%s", want, result)
		}
	}
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	formatter := &TableFormatter{}
	compSet := sampleComparisonSet()
	compSet.AlternativeResults = nil
	compSet.Recommendations = nil

	result := formatter.Format(compSet)

	if strings.Contains(result, "COMPARISON TO BASE") {
		t.Error("Should not show comparison section without alternatives")
	}
	if strings.Contains(result, "RECOMMENDATIONS") {
		t.Error("Should not show recommendations section without recommendations")
	}
}

func TestTableFormatter_formatRow(t *testing.T) {
	formatter := &TableFormatter{}

	unreachable := &ComparisonResult{
		ScenarioName:   "a_very_long_scenario_name_that_overflows",
		DepletionYears: 100,
		FFScorePct:     decimal.NewFromInt(3),
		RequiredCorpus: decimal.NewFromInt(900),
	}
	row := formatter.formatRow(unreachable, 22, 14, false)

	if !strings.Contains(row, "never") {
		t.Errorf("Expected unreachable freedom to read 'never', got %q", row)
	}
	if !strings.Contains(row, "100+") {
		t.Errorf("Expected capped coverage to read '100+', got %q", row)
	}
	if !strings.Contains(row, "...") {
		t.Errorf("Expected long name to be truncated, got %q", row)
	}

	free := &ComparisonResult{ScenarioName: "rich", YearsToFreedom: intPtr(0)}
	if row := formatter.formatRow(free, 22, 14, true); !strings.Contains(row, "now") || !strings.Contains(row, "rich (base)") {
		t.Errorf("Unexpected row %q", row)
	}
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	formatter := &TableFormatter{}

	result := formatter.FormatCompact(sampleComparisonSet())

	expected := "Base: current | lean_fire: +7.5%"
	if result != expected {
		t.Errorf("Expected %q, got %q", expected, result)
	}
}

func TestCSVFormatter_Format(t *testing.T) {
	formatter := &CSVFormatter{}

	result, err := formatter.Format(sampleComparisonSet())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(result)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Scenario" {
		t.Errorf("Expected header row, got %v", records[0])
	}
	if records[1][1] != "base" || records[2][1] != "alternative" {
		t.Errorf("Expected base then alternative rows, got %v / %v", records[1], records[2])
	}
	if records[1][3] != "18" || records[2][9] != "-5" {
		t.Errorf("Unexpected freedom columns: %v / %v", records[1], records[2])
	}
	if records[1][9] != "" {
		t.Errorf("Base has no freedom diff, got %q", records[1][9])
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	compSet := sampleComparisonSet()
	compSet.AlternativeResults[0].ScenarioName = "adjust_return:delta=-2&more"

	for _, pretty := range []bool{true, false} {
		formatter := &JSONFormatter{Pretty: pretty}

		result, err := formatter.Format(compSet)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(result), &decoded); err != nil {
			t.Fatalf("Output is not valid JSON: %v", err)
		}
		if decoded["base_scenario_name"] != "current" {
			t.Errorf("Expected base_scenario_name, got %v", decoded["base_scenario_name"])
		}
		if !strings.Contains(result, "delta=-2&more") {
			t.Error("Expected scenario names without HTML escaping")
		}
		if pretty != strings.Contains(result, "\n  ") {
			t.Errorf("Pretty=%v did not match indentation", pretty)
		}
	}
}
