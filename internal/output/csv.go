package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// ProjectionCSVFormatter writes the accumulation projection, one row per year
type ProjectionCSVFormatter struct{}

func (c ProjectionCSVFormatter) Name() string { return "csv" }

func (c ProjectionCSVFormatter) Format(r *Report) ([]byte, error) {
	if r == nil || r.Summary == nil {
		return nil, fmt.Errorf("report has no summary")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "AnnualExpenses", "RequiredCorpus", "ExpectedCorpus", "FFScorePct"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, row := range r.Summary.Projection {
		record := []string{
			strconv.Itoa(row.Year),
			strconv.Itoa(row.Age),
			row.AnnualExpenses.StringFixed(2),
			row.RequiredCorpus.StringFixed(2),
			row.ExpectedCorpus.StringFixed(2),
			row.FFScorePct.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
