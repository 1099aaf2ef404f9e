package export

import "fmt"

// Dataset is tabular export content. Every row has one value per header.
type Dataset struct {
	Headers []string
	Rows    [][]string
	// Widths optionally weights PDF columns; nil spreads them evenly.
	Widths []float64
}

// Validate checks the dataset shape.
func (d Dataset) Validate() error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("dataset requires at least one header")
	}
	if d.Widths != nil && len(d.Widths) != len(d.Headers) {
		return fmt.Errorf("dataset has %d widths for %d headers", len(d.Widths), len(d.Headers))
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("row %d has %d values, want %d", i, len(row), len(d.Headers))
		}
	}
	return nil
}
