package reference

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadRows loads a reference CSV into raw rows for the normalizers.
// Ragged rows are allowed; the rating sheet has spacer columns and the
// normalizers do their own per-cell validation.
func ReadRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reference: open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reference: read %s: %w", path, err)
	}
	return rows, nil
}
