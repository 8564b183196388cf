package obis

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/reefwatch/hawksbill-analytics/internal/domain"
)

// LoadXLSX reads an export saved as an Excel workbook. The first sheet is the
// data sheet; its first row is the header.
func LoadXLSX(path string) (Result, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Result{}, fmt.Errorf("workbook has no sheets: %w", domain.ErrInvalidInput)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Result{}, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Result{}, fmt.Errorf("sheet %s has no header row: %w", sheets[0], domain.ErrInvalidInput)
	}

	idx, err := columnIndex(rows[0])
	if err != nil {
		return Result{}, err
	}

	var result Result
	for _, record := range rows[1:] {
		appendRow(&result, idx, record)
	}
	return result, nil
}
