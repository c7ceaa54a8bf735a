package loader

import (
	"fmt"

	"github.com/Franco-Arce/Tuchi/internal/model"
	"github.com/xuri/excelize/v2"
)

// ReadSheet loads every cell of the named sheet (the first sheet when
// name is empty), preserving whether each cell holds a true number so
// that amount parsing can pick the right format.
func ReadSheet(f *excelize.File, name string) ([][]Cell, error) {
	if name == "" {
		name = f.GetSheetName(0)
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", name, err)
	}

	cells := make([][]Cell, len(rows))
	for r, row := range rows {
		cells[r] = make([]Cell, len(row))
		for c, val := range row {
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, fmt.Errorf("cell coordinates (%d,%d): %w", c+1, r+1, err)
			}
			cellType, err := f.GetCellType(name, axis)
			if err != nil {
				return nil, fmt.Errorf("cell type %s: %w", axis, err)
			}
			cells[r][c] = Cell{
				Value:   val,
				Numeric: cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeFormula,
			}
		}
	}
	return cells, nil
}

// BookFile opens a book workbook and normalizes its first sheet.
func BookFile(path string, headerRow int) ([]model.BookEntry, error) {
	rows, err := fileCells(path)
	if err != nil {
		return nil, err
	}
	return Book(rows, headerRow)
}

// BankFile opens a bank statement workbook and normalizes its first
// sheet.
func BankFile(path string, headerRow int) ([]model.BankEntry, error) {
	rows, err := fileCells(path)
	if err != nil {
		return nil, err
	}
	return Bank(rows, headerRow)
}

func fileCells(path string) ([][]Cell, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadSheet(f, "")
}
