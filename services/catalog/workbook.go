package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/tealeg/xlsx"
)

const workbookDateLayout = "2006-01-02 15:04:05"

var exportHeaders = []string{
	"ID", "Name", "Category", "NewPrice", "OldPrice", "Available", "Image", "Date",
}

// Export writes the whole catalog to w as an .xlsx workbook.
func (m *Manager) Export(ctx context.Context, w io.Writer) error {
	products, err := m.List(ctx)
	if err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetFloat(p.NewPrice)
		row.AddCell().SetFloat(p.OldPrice)
		row.AddCell().SetBool(p.Available)
		row.AddCell().SetString(p.Image)
		row.AddCell().SetString(p.Date.Format(workbookDateLayout))
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// ImportResult counts the rows handled by Import.
type ImportResult struct {
	Created int `json:"created_count"`
	Skipped int `json:"skipped_count"`
}

// Import adds one product per data row of the first sheet, in the column
// layout Export writes. The ID column is ignored; every row gets a fresh id.
// Rows that fail validation are skipped.
func (m *Manager) Import(ctx context.Context, r io.ReaderAt, size int64) (ImportResult, error) {
	var result ImportResult

	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return result, fmt.Errorf("%w: unreadable workbook: %v", ErrInvalidProduct, err)
	}
	if len(file.Sheets) == 0 || len(file.Sheets[0].Rows) < 2 {
		return result, fmt.Errorf("%w: workbook is empty or missing header row", ErrInvalidProduct)
	}

	rows := file.Sheets[0].Rows
	for _, row := range rows[1:] {
		in, ok := productFromRow(row)
		if !ok {
			result.Skipped++
			continue
		}
		if _, err := m.Add(ctx, in); err != nil {
			if errors.Is(err, ErrInvalidProduct) {
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Created++
	}
	return result, nil
}

func productFromRow(row *xlsx.Row) (ProductInput, bool) {
	if row == nil {
		return ProductInput{}, false
	}
	get := func(i int) string {
		if i < len(row.Cells) {
			return strings.TrimSpace(row.Cells[i].String())
		}
		return ""
	}

	newPrice, err1 := strconv.ParseFloat(get(3), 64)
	oldPrice, err2 := strconv.ParseFloat(get(4), 64)
	if err1 != nil || err2 != nil {
		return ProductInput{}, false
	}

	in := ProductInput{
		Name:     get(1),
		Category: get(2),
		NewPrice: &newPrice,
		OldPrice: &oldPrice,
		Image:    get(6),
	}
	if v := get(5); v != "" {
		available, err := strconv.ParseBool(v)
		if err != nil {
			return ProductInput{}, false
		}
		in.Available = &available
	}
	if v := get(7); v != "" {
		if date, err := time.Parse(workbookDateLayout, v); err == nil {
			in.Date = &date
		}
	}
	return in, true
}
