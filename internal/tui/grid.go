package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/studiowebux/carcli/internal/types"
)

// GridRow is one car as displayed in the grid
type GridRow struct {
	ID               string
	Name             string // "make model"
	Size             string
	Style            string
	TransmissionType string
	Price            float64
	ReleaseDate      int
}

// NewGridRow maps a record to its grid row
func NewGridRow(car types.CarRecord) GridRow {
	return GridRow{
		ID:               car.ID,
		Name:             car.Name(),
		Size:             car.Size,
		Style:            car.Style,
		TransmissionType: car.TransmissionType,
		Price:            car.Price,
		ReleaseDate:      car.ReleaseDate,
	}
}

// GridRows maps a page of records in order
func GridRows(cars []types.CarRecord) []GridRow {
	rows := make([]GridRow, 0, len(cars))
	for _, car := range cars {
		rows = append(rows, NewGridRow(car))
	}
	return rows
}

// ConfirmLabel is the label shown when asking to delete car ("releaseDate make model")
func ConfirmLabel(car types.CarRecord) string {
	return car.Label()
}

// Cells returns the row as table cells in column order
func (r GridRow) Cells() table.Row {
	return table.Row{
		r.Name,
		r.Size,
		r.Style,
		r.TransmissionType,
		fmt.Sprintf("%.2f", r.Price),
		strconv.Itoa(r.ReleaseDate),
	}
}

// gridColumns sizes the grid columns for the given width
func gridColumns(width int) []table.Column {
	// name gets whatever the fixed columns leave
	fixed := 10 + 12 + 18 + 12 + 8
	name := width - fixed - 14 // cell padding
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Size", Width: 10},
		{Title: "Style", Width: 12},
		{Title: "Transmission", Width: 18},
		{Title: "Price", Width: 12},
		{Title: "Year", Width: 8},
	}
}

// tableRows converts grid rows into bubbles table rows
func tableRows(rows []GridRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Cells())
	}
	return out
}
