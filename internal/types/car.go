package types

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// CarRecord represents a single inventory item owned by the server
type CarRecord struct {
	ID               string  `json:"_id" yaml:"id"`
	Make             string  `json:"make" yaml:"make"`
	Model            string  `json:"model" yaml:"model"`
	Size             string  `json:"size" yaml:"size"`
	Style            string  `json:"style" yaml:"style"`
	TransmissionType string  `json:"transmission_type" yaml:"transmission_type"`
	Price            float64 `json:"price" yaml:"price"`
	ReleaseDate      int     `json:"release_date" yaml:"release_date"`
}

// UnmarshalJSON decodes a record, falling back to "id" when "_id" is missing
func (c *CarRecord) UnmarshalJSON(data []byte) error {
	type plain CarRecord
	aux := struct {
		*plain
		AltID string `json:"id"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = aux.AltID
	}
	return nil
}

// Draft returns the editable fields of the record
func (c CarRecord) Draft() CarDraft {
	return CarDraft{
		Make:             c.Make,
		Model:            c.Model,
		Size:             c.Size,
		Style:            c.Style,
		TransmissionType: c.TransmissionType,
		Price:            c.Price,
		ReleaseDate:      c.ReleaseDate,
	}
}

// Name returns the display name ("make model")
func (c CarRecord) Name() string {
	return c.Make + " " + c.Model
}

// Label returns the human-readable label used in confirmations ("releaseDate make model")
func (c CarRecord) Label() string {
	return fmt.Sprintf("%d %s %s", c.ReleaseDate, c.Make, c.Model)
}

// CarDraft is the client-to-server payload for create and update
type CarDraft struct {
	Make             string  `json:"make" yaml:"make" validate:"required"`
	Model            string  `json:"model" yaml:"model" validate:"required"`
	Size             string  `json:"size" yaml:"size" validate:"required"`
	Style            string  `json:"style" yaml:"style" validate:"required"`
	TransmissionType string  `json:"transmission_type" yaml:"transmission_type" validate:"required"`
	Price            float64 `json:"price" yaml:"price" validate:"required,gt=0"`
	ReleaseDate      int     `json:"release_date" yaml:"release_date" validate:"required,min=1886,max=9999"`
}

// Fields returns the draft as text values keyed by wire field name
func (d CarDraft) Fields() map[string]string {
	price := ""
	if d.Price != 0 {
		price = strconv.FormatFloat(d.Price, 'f', -1, 64)
	}
	year := ""
	if d.ReleaseDate != 0 {
		year = strconv.Itoa(d.ReleaseDate)
	}
	return map[string]string{
		FieldMake:             d.Make,
		FieldModel:            d.Model,
		FieldSize:             d.Size,
		FieldStyle:            d.Style,
		FieldTransmissionType: d.TransmissionType,
		FieldPrice:            price,
		FieldReleaseDate:      year,
	}
}

// Wire field names, used as keys for field-level errors
const (
	FieldMake             = "make"
	FieldModel            = "model"
	FieldSize             = "size"
	FieldStyle            = "style"
	FieldTransmissionType = "transmission_type"
	FieldPrice            = "price"
	FieldReleaseDate      = "release_date"
)

// DraftFields lists the draft fields in form order
var DraftFields = []string{
	FieldMake,
	FieldModel,
	FieldSize,
	FieldStyle,
	FieldTransmissionType,
	FieldPrice,
	FieldReleaseDate,
}

// ListResponse is the raw body of GET /car
type ListResponse struct {
	Cars  []CarRecord `json:"cars"`
	Total int         `json:"total"`           // Page count, not record count
	Count *int        `json:"count,omitempty"` // Exact record count when the server provides it
}

// ListResult is the normalized outcome of one list fetch
type ListResult struct {
	Rows       []CarRecord
	TotalPages int
	ExactCount *int
	Page       int
	Search     string
}

// Find returns the row with the given id
func (r ListResult) Find(id string) (CarRecord, bool) {
	for _, car := range r.Rows {
		if car.ID == id {
			return car, true
		}
	}
	return CarRecord{}, false
}

// DisplayCount returns the row count shown by the grid and whether it is exact.
// Without an exact count it is approximated as pageSize * totalPages.
func (r ListResult) DisplayCount(pageSize int) (int, bool) {
	if r.ExactCount != nil {
		return *r.ExactCount, true
	}
	return pageSize * r.TotalPages, false
}
