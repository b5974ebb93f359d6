package types

import (
	"encoding/json"
	"testing"
)

func TestCarRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
	}{
		{
			name:   "mongo style id",
			input:  `{"_id":"abc123","make":"Toyota","model":"Corolla","release_date":2019}`,
			wantID: "abc123",
		},
		{
			name:   "plain id fallback",
			input:  `{"id":"xyz","make":"Toyota","model":"Corolla"}`,
			wantID: "xyz",
		},
		{
			name:   "_id wins over id",
			input:  `{"_id":"first","id":"second"}`,
			wantID: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var car CarRecord
			if err := json.Unmarshal([]byte(tt.input), &car); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if car.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", car.ID, tt.wantID)
			}
		})
	}
}

func TestCarRecord_DerivedLabels(t *testing.T) {
	car := CarRecord{ID: "1", Make: "Honda", Model: "Civic", ReleaseDate: 2017}

	if got := car.Name(); got != "Honda Civic" {
		t.Errorf("Name() = %q, want %q", got, "Honda Civic")
	}
	if got := car.Label(); got != "2017 Honda Civic" {
		t.Errorf("Label() = %q, want %q", got, "2017 Honda Civic")
	}
}

func TestCarDraft_Fields(t *testing.T) {
	draft := CarDraft{Make: "Audi", Model: "A7", Price: 36027.5, ReleaseDate: 2021}
	fields := draft.Fields()

	if fields[FieldPrice] != "36027.5" {
		t.Errorf("price = %q, want %q", fields[FieldPrice], "36027.5")
	}
	if fields[FieldReleaseDate] != "2021" {
		t.Errorf("release_date = %q, want %q", fields[FieldReleaseDate], "2021")
	}
	if fields[FieldSize] != "" {
		t.Errorf("size = %q, want empty", fields[FieldSize])
	}

	empty := CarDraft{}.Fields()
	if empty[FieldPrice] != "" || empty[FieldReleaseDate] != "" {
		t.Error("zero numeric fields should render as empty text")
	}
}

func TestListResult_DisplayCount(t *testing.T) {
	approx := ListResult{TotalPages: 4}
	count, exact := approx.DisplayCount(5)
	if count != 20 || exact {
		t.Errorf("DisplayCount = (%d, %v), want (20, false)", count, exact)
	}

	n := 17
	withCount := ListResult{TotalPages: 4, ExactCount: &n}
	count, exact = withCount.DisplayCount(5)
	if count != 17 || !exact {
		t.Errorf("DisplayCount = (%d, %v), want (17, true)", count, exact)
	}
}

func TestListResult_Find(t *testing.T) {
	result := ListResult{Rows: []CarRecord{{ID: "a"}, {ID: "b", Make: "Ford"}}}

	car, ok := result.Find("b")
	if !ok || car.Make != "Ford" {
		t.Errorf("Find(b) = (%v, %v)", car, ok)
	}
	if _, ok := result.Find("missing"); ok {
		t.Error("Find(missing) should not match")
	}
}
