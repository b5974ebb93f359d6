package devserver

import (
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/studiowebux/carcli/internal/types"
)

// Store is an in-memory car collection in insertion order
type Store struct {
	mu       sync.RWMutex
	cars     []types.CarRecord
	pageSize int
	newID    func() string
}

// NewStore creates a store holding seed; records without an id get one
func NewStore(pageSize int, seed []types.CarRecord) *Store {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	s := &Store{
		pageSize: pageSize,
		newID:    uuid.NewString,
	}
	for _, car := range seed {
		if car.ID == "" {
			car.ID = s.newID()
		}
		s.cars = append(s.cars, car)
	}
	return s
}

// PageSize returns the number of cars per page
func (s *Store) PageSize() int {
	return s.pageSize
}

// Len returns the number of stored cars
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cars)
}

// List returns one page of cars whose make or model contains search (case-insensitive).
// Total is the page count (at least 1); Count is the exact number of matches.
func (s *Store) List(page int, search string) types.ListResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	matches := make([]types.CarRecord, 0, len(s.cars))
	for _, car := range s.cars {
		if needle == "" || matchesSearch(car, needle) {
			matches = append(matches, car)
		}
	}

	count := len(matches)
	totalPages := (count + s.pageSize - 1) / s.pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	cars := []types.CarRecord{}
	// Pages past the end are empty; checked before multiplying so huge pages cannot overflow
	if page <= totalPages {
		start := (page - 1) * s.pageSize
		end := start + s.pageSize
		if end > count {
			end = count
		}
		cars = append(cars, matches[start:end]...)
	}

	return types.ListResponse{Cars: cars, Total: totalPages, Count: &count}
}

func matchesSearch(car types.CarRecord, needle string) bool {
	return strings.Contains(strings.ToLower(car.Make), needle) ||
		strings.Contains(strings.ToLower(car.Model), needle) ||
		strings.Contains(strings.ToLower(car.Name()), needle)
}

// Get returns the car with id
func (s *Store) Get(id string) (types.CarRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(id); i >= 0 {
		return s.cars[i], true
	}
	return types.CarRecord{}, false
}

// Create stores a new car and returns it with its assigned id
func (s *Store) Create(draft types.CarDraft) types.CarRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	car := fromDraft(s.newID(), draft)
	s.cars = append(s.cars, car)
	return car
}

// Update replaces the fields of car id
func (s *Store) Update(id string, draft types.CarDraft) (types.CarRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return types.CarRecord{}, false
	}
	s.cars[i] = fromDraft(id, draft)
	return s.cars[i], true
}

// Delete removes car id
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.cars = append(s.cars[:i], s.cars[i+1:]...)
	return true
}

// index must be called with mu held
func (s *Store) index(id string) int {
	for i, car := range s.cars {
		if car.ID == id {
			return i
		}
	}
	return -1
}

func fromDraft(id string, d types.CarDraft) types.CarRecord {
	return types.CarRecord{
		ID:               id,
		Make:             d.Make,
		Model:            d.Model,
		Size:             d.Size,
		Style:            d.Style,
		TransmissionType: d.TransmissionType,
		Price:            d.Price,
		ReleaseDate:      d.ReleaseDate,
	}
}
