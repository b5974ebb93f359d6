package devserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studiowebux/carcli/internal/types"
	"github.com/studiowebux/carcli/internal/validation"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, fields map[string]string) {
	writeJSON(w, status, errorBody{Message: message, Errors: fields})
}

// listCars handles GET /car?page=&searchQuery=
func (s *Server) listCars(w http.ResponseWriter, r *http.Request) {
	vars := r.URL.Query()

	page := 1
	if raw := vars.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, `"page" must be a number`, map[string]string{"page": `"page" must be a number`})
			return
		}
		if n > 1 {
			page = n
		}
	}

	writeJSON(w, http.StatusOK, s.store.List(page, vars.Get("searchQuery")))
}

// getCar handles GET /car/{id}
func (s *Server) getCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	car, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("car %s not found", id), nil)
		return
	}
	writeJSON(w, http.StatusOK, car)
}

// createCar handles POST /car
func (s *Server) createCar(w http.ResponseWriter, r *http.Request) {
	draft, ok := s.decodeDraft(w, r)
	if !ok {
		return
	}
	car := s.store.Create(draft)
	s.log.Info("car created", "id", car.ID, "label", car.Label())
	writeJSON(w, http.StatusCreated, car)
}

// updateCar handles PUT /car/{id}
func (s *Server) updateCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if _, exists := s.store.Get(id); !exists {
		writeError(w, http.StatusNotFound, fmt.Sprintf("car %s not found", id), nil)
		return
	}

	draft, ok := s.decodeDraft(w, r)
	if !ok {
		return
	}

	car, found := s.store.Update(id, draft)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("car %s not found", id), nil)
		return
	}
	s.log.Info("car updated", "id", id)
	writeJSON(w, http.StatusOK, car)
}

// deleteCar handles DELETE /car/{id}
func (s *Server) deleteCar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !s.store.Delete(id) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("car %s not found", id), nil)
		return
	}
	s.log.Info("car deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// decodeDraft reads and validates a CarDraft body, writing a 400 on failure
func (s *Server) decodeDraft(w http.ResponseWriter, r *http.Request) (types.CarDraft, bool) {
	var draft types.CarDraft
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err), nil)
		return draft, false
	}

	if errs := validation.ValidateDraft(draft); errs.HasErrors() {
		writeError(w, http.StatusBadRequest, errs.Error(), errs)
		return draft, false
	}
	return draft, true
}
