package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pilotbase-logbook/internal/domain/entity"
	"pilotbase-logbook/internal/domain/repository"
	"pilotbase-logbook/internal/usecase"
	"pilotbase-logbook/pkg/logger"

	"github.com/go-chi/chi/v5"
)

// maxBodyBytes bounds request bodies. Photos and signatures travel inline as
// data URIs, so this is generous.
const maxBodyBytes = 16 << 20

// FlightHandler serves the flight collection over HTTP
type FlightHandler struct {
	store  repository.FlightRecordRepository
	logger logger.Logger
}

// NewFlightHandler creates a new flight handler
func NewFlightHandler(store repository.FlightRecordRepository, log logger.Logger) *FlightHandler {
	return &FlightHandler{
		store:  store,
		logger: log.With("component", "flight_handler"),
	}
}

// Routes mounts the flight endpoints on r
func (h *FlightHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Delete("/", h.ClearAll)
	r.Get("/search", h.Search)
	r.Post("/reset", h.Reset)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Remove)
}

// List returns every record, or only those matching the role or
// reservationId query parameter
func (h *FlightHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("reservationId") {
		writeJSON(w, http.StatusOK, h.store.GetByReservation(q.Get("reservationId")))
		return
	}
	if q.Has("role") {
		role, err := entity.ParseRole(q.Get("role"))
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, h.store.GetByRole(role))
		return
	}
	writeJSON(w, http.StatusOK, h.store.GetAll())
}

// Search matches records by flight or tail number
func (h *FlightHandler) Search(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Search(r.URL.Query().Get("q")))
}

// Add stores the record in the body. The role query parameter, when given,
// overrides the record's addedByRole.
func (h *FlightHandler) Add(w http.ResponseWriter, r *http.Request) {
	var role entity.Role
	if raw := r.URL.Query().Get("role"); raw != "" {
		parsed, err := entity.ParseRole(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		role = parsed
	}

	var record entity.FlightRecord
	if err := decodeBody(w, r, &record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	added, err := h.store.Add(r.Context(), record, role)
	if err != nil && !isPersistError(err) {
		h.writeStoreError(w, "add", err)
		return
	}
	writeMutation(w, http.StatusCreated, added, err)
}

// Update replaces the record with the id in the path
func (h *FlightHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var record entity.FlightRecord
	if err := decodeBody(w, r, &record); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	found, err := h.store.Update(r.Context(), id, record)
	if err != nil && !isPersistError(err) {
		h.writeStoreError(w, "update", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "flight not found")
		return
	}
	record.ID = id
	writeMutation(w, http.StatusOK, record, err)
}

// Remove deletes the record with the id in the path
func (h *FlightHandler) Remove(w http.ResponseWriter, r *http.Request) {
	found, err := h.store.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil && !isPersistError(err) {
		h.writeStoreError(w, "remove", err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "flight not found")
		return
	}
	writeMutation(w, http.StatusNoContent, nil, err)
}

// ClearAll empties the collection
func (h *FlightHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	err := h.store.ClearAll(r.Context())
	if err != nil && !isPersistError(err) {
		h.writeStoreError(w, "clear", err)
		return
	}
	writeMutation(w, http.StatusNoContent, nil, err)
}

// Reset reseeds the demonstration flights. scope=all wipes the whole
// backing-store namespace first.
func (h *FlightHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var err error
	switch scope := r.URL.Query().Get("scope"); scope {
	case "", "key":
		err = h.store.Reset(r.Context())
	case "all":
		err = h.store.ForceReset(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "unknown reset scope: "+scope)
		return
	}
	if err != nil && !isPersistError(err) {
		h.writeStoreError(w, "reset", err)
		return
	}
	writeMutation(w, http.StatusOK, h.store.GetAll(), err)
}

func (h *FlightHandler) writeStoreError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidRecord):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrDuplicateID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrNotInitialized), errors.Is(err, usecase.ErrClosed):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.logger.Error("Flight store operation failed", "operation", op, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isPersistError(err error) bool {
	var perr *usecase.PersistError
	return errors.As(err, &perr)
}

// writeMutation answers a successful mutation. A persist error downgrades the
// status to 202 since the change only lives in memory.
func writeMutation(w http.ResponseWriter, status int, body interface{}, persistErr error) {
	if persistErr != nil {
		writeJSON(w, http.StatusAccepted, map[string]interface{}{
			"data":    body,
			"warning": persistErr.Error(),
		})
		return
	}
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, body)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body: " + strings.TrimPrefix(err.Error(), "json: "))
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
