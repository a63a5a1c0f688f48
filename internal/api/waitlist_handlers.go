// Waitlist application HTTP handlers and the wire-format mapping.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/intentional-app/waitlist-service/internal/domain"
	"github.com/intentional-app/waitlist-service/internal/metrics"
	"github.com/intentional-app/waitlist-service/internal/service/waitlist"
)

// applicationResponse is the snake_case wire representation of an
// application. The translation from the domain entity happens here and only
// here; handlers never rename fields ad hoc.
type applicationResponse struct {
	ID                    string   `json:"id"`
	FirstName             string   `json:"first_name"`
	LastName              string   `json:"last_name"`
	Age                   int      `json:"age"`
	City                  string   `json:"city"`
	ProvinceState         string   `json:"province_state"`
	Country               string   `json:"country"`
	Email                 string   `json:"email"`
	PhoneNumber           *string  `json:"phone_number"`
	LookingFor            []string `json:"looking_for"`
	AdditionalInformation *string  `json:"additional_information"`
	Status                string   `json:"status"`
	CreatedAt             string   `json:"created_at"`
	UpdatedAt             string   `json:"updated_at"`
}

func toApplicationResponse(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:                    a.ID,
		FirstName:             a.FirstName,
		LastName:              a.LastName,
		Age:                   a.Age,
		City:                  a.City,
		ProvinceState:         a.ProvinceState,
		Country:               a.Country,
		Email:                 a.Email,
		PhoneNumber:           a.PhoneNumber,
		LookingFor:            a.LookingFor,
		AdditionalInformation: a.AdditionalInformation,
		Status:                string(a.Status),
		CreatedAt:             a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:             a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// HandleApply accepts a new waitlist application.
//
//	POST /api/waitlist/apply
func (h *Handlers) HandleApply(w http.ResponseWriter, r *http.Request) {
	var in waitlist.SubmitInput
	if err := decodeJSON(r, &in); err != nil {
		metrics.SubmissionsRejected.WithLabelValues("validation").Inc()
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.waitlist.Submit(r.Context(), in)
	if err != nil {
		var verr *waitlist.ValidationError
		switch {
		case errors.As(err, &verr):
			metrics.SubmissionsRejected.WithLabelValues("validation").Inc()
			respondError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, waitlist.ErrDuplicateEmail):
			metrics.SubmissionsRejected.WithLabelValues("duplicate_email").Inc()
			respondError(w, http.StatusBadRequest, "An application with this email already exists")
		default:
			metrics.SubmissionsRejected.WithLabelValues("internal").Inc()
			respondSafeError(w, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	metrics.SubmissionsAccepted.Inc()
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Application submitted successfully",
		"id":      app.ID,
	})
}

// HandleListApplications returns all applications, optionally filtered by
// status. An unrecognized status value is ignored, not rejected.
//
//	GET /api/waitlist/applications?status=
func (h *Handlers) HandleListApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.waitlist.List(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	out := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplicationResponse(a))
	}
	respondJSON(w, http.StatusOK, out)
}

// HandleGetApplication returns a single application by id.
//
//	GET /api/waitlist/applications/{id}
func (h *Handlers) HandleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.waitlist.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, waitlist.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Application not found")
			return
		}
		respondSafeError(w, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, toApplicationResponse(*app))
}

// HandleUpdateStatus sets an application's review status.
//
//	PATCH /api/waitlist/applications/{id}/status
func (h *Handlers) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.waitlist.UpdateStatus(r.Context(), chi.URLParam(r, "id"), in.Status)
	if err != nil {
		var verr *waitlist.ValidationError
		switch {
		case errors.As(err, &verr):
			respondError(w, http.StatusBadRequest, verr.Message)
		case errors.Is(err, waitlist.ErrNotFound):
			respondError(w, http.StatusNotFound, "Application not found")
		default:
			respondSafeError(w, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	metrics.StatusUpdates.WithLabelValues(in.Status).Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Application status updated successfully",
	})
}

// HandleExport streams applications as a CSV attachment, same filter and
// ordering semantics as the listing endpoint.
//
//	GET /api/waitlist/export?status=
func (h *Handlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := h.waitlist.Export(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Internal server error")
		return
	}

	metrics.ExportsGenerated.Inc()
	w.Header().Set("Content-Type", "text/csv;charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="waitlist-applications.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// HandleStats returns application counts per status.
//
//	GET /api/waitlist/stats
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.waitlist.GetStats(r.Context())
	if err != nil {
		respondSafeError(w, http.StatusInternalServerError, err, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
