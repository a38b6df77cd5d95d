package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"ImmoGest/server/internal/models"

	"github.com/go-chi/chi/v5"
)

func CreateIncident(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		ApartmentID int    `json:"apartment_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ApartmentID <= 0 || req.Title == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if !models.ValidIncidentPriority(req.Priority) {
		http.Error(w, "Invalid priority", http.StatusBadRequest)
		return
	}

	// Clients may only report against an apartment they lease.
	if role == models.RoleClient {
		leases, err := leaseService.GetLeasesByTenant(r.Context(), userID)
		if err != nil {
			log.Printf("Error getting leases for tenant %d: %v", userID, err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		allowed := false
		for _, lease := range leases {
			if lease.ApartmentID == req.ApartmentID && lease.Active {
				allowed = true
				break
			}
		}
		if !allowed {
			http.Error(w, "Apartment is not leased by this user", http.StatusForbidden)
			return
		}
	}

	incident := &models.Incident{
		ApartmentID: req.ApartmentID,
		ReporterID:  userID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}

	if _, err := incidentService.CreateIncident(r.Context(), incident); err != nil {
		log.Printf("Error creating incident: %v", err)
		http.Error(w, "Failed to create incident", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(incident)
}

// GetIncidents lists all incidents for admins, only the caller's own for
// clients.
func GetIncidents(w http.ResponseWriter, r *http.Request) {
	userID, role, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	reporterID := userID
	if role == models.RoleAdmin {
		reporterID = 0
	}

	incidents, err := incidentService.GetIncidents(r.Context(), reporterID)
	if err != nil {
		log.Printf("Error getting incidents: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(incidents)
}

func UpdateIncidentStatus(w http.ResponseWriter, r *http.Request) {
	incidentID, err := strconv.Atoi(chi.URLParam(r, "incident_id"))
	if err != nil || incidentID <= 0 {
		http.Error(w, "Invalid incident ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !models.ValidIncidentStatus(req.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	if err := incidentService.UpdateIncidentStatus(r.Context(), incidentID, req.Status); err != nil {
		if errors.Is(err, models.ErrIncidentNotFound) {
			http.Error(w, "Incident not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating incident %d: %v", incidentID, err)
		http.Error(w, "Failed to update incident", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Incident updated"})
}
