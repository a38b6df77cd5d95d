package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"ImmoGest/server/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// CreateApplication is the public endpoint prospective tenants use to
// apply for a vacant apartment.
func CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApartmentID   int    `json:"apartment_id"`
		ApplicantName string `json:"applicant_name"`
		Email         string `json:"email"`
		Phone         string `json:"phone"`
		Income        string `json:"income"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ApartmentID <= 0 || req.ApplicantName == "" || req.Email == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	income := decimal.Zero
	if req.Income != "" {
		var err error
		income, err = decimal.NewFromString(req.Income)
		if err != nil || income.IsNegative() {
			http.Error(w, "Invalid income", http.StatusBadRequest)
			return
		}
	}

	app := &models.Application{
		ApartmentID:   req.ApartmentID,
		ApplicantName: req.ApplicantName,
		Email:         req.Email,
		Phone:         req.Phone,
		Income:        income,
	}

	if _, err := applicationService.CreateApplication(r.Context(), app); err != nil {
		log.Printf("Error creating application: %v", err)
		http.Error(w, "Failed to create application", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(app)
}

func GetApplications(w http.ResponseWriter, r *http.Request) {
	apartmentID, _ := strconv.Atoi(r.URL.Query().Get("apartment_id"))

	applications, err := applicationService.GetApplications(r.Context(), apartmentID)
	if err != nil {
		log.Printf("Error getting applications: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(applications)
}

func AcceptApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.Atoi(chi.URLParam(r, "application_id"))
	if err != nil || applicationID <= 0 {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}

	if err := applicationService.AcceptApplication(r.Context(), applicationID); err != nil {
		if errors.Is(err, models.ErrApplicationNotFound) {
			http.Error(w, "Application not found", http.StatusNotFound)
			return
		}
		log.Printf("Error accepting application %d: %v", applicationID, err)
		http.Error(w, "Failed to accept application", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Application accepted"})
}

// RejectApplication flips the status and fires the rejection notice
// email. The email is best-effort; the rejection is acknowledged as soon
// as the status change commits.
func RejectApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, err := strconv.Atoi(chi.URLParam(r, "application_id"))
	if err != nil || applicationID <= 0 {
		http.Error(w, "Invalid application ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Reason == "" {
		http.Error(w, "Rejection reason is required", http.StatusBadRequest)
		return
	}

	if err := applicationService.RejectApplication(r.Context(), applicationID, req.Reason); err != nil {
		if errors.Is(err, models.ErrApplicationNotFound) {
			http.Error(w, "Application not found or already decided", http.StatusNotFound)
			return
		}
		log.Printf("Error rejecting application %d: %v", applicationID, err)
		http.Error(w, "Failed to reject application", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Application rejected"})
}
