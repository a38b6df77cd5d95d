package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"ImmoGest/server/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func CreateLease(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ApartmentID int    `json:"apartment_id"`
		TenantID    int    `json:"tenant_id"`
		StartDate   string `json:"start_date"`
		Rent        string `json:"rent"`
		Deposit     string `json:"deposit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ApartmentID <= 0 || req.TenantID <= 0 {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, "Invalid start date", http.StatusBadRequest)
		return
	}

	rent, err := decimal.NewFromString(req.Rent)
	if err != nil || rent.IsNegative() {
		http.Error(w, "Invalid rent amount", http.StatusBadRequest)
		return
	}

	deposit := decimal.Zero
	if req.Deposit != "" {
		deposit, err = decimal.NewFromString(req.Deposit)
		if err != nil || deposit.IsNegative() {
			http.Error(w, "Invalid deposit amount", http.StatusBadRequest)
			return
		}
	}

	apartment, err := propertyService.GetApartmentById(r.Context(), req.ApartmentID)
	if err != nil {
		if errors.Is(err, models.ErrApartmentNotFound) {
			http.Error(w, "Apartment not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting apartment %d: %v", req.ApartmentID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if apartment.Status == models.ApartmentOccupied {
		http.Error(w, "Apartment is already occupied", http.StatusConflict)
		return
	}

	lease := &models.Lease{
		ApartmentID: req.ApartmentID,
		TenantID:    req.TenantID,
		StartDate:   startDate,
		Rent:        rent,
		Deposit:     deposit,
	}

	if _, err := leaseService.CreateLease(r.Context(), lease); err != nil {
		log.Printf("Error creating lease: %v", err)
		http.Error(w, "Failed to create lease", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(lease)
}

func EndLease(w http.ResponseWriter, r *http.Request) {
	leaseID, err := strconv.Atoi(chi.URLParam(r, "lease_id"))
	if err != nil || leaseID <= 0 {
		http.Error(w, "Invalid lease ID", http.StatusBadRequest)
		return
	}

	if err := leaseService.EndLease(r.Context(), leaseID); err != nil {
		if errors.Is(err, models.ErrLeaseNotFound) {
			http.Error(w, "Lease not found or already ended", http.StatusNotFound)
			return
		}
		log.Printf("Error ending lease %d: %v", leaseID, err)
		http.Error(w, "Failed to end lease", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Lease ended"})
}

func GetMyLeases(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	leases, err := leaseService.GetLeasesByTenant(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting leases for tenant %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(leases)
}
