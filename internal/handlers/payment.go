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

func SchedulePayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LeaseID int    `json:"lease_id"`
		Amount  string `json:"amount"`
		DueDate string `json:"due_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.LeaseID <= 0 {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		http.Error(w, "Invalid amount", http.StatusBadRequest)
		return
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		http.Error(w, "Invalid due date", http.StatusBadRequest)
		return
	}

	payment := &models.Payment{
		LeaseID: req.LeaseID,
		Amount:  amount,
		DueDate: dueDate,
	}

	if _, err := paymentService.SchedulePayment(r.Context(), payment); err != nil {
		log.Printf("Error scheduling payment: %v", err)
		http.Error(w, "Failed to schedule payment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(payment)
}

func RecordPayment(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.Atoi(chi.URLParam(r, "payment_id"))
	if err != nil || paymentID <= 0 {
		http.Error(w, "Invalid payment ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Method string `json:"method"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Method == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	payment, err := paymentService.RecordPayment(r.Context(), paymentID, req.Method)
	if err != nil {
		if errors.Is(err, models.ErrPaymentNotFound) {
			http.Error(w, "Payment not found or already settled", http.StatusNotFound)
			return
		}
		log.Printf("Error recording payment %d: %v", paymentID, err)
		http.Error(w, "Failed to record payment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

func GetMyPayments(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	payments, err := paymentService.GetPaymentsByTenant(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting payments for tenant %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}

func GetLeasePayments(w http.ResponseWriter, r *http.Request) {
	leaseID, err := strconv.Atoi(chi.URLParam(r, "lease_id"))
	if err != nil || leaseID <= 0 {
		http.Error(w, "Invalid lease ID", http.StatusBadRequest)
		return
	}

	payments, err := paymentService.GetPaymentsByLease(r.Context(), leaseID)
	if err != nil {
		log.Printf("Error getting payments for lease %d: %v", leaseID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payments)
}
