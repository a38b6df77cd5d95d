package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func GetLoyaltySummary(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	summary, err := loyaltyService.GetSummary(r.Context(), userID)
	if err != nil {
		log.Printf("Error getting loyalty summary for tenant %d: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
