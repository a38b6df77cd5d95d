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

func CreateBuilding(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Address    string `json:"address"`
		City       string `json:"city"`
		PostalCode string `json:"postal_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Address == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	building := &models.Building{
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	}

	if _, err := propertyService.CreateBuilding(r.Context(), building); err != nil {
		log.Printf("Error creating building: %v", err)
		http.Error(w, "Failed to create building", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(building)
}

func GetBuildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := propertyService.GetBuildings(r.Context())
	if err != nil {
		log.Printf("Error getting buildings: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(buildings)
}

func UpdateBuilding(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.Atoi(chi.URLParam(r, "building_id"))
	if err != nil || buildingID <= 0 {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Name       string `json:"name"`
		Address    string `json:"address"`
		City       string `json:"city"`
		PostalCode string `json:"postal_code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	building := &models.Building{
		ID:         buildingID,
		Name:       req.Name,
		Address:    req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
	}

	if err := propertyService.UpdateBuilding(r.Context(), building); err != nil {
		if errors.Is(err, models.ErrBuildingNotFound) {
			http.Error(w, "Building not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating building %d: %v", buildingID, err)
		http.Error(w, "Failed to update building", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Building updated"})
}

func DeleteBuilding(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.Atoi(chi.URLParam(r, "building_id"))
	if err != nil || buildingID <= 0 {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	if err := propertyService.DeleteBuilding(r.Context(), buildingID); err != nil {
		if errors.Is(err, models.ErrBuildingNotFound) {
			http.Error(w, "Building not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting building %d: %v", buildingID, err)
		http.Error(w, "Failed to delete building", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Building deleted"})
}

func CreateApartment(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.Atoi(chi.URLParam(r, "building_id"))
	if err != nil || buildingID <= 0 {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Unit    string  `json:"unit"`
		Floor   int     `json:"floor"`
		Surface float64 `json:"surface"`
		Rooms   int     `json:"rooms"`
		Rent    string  `json:"rent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Unit == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rent, err := decimal.NewFromString(req.Rent)
	if err != nil || rent.IsNegative() {
		http.Error(w, "Invalid rent amount", http.StatusBadRequest)
		return
	}

	if _, err := propertyService.GetBuildingById(r.Context(), buildingID); err != nil {
		if errors.Is(err, models.ErrBuildingNotFound) {
			http.Error(w, "Building not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting building %d: %v", buildingID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	apartment := &models.Apartment{
		BuildingID: buildingID,
		Unit:       req.Unit,
		Floor:      req.Floor,
		Surface:    req.Surface,
		Rooms:      req.Rooms,
		Rent:       rent,
	}

	if _, err := propertyService.CreateApartment(r.Context(), apartment); err != nil {
		log.Printf("Error creating apartment: %v", err)
		http.Error(w, "Failed to create apartment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(apartment)
}

func GetApartments(w http.ResponseWriter, r *http.Request) {
	buildingID, err := strconv.Atoi(chi.URLParam(r, "building_id"))
	if err != nil || buildingID <= 0 {
		http.Error(w, "Invalid building ID", http.StatusBadRequest)
		return
	}

	apartments, err := propertyService.GetApartmentsByBuilding(r.Context(), buildingID)
	if err != nil {
		log.Printf("Error getting apartments for building %d: %v", buildingID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(apartments)
}

func UpdateApartment(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := strconv.Atoi(chi.URLParam(r, "apartment_id"))
	if err != nil || apartmentID <= 0 {
		http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Unit    string  `json:"unit"`
		Floor   int     `json:"floor"`
		Surface float64 `json:"surface"`
		Rooms   int     `json:"rooms"`
		Rent    string  `json:"rent"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Unit == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	rent, err := decimal.NewFromString(req.Rent)
	if err != nil || rent.IsNegative() {
		http.Error(w, "Invalid rent amount", http.StatusBadRequest)
		return
	}

	apartment := &models.Apartment{
		ID:      apartmentID,
		Unit:    req.Unit,
		Floor:   req.Floor,
		Surface: req.Surface,
		Rooms:   req.Rooms,
		Rent:    rent,
	}

	if err := propertyService.UpdateApartment(r.Context(), apartment); err != nil {
		if errors.Is(err, models.ErrApartmentNotFound) {
			http.Error(w, "Apartment not found", http.StatusNotFound)
			return
		}
		log.Printf("Error updating apartment %d: %v", apartmentID, err)
		http.Error(w, "Failed to update apartment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Apartment updated"})
}

func DeleteApartment(w http.ResponseWriter, r *http.Request) {
	apartmentID, err := strconv.Atoi(chi.URLParam(r, "apartment_id"))
	if err != nil || apartmentID <= 0 {
		http.Error(w, "Invalid apartment ID", http.StatusBadRequest)
		return
	}

	apartment, err := propertyService.GetApartmentById(r.Context(), apartmentID)
	if err != nil {
		if errors.Is(err, models.ErrApartmentNotFound) {
			http.Error(w, "Apartment not found", http.StatusNotFound)
			return
		}
		log.Printf("Error getting apartment %d: %v", apartmentID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if apartment.Status == models.ApartmentOccupied {
		http.Error(w, "Apartment has an active lease", http.StatusConflict)
		return
	}

	if err := propertyService.DeleteApartment(r.Context(), apartmentID); err != nil {
		if errors.Is(err, models.ErrApartmentNotFound) {
			http.Error(w, "Apartment not found", http.StatusNotFound)
			return
		}
		log.Printf("Error deleting apartment %d: %v", apartmentID, err)
		http.Error(w, "Failed to delete apartment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Apartment deleted"})
}
