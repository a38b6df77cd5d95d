package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"ImmoGest/server/internal/models"
	"ImmoGest/server/internal/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

func Login(w http.ResponseWriter, r *http.Request) {
	var loginData struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	err := json.NewDecoder(r.Body).Decode(&loginData)
	if err != nil || loginData.Email == "" || loginData.Password == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	user, err := userService.GetUserByEmail(ctx, loginData.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Printf("User with email %s not found", loginData.Email)
			writeJSONError(w, http.StatusUnauthorized, "User not found")
			return
		}
		log.Printf("Error fetching user by email: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if user.LockedUntil != nil && time.Now().Before(*user.LockedUntil) {
		log.Printf("Account is locked until %v for user %d", user.LockedUntil, user.ID)
		writeJSONError(w, http.StatusUnauthorized, "Account is temporarily locked due to multiple failed login attempts")
		return
	}

	if err := utils.CheckPasswordHash(loginData.Password, user.PasswordHash); err != nil {
		log.Printf("Password verification failed for user %d", user.ID)

		updatedUser, err := userService.IncrementFailedLoginAttempts(ctx, user.ID)
		if err != nil {
			log.Printf("Error incrementing failed login attempts for user %d: %v", user.ID, err)
			writeJSONError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		if updatedUser.FailedAttempts >= 5 {
			err = userService.LockAccount(ctx, updatedUser.ID, 5*time.Minute)
			if err != nil {
				log.Printf("Error locking account for user %d: %v", updatedUser.ID, err)
				writeJSONError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			log.Printf("Account locked for user %d for 5 minutes", updatedUser.ID)
			writeJSONError(w, http.StatusUnauthorized, "Account is temporarily locked due to multiple failed login attempts")
			return
		}

		writeJSONError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	err = userService.ResetFailedLoginAttempts(ctx, user.ID)
	if err != nil {
		log.Printf("Error resetting failed login attempts for user %d: %v", user.ID, err)
	}

	tokenString, err := issueAccessToken(user)
	if err != nil {
		log.Printf("Error creating token for user %d: %v", user.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Token creation error")
		return
	}

	refreshToken := uuid.NewString()
	refreshExpiry := time.Now().Add(30 * 24 * time.Hour).Unix()
	if err := userService.SaveRefreshToken(ctx, user.ID, refreshToken, refreshExpiry); err != nil {
		log.Printf("Error saving refresh token for user %d: %v", user.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":         tokenString,
		"refresh_token": refreshToken,
		"role":          user.Role,
	})
}

// Refresh exchanges a stored refresh token for a new access token. The
// presented token is rotated: it is deleted and a new one is issued, so a
// replayed token fails.
func Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	stored, err := userService.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, models.ErrRefreshTokenNotFound) {
			writeJSONError(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		log.Printf("Error looking up refresh token: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := userService.DeleteRefreshToken(ctx, stored.Token); err != nil {
		log.Printf("Error deleting refresh token for user %d: %v", stored.UserID, err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if time.Now().Unix() > stored.Expiry {
		writeJSONError(w, http.StatusUnauthorized, "Refresh token expired")
		return
	}

	user, err := userService.GetUserById(ctx, stored.UserID)
	if err != nil {
		log.Printf("Error fetching user %d: %v", stored.UserID, err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	tokenString, err := issueAccessToken(user)
	if err != nil {
		log.Printf("Error creating token for user %d: %v", user.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Token creation error")
		return
	}

	refreshToken := uuid.NewString()
	refreshExpiry := time.Now().Add(30 * 24 * time.Hour).Unix()
	if err := userService.SaveRefreshToken(ctx, user.ID, refreshToken, refreshExpiry); err != nil {
		log.Printf("Error saving refresh token for user %d: %v", user.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":         tokenString,
		"refresh_token": refreshToken,
		"role":          user.Role,
	})
}

func issueAccessToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	return token.SignedString(utils.JWTSecret())
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"message": message,
	})
}
