package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/Ashik756/eclass-hub/config"
	"github.com/Ashik756/eclass-hub/databases"
	"github.com/Ashik756/eclass-hub/models"
)

// Admin exported for testing purposes
type Admin struct {
	UDB databases.UserDatabase
}

// CreateModeratorTokenHandler issues a short-lived JWT granting chat moderation
// for one live class. Only teachers can mint one.
func (a Admin) CreateModeratorTokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var body struct {
		UserID  string `json:"userID"`
		ClassID string `json:"classID"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	user, err := a.UDB.FindOne(context.Background(), bson.M{"_id": body.UserID})
	if err != nil {
		config.ErrorStatus("failed to get user by ID", http.StatusNotFound, w, err)
		return
	}
	if user.Details.Role != models.RoleTeacher {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "only teachers can moderate"})
		return
	}

	jwtSecret := []byte(os.Getenv("ADMIN_JWT_SECRET"))
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   user.ID,
		"class": body.ClassID,
		"scope": "moderator",
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(4 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"token": signed})
}
