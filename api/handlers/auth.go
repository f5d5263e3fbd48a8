package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"

	"github.com/justicedesk/court-prison-api/api"
	"github.com/justicedesk/court-prison-api/databases"
	"github.com/justicedesk/court-prison-api/models"
)

type staffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type staffLoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    string      `json:"id"`
		Email string      `json:"email"`
		Name  string      `json:"name"`
		Role  models.Role `json:"role"`
	} `json:"user"`
}

// Auth represents the staff login handler
type Auth struct {
	UDB databases.UserDatabase
	ADB databases.AuditLogDatabase
}

// StaffLoginHandler handles staff login via email/password and returns a JWT
func (h Auth) StaffLoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req staffLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid request"})
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "email and password required"})
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	user, err := h.UDB.FindOne(ctx, bson.M{"user.email": email, "user.profile.isActive": true})
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Details.Password), []byte(req.Password)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid credentials"})
		return
	}

	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtSecret) == 0 {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "server misconfigured"})
		return
	}

	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Details.Email,
		"role":  user.Details.Profile.Role,
		"typ":   "access",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtSecret)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token generation failed"})
		return
	}

	recordAudit(r, h.ADB, user, models.AuditLogin, "User", user.ID.Hex(), "staff login")

	var resp staffLoginResponse
	resp.Token = signed
	resp.User.ID = user.ID.Hex()
	resp.User.Email = user.Details.Email
	resp.User.Name = user.DisplayName()
	resp.User.Role = user.Details.Profile.Role

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
