package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/globals"
	"vendora/middleware"
	"vendora/models"
	"vendora/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 72 * time.Hour

// Register creates a buyer account and returns a signed token.
func Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Email == "" || len(body.Password) < 8 {
		utils.RespondWithError(w, http.StatusBadRequest, "Username, email and a password of at least 8 characters are required")
		return
	}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"$or": []bson.M{
		{"username": body.Username},
		{"email": body.Email},
	}})
	if err != nil {
		log.Println("Register count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Username or email already in use")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Println("Register bcrypt error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := models.User{
		UserID:       utils.GetUUID(),
		Username:     body.Username,
		Email:        body.Email,
		PasswordHash: string(hash),
		Role:         []string{"user"},
		CreatedAt:    time.Now(),
	}

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		log.Println("Register InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		log.Println("Register token error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, utils.M{"token": token, "userId": user.UserID})
}

// Login verifies credentials and returns a signed token.
func Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Username == "" || body.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"username": body.Username}).Decode(&user); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := issueToken(user)
	if err != nil {
		log.Println("Login token error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"token": token, "userId": user.UserID})
}

func issueToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Username: user.Username,
		UserID:   user.UserID,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
}
