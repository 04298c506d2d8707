package shops

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

// CreateShop opens a storefront for the caller. One shop per owner.
func CreateShop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		City        string `json:"city"`
		Province    string `json:"province"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Shop name is required")
		return
	}

	count, err := db.ShopCollection.CountDocuments(ctx, bson.M{"ownerid": userID})
	if err != nil {
		log.Println("CreateShop count error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create shop")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "You already have a shop")
		return
	}

	shop := models.Shop{
		ShopID:      utils.GetUUID(),
		OwnerID:     userID,
		Name:        body.Name,
		Description: body.Description,
		City:        body.City,
		Province:    body.Province,
		CreatedAt:   time.Now(),
	}

	if _, err := db.ShopCollection.InsertOne(ctx, shop); err != nil {
		log.Println("CreateShop InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create shop")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, shop)
}

// GetShop returns one shop by id.
func GetShop(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": ps.ByName("shopid")}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, shop)
}

// GetMyShop returns the caller's own shop.
func GetMyShop(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"ownerid": userID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "You have no shop yet")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, shop)
}
