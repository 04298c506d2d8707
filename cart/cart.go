package cart

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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddToCart appends a product to the buyer's cart, or bumps the quantity of
// an existing line. Price, title and seller name are denormalized onto the
// line at add time.
func AddToCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == "" || body.Quantity < 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": body.ProductID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": product.ShopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Seller not found")
		return
	}

	// Bump quantity if the product is already in the cart
	res, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "lines.productid": body.ProductID},
		bson.M{
			"$inc": bson.M{"lines.$.quantity": body.Quantity},
			"$set": bson.M{"updatedat": time.Now()},
		},
	)
	if err != nil {
		log.Println("AddToCart UpdateOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	if res.MatchedCount == 0 {
		image := ""
		if len(product.Images) > 0 {
			image = product.Images[0]
		}
		line := models.CartLine{
			LineID:    utils.GetUUID(),
			ProductID: product.ProductID,
			ShopID:    product.ShopID,
			ShopName:  shop.Name,
			Title:     product.Name,
			Image:     image,
			Quantity:  body.Quantity,
			UnitPrice: product.Price,
			AddedAt:   time.Now(),
		}
		_, err = db.CartCollection.UpdateOne(ctx,
			bson.M{"userid": userID},
			bson.M{
				"$push": bson.M{"lines": line},
				"$set":  bson.M{"updatedat": time.Now()},
			},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			log.Println("AddToCart upsert error:", err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add to cart")
			return
		}
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// GetCart returns the buyer's cart, with an empty line list when none exists.
func GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var cart models.Cart
	err := db.CartCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&cart)
	if err == mongo.ErrNoDocuments {
		cart = models.Cart{UserID: userID, Lines: []models.CartLine{}}
	} else if err != nil {
		log.Println("GetCart FindOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve cart")
		return
	}
	if cart.Lines == nil {
		cart.Lines = []models.CartLine{}
	}

	utils.RespondWithJSON(w, http.StatusOK, cart)
}

// UpdateLine changes a line's quantity; zero or less removes the line.
func UpdateLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	lineID := ps.ByName("lineid")

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if body.Quantity < 1 {
		removeLine(ctx, w, userID, lineID)
		return
	}

	res, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": userID, "lines.lineid": lineID},
		bson.M{
			"$set": bson.M{"lines.$.quantity": body.Quantity, "updatedat": time.Now()},
		},
	)
	if err != nil {
		log.Println("UpdateLine error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart line not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RemoveLine deletes one line from the cart.
func RemoveLine(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	removeLine(ctx, w, userID, ps.ByName("lineid"))
}

func removeLine(ctx context.Context, w http.ResponseWriter, userID, lineID string) {
	res, err := db.CartCollection.UpdateOne(ctx,
		bson.M{"userid": userID},
		bson.M{
			"$pull": bson.M{"lines": bson.M{"lineid": lineID}},
			"$set":  bson.M{"updatedat": time.Now()},
		},
	)
	if err != nil {
		log.Println("RemoveLine error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Cart line not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// ClearCart removes the buyer's entire cart.
func ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if _, err := db.CartCollection.DeleteOne(ctx, bson.M{"userid": userID}); err != nil {
		log.Println("ClearCart error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
