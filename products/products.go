package products

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateProduct adds a catalog entry to a shop the caller owns.
func CreateProduct(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		ShopID      string  `json:"shopId"`
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		Stock       int     `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ShopID == "" || body.Name == "" || body.Price <= 0 || body.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing or invalid fields")
		return
	}

	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": body.ShopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}
	if shop.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your shop")
		return
	}

	now := time.Now()
	product := models.Product{
		ProductID:   utils.GetUUID(),
		ShopID:      body.ShopID,
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		Stock:       body.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.ProductCollection.InsertOne(ctx, product); err != nil {
		log.Println("CreateProduct InsertOne error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, product)
}

// GetProducts lists products, optionally filtered by shop.
func GetProducts(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if shopID := r.URL.Query().Get("shopid"); shopID != "" {
		filter["shopid"] = shopID
	}

	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(100)
	cur, err := db.ProductCollection.Find(ctx, filter, findOpts)
	if err != nil {
		log.Println("GetProducts Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}
	defer cur.Close(ctx)

	var list []models.Product
	if err := cur.All(ctx, &list); err != nil {
		log.Println("GetProducts decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve products")
		return
	}
	if list == nil {
		list = []models.Product{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"products": list})
}

// GetProduct returns one product by id.
func GetProduct(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": ps.ByName("productid")}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateStock sets a product's absolute stock level; owner only. Checkout
// never calls this, it decrements conditionally inside its transaction.
func UpdateStock(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Stock < 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid stock value")
		return
	}

	product, ok := loadOwnedProduct(ctx, w, userID, ps.ByName("productid"))
	if !ok {
		return
	}

	_, err := db.ProductCollection.UpdateOne(ctx,
		bson.M{"productid": product.ProductID},
		bson.M{"$set": bson.M{"stock": body.Stock, "updated_at": time.Now()}},
	)
	if err != nil {
		log.Println("UpdateStock error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update stock")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]any{"stock": body.Stock})
}

// loadOwnedProduct fetches a product and checks the caller owns its shop,
// writing the error response itself on failure.
func loadOwnedProduct(ctx context.Context, w http.ResponseWriter, userID, productID string) (*models.Product, bool) {
	var product models.Product
	if err := db.ProductCollection.FindOne(ctx, bson.M{"productid": productID}).Decode(&product); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return nil, false
	}

	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": product.ShopID}).Decode(&shop); err != nil || shop.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your product")
		return nil, false
	}

	return &product, true
}
