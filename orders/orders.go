package orders

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"vendora/db"
	"vendora/models"
	"vendora/mq"
	"vendora/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Allowed forward transitions for the order lifecycle. Status history is
// append-only; no entry is ever rewritten.
var allowedTransitions = map[string][]string{
	models.OrderPending:    {models.OrderConfirmed, models.OrderCancelled},
	models.OrderConfirmed:  {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderDelivered},
}

func canTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// GetMyOrders lists the buyer's orders, newest first.
func GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(50)
	cur, err := db.OrderCollection.Find(ctx, bson.M{"userid": userID}, findOpts)
	if err != nil {
		log.Println("GetMyOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cur.Close(ctx)

	var list []models.Order
	if err := cur.All(ctx, &list); err != nil {
		log.Println("GetMyOrders decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

// GetOrder returns one order, visible to its buyer or the shop owner.
func GetOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	order, ok := loadOrderFor(ctx, w, userID, ps.ByName("orderid"))
	if !ok {
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, order)
}

// GetShopOrders lists a shop's incoming orders; owner only.
func GetShopOrders(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	shopID := ps.ByName("shopid")

	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": shopID}).Decode(&shop); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Shop not found")
		return
	}
	if shop.OwnerID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Not your shop")
		return
	}

	findOpts := options.Find().SetSort(bson.M{"created_at": -1}).SetLimit(100)
	cur, err := db.OrderCollection.Find(ctx, bson.M{"shopid": shopID}, findOpts)
	if err != nil {
		log.Println("GetShopOrders Find error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	defer cur.Close(ctx)

	var list []models.Order
	if err := cur.All(ctx, &list); err != nil {
		log.Println("GetShopOrders decode error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Could not retrieve orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"orders": list})
}

// UpdateOrderStatus advances an order's lifecycle. Shop owners drive the
// fulfilment states; buyers may only cancel while the order is still pending.
func UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Status == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Status is required")
		return
	}

	orderID := ps.ByName("orderid")
	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return
	}

	isBuyer := order.UserID == userID
	isSeller := false
	var shop models.Shop
	if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": order.ShopID}).Decode(&shop); err == nil {
		isSeller = shop.OwnerID == userID
	}
	if !isBuyer && !isSeller {
		utils.RespondWithError(w, http.StatusForbidden, "Not allowed")
		return
	}
	if isBuyer && !isSeller && !(body.Status == models.OrderCancelled && order.Status == models.OrderPending) {
		utils.RespondWithError(w, http.StatusForbidden, "Buyers can only cancel pending orders")
		return
	}
	if !canTransition(order.Status, body.Status) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid status transition")
		return
	}

	now := time.Now()
	entry := models.StatusEntry{Status: body.Status, Note: body.Note, At: now}
	_, err := db.OrderCollection.UpdateOne(ctx,
		bson.M{"orderid": orderID, "status": order.Status},
		bson.M{
			"$set":  bson.M{"status": body.Status, "updated_at": now},
			"$push": bson.M{"history": entry},
		},
	)
	if err != nil {
		log.Println("UpdateOrderStatus error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}

	mq.EmitOrderEvent(ctx, mq.OrderEvent{
		Type:        "order_status",
		OrderID:     order.OrderID,
		OrderNumber: order.OrderNumber,
		ShopID:      order.ShopID,
		UserID:      order.UserID,
		Status:      body.Status,
		Total:       order.Total,
	})

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": body.Status})
}

// loadOrderFor fetches an order and enforces that userID is its buyer or the
// owning shop's owner, writing the error response itself on failure.
func loadOrderFor(ctx context.Context, w http.ResponseWriter, userID, orderID string) (*models.Order, bool) {
	var order models.Order
	if err := db.OrderCollection.FindOne(ctx, bson.M{"orderid": orderID}).Decode(&order); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}

	if order.UserID != userID {
		var shop models.Shop
		if err := db.ShopCollection.FindOne(ctx, bson.M{"shopid": order.ShopID}).Decode(&shop); err != nil || shop.OwnerID != userID {
			utils.RespondWithError(w, http.StatusForbidden, "Not allowed")
			return nil, false
		}
	}

	return &order, true
}
