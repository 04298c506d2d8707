package orders

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"vendora/db"
	"vendora/middleware"
	"vendora/models"
	"vendora/mq"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // lock down in production
}

// Live order feed connections, keyed by shop id.
var shopFeeds = struct {
	sync.RWMutex
	conns map[string]map[*websocket.Conn]bool
}{conns: make(map[string]map[*websocket.Conn]bool)}

// OrderFeed upgrades to a WebSocket streaming order events for one shop.
// The token arrives as a query parameter because browsers cannot set headers
// on WebSocket requests.
func OrderFeed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	shopID := ps.ByName("shopid")

	claims, err := middleware.ValidateRawJWT(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var shop models.Shop
	if err := db.ShopCollection.FindOne(r.Context(), bson.M{"shopid": shopID}).Decode(&shop); err != nil {
		http.Error(w, "Shop not found", http.StatusNotFound)
		return
	}
	if shop.OwnerID != claims.UserID {
		http.Error(w, "Not your shop", http.StatusForbidden)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("OrderFeed upgrade error:", err)
		return
	}

	shopFeeds.Lock()
	if shopFeeds.conns[shopID] == nil {
		shopFeeds.conns[shopID] = make(map[*websocket.Conn]bool)
	}
	shopFeeds.conns[shopID][conn] = true
	shopFeeds.Unlock()

	// Read loop only detects disconnects; the feed is one-way.
	go func() {
		defer func() {
			shopFeeds.Lock()
			delete(shopFeeds.conns[shopID], conn)
			shopFeeds.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// StartOrderFeedWorker forwards published order events to the connected
// shop feeds until ctx is cancelled. Run once from main.
func StartOrderFeedWorker(ctx context.Context) {
	mq.SubscribeOrderEvents(ctx, func(ev mq.OrderEvent) {
		shopFeeds.RLock()
		conns := make([]*websocket.Conn, 0, len(shopFeeds.conns[ev.ShopID]))
		for c := range shopFeeds.conns[ev.ShopID] {
			conns = append(conns, c)
		}
		shopFeeds.RUnlock()

		for _, c := range conns {
			c.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.WriteJSON(ev); err != nil {
				shopFeeds.Lock()
				delete(shopFeeds.conns[ev.ShopID], c)
				shopFeeds.Unlock()
				c.Close()
			}
		}
	})
}
