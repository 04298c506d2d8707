package mq

import (
	"context"
	"encoding/json"
	"log"

	"vendora/rdx"
)

// OrderEvent is published whenever an order is created or changes status.
// Subscribers (the seller WebSocket feed, search indexing) consume it
// asynchronously; emission is best-effort and never fails the caller.
type OrderEvent struct {
	Type        string  `json:"type"`
	OrderID     string  `json:"orderId"`
	OrderNumber string  `json:"orderNumber"`
	ShopID      string  `json:"shopId"`
	UserID      string  `json:"userId"`
	Status      string  `json:"status"`
	Total       float64 `json:"total"`
}

const orderEventsChannel = "order-events"

// EmitOrderEvent publishes an order event to Redis.
func EmitOrderEvent(ctx context.Context, ev OrderEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[mq] failed to marshal order event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, orderEventsChannel, data).Err(); err != nil {
		log.Printf("[mq] failed to publish order event: %v", err)
	}
}

// SubscribeOrderEvents delivers order events to fn until ctx is cancelled.
func SubscribeOrderEvents(ctx context.Context, fn func(OrderEvent)) {
	sub := rdx.Conn.Subscribe(ctx, orderEventsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev OrderEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("[mq] failed to parse order event: %v", err)
				continue
			}
			fn(ev)
		case <-ctx.Done():
			return
		}
	}
}
