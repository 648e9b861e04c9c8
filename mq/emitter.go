package mq

import (
	"context"
	"encoding/json"
	"log"

	"wayfare/models"
	"wayfare/rdx"
)

const eventsChannel = "entity-events"

// Emit publishes a mutation event to Redis for downstream consumers.
func Emit(ctx context.Context, eventName string, content models.Index) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if err := rdx.Conn.Publish(context.Background(), eventsChannel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s: %v", eventName, err)
	}
}

// StartEventWorker consumes mutation events and keeps Redis caches honest:
// any place mutation invalidates the cached place list.
func StartEventWorker() {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventsChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] Listening for entity events...")

	for msg := range ch {
		var event models.Index
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("[EventWorker] Failed to parse event: %v", err)
			continue
		}

		switch event.EntityType {
		case "place", "review":
			if err := rdx.RdxDel("places"); err != nil {
				log.Printf("[EventWorker] cache invalidation: %v", err)
			}
		}
	}
}
