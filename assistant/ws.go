package assistant

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"wayfare/chatbot"
	"wayfare/db"
	"wayfare/middleware"
	"wayfare/models"
	"wayfare/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

type inboundPayload struct {
	Action  string `json:"action"` // "ask"
	Content string `json:"content,omitempty"`
}

type outboundPayload struct {
	Action  string         `json:"action"` // "reply", "error"
	Content string         `json:"content,omitempty"`
	Places  []models.Place `json:"places,omitempty"`
}

// WebSocketHandler upgrades the connection and runs the widget session.
// The token travels as a query parameter because browsers cannot set
// headers on websocket dials.
func WebSocketHandler(hub *Hub, engine *chatbot.Engine) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		claims, err := middleware.ParseToken(r.URL.Query().Get("token"))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			Conn:   conn,
			Send:   make(chan []byte, 256),
			Room:   claims.UserID,
			UserID: claims.UserID,
		}

		hub.register <- client
		go writePump(client)
		go readPump(client, hub, engine)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub, engine *chatbot.Engine) {
	defer func() {
		hub.unregister <- c
		c.Conn.Close()
	}()

	for {
		_, data, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(data, &in); err != nil {
			log.Printf("invalid payload: %v", err)
			continue
		}

		switch in.Action {
		case "ask":
			reply := answer(in.Content, engine)
			if out, err := json.Marshal(reply); err == nil {
				hub.broadcast <- broadcastMsg{Room: c.Room, Data: out}
			}
		default:
			log.Printf("unknown action: %q", in.Action)
		}
	}
}

func answer(question string, engine *chatbot.Engine) outboundPayload {
	if question == "" {
		return outboundPayload{Action: "error", Content: "Ask me something about places to go."}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetLimit(200).SetSort(bson.D{{Key: "averageRating", Value: -1}})
	candidates, err := utils.FindAndDecode[models.Place](ctx, db.PlacesCollection, bson.M{"active": true}, opts)
	if err != nil {
		return outboundPayload{Action: "error", Content: "Could not look up places right now."}
	}

	ranked := engine.Recommend(ctx, question, candidates)
	if len(ranked) > 10 {
		ranked = ranked[:10]
	}

	content := "I couldn't find any places yet."
	if len(ranked) > 0 {
		content = "Here are some places you might like."
	}
	return outboundPayload{Action: "reply", Content: content, Places: ranked}
}
