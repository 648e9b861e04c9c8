package routes

import (
	"wayfare/assistant"
	"wayfare/chatbot"
	"wayfare/ratelim"

	"github.com/julienschmidt/httprouter"
)

func RoutesWrapper(router *httprouter.Router, rateLimiter *ratelim.RateLimiter) {
	AddAuthRoutes(router, rateLimiter)
	AddPlaceRoutes(router, rateLimiter)
	AddReviewsRoutes(router, rateLimiter)
	AddPlanRoutes(router, rateLimiter)
	AddWeatherRoutes(router, rateLimiter)
	AddUserDataRoutes(router, rateLimiter)
	AddStaticRoutes(router)
}

// AddChatRoutes wires the recommendation widget: plain HTTP plus the
// websocket stream. Kept out of RoutesWrapper so main can own the hub.
func AddChatRoutes(router *httprouter.Router, rl *ratelim.RateLimiter, hub *assistant.Hub, engine *chatbot.Engine) {
	router.POST("/api/chat/recommend", rl.Limit(chatbot.Recommend(engine)))
	router.GET("/ws/assistant", assistant.WebSocketHandler(hub, engine))
}
