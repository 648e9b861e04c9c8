package routes

import (
	"wayfare/middleware"
	"wayfare/places"
	"wayfare/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddPlaceRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/places", places.GetPlaces)
	router.GET("/api/places/nearby", places.GetNearbyPlaces)
	router.GET("/api/places/mine", ownerOrAdmin(places.GetMyPlaces))
	router.GET("/api/place/:placeid", middleware.OptionalAuth(places.GetPlace))

	router.POST("/api/places", rl.Limit(ownerOrAdmin(places.CreatePlace)))
	router.PUT("/api/place/:placeid", ownerOrAdmin(places.EditPlace))
	router.DELETE("/api/place/:placeid", ownerOrAdmin(places.DeletePlace))
	router.POST("/api/place/:placeid/banner", ownerOrAdmin(places.UploadBanner))
}
