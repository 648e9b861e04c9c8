package routes

import (
	"net/http"

	"wayfare/auth"
	"wayfare/middleware"
	"wayfare/models"
	"wayfare/plans"
	"wayfare/ratelim"
	"wayfare/reviews"
	"wayfare/userdata"
	"wayfare/weather"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/placepic/*filepath", http.Dir("static/placepic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.LogoutUser))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
	router.POST("/api/auth/password", rl.Limit(middleware.Authenticate(auth.ChangePassword)))
}

func AddReviewsRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/reviews/:reviewid", reviews.GetReview)
	router.POST("/api/reviews/add", rl.Limit(middleware.Authenticate(reviews.AddReview)))
	router.PUT("/api/reviews/:reviewid", middleware.Authenticate(reviews.EditReview))
	router.DELETE("/api/reviews/:reviewid", middleware.Authenticate(reviews.DeleteReview))

	router.GET("/api/place/:placeid/reviews", reviews.GetReviews)
	router.GET("/api/user/reviews", middleware.Authenticate(reviews.GetMyReviews))
}

func AddPlanRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/plans/create", rl.Limit(middleware.Authenticate(plans.CreatePlan)))
	router.GET("/api/plans", middleware.Authenticate(plans.GetMyPlans))
	router.GET("/api/plans/:planid", middleware.Authenticate(plans.GetPlan))
	router.PUT("/api/plans/:planid", middleware.Authenticate(plans.UpdatePlan))
	router.DELETE("/api/plans/:planid", middleware.Authenticate(plans.DeletePlan))
	router.GET("/api/plans/:planid/export", middleware.Authenticate(plans.ExportPlanPDF))
}

func AddWeatherRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/weather/current", rl.Limit(weather.GetCurrentWeather))
	router.GET("/api/weather/forecast", rl.Limit(weather.GetForecast))
}

func AddUserDataRoutes(router *httprouter.Router, _ *ratelim.RateLimiter) {
	router.GET("/api/user/data", middleware.Authenticate(userdata.GetUserProfileData))
}

// ownerOrAdmin gates place management on the account's role.
func ownerOrAdmin(h httprouter.Handle) httprouter.Handle {
	return middleware.Authenticate(middleware.RequireRoles(h, models.RoleOwner, models.RoleAdmin))
}
