package api

import (
	"log"
	stdhttp "net/http"

	intconfig "tripbudget/internal/config"
	h "tripbudget/internal/http/handlers"
	"tripbudget/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	h.SetJWTSecret(env.JWTSecret)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	authRequired := middleware.RequireAuth(env.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		users := api.Group("/users", authRequired, middleware.RequireRoles("admin", "owner"))
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)

		trips := api.Group("/trips")
		trips.GET("", h.ListTrips)
		trips.GET("/:id", h.GetTrip)
		trips.GET("/:id/summary", h.GetTripSummaryPDF)
		trips.POST("", authRequired, h.CreateTrip)
		trips.PUT("/:id", authRequired, h.UpdateTrip)
		trips.DELETE("/:id", authRequired, h.DeleteTrip)
		trips.POST("/:id/recompute", authRequired, h.RecomputeTrip)
		trips.PUT("/:id/suggested-price", authRequired, h.SetTripSuggestedPrice)
		trips.DELETE("/:id/suggested-price", authRequired, h.ClearTripSuggestedPrice)

		passengers := api.Group("/passengers")
		passengers.GET("", h.ListPassengers)
		passengers.GET("/:id", h.GetPassenger)
		passengers.GET("/:id/statement", h.GetPassengerStatementPDF)
		passengers.POST("", authRequired, h.CreatePassenger)
		passengers.PUT("/:id", authRequired, h.UpdatePassenger)
		passengers.DELETE("/:id", authRequired, h.DeletePassenger)
		passengers.PUT("/:id/installments/:index", authRequired, h.SetPassengerInstallment)
		passengers.PUT("/:id/lump-sum", authRequired, h.SetPassengerLumpSum)
	}

	h.SetRouter(r)
	return r
}
