// Package router wires HTTP routes to handlers.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"jobportal_backend/internal/app/config"
	accounthandler "jobportal_backend/internal/feature/account/transport/handler"
	platformhandler "jobportal_backend/internal/platform/http/handler"
)

// NewRouter builds the gin engine. authMW guards the profile routes.
func NewRouter(cfg config.Config, account *accounthandler.AccountHandler, health *platformhandler.HealthHandler, authMW gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	// The frontend sends the session cookie, so credentials must be allowed
	// and origins listed explicitly.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", health.Health)
	r.HEAD("/healthz", health.Health)
	r.OPTIONS("/healthz", health.Health)

	user := r.Group(cfg.APIPrefix + "/user")
	{
		user.POST("/register", account.Register)
		user.POST("/login", account.Login)
		user.GET("/logout", account.Logout)
	}

	profile := user.Group("/profile")
	profile.Use(authMW)
	{
		profile.GET("", account.Profile)
		profile.POST("/update", account.UpdateProfile)
		profile.PUT("/update", account.UpdateProfile)
	}

	return r
}
