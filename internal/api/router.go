package api

import (
	"github.com/labstack/echo/v4"

	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/handler"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/api/middleware"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/domain"
	"github.com/CosimoLM/InteligenciaArtificialV3/internal/core/ports"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Users          ports.UserService
	Texts          ports.TextService
	Predictions    ports.PredictionService
	Classification ports.ClassificationService
	Security       ports.SecurityService
}

// RegisterRoutes mounts the /api/v1 routes on e.
func RegisterRoutes(e *echo.Echo, svc Services, jwtSecret string) {
	userHandler := handler.NewUserHandler(svc.Users)
	textHandler := handler.NewTextHandler(svc.Texts)
	predictionHandler := handler.NewPredictionHandler(svc.Predictions, svc.Classification)
	securityHandler := handler.NewSecurityHandler(svc.Security)

	v1 := e.Group("/api/v1")

	// --- Public ---
	v1.POST("/token", securityHandler.Token)

	// --- Authenticated ---
	auth := middleware.Auth(jwtSecret)
	anyRole := middleware.RequireRoles(domain.RoleAdministrator, domain.RoleUser)
	adminOnly := middleware.RequireRoles(domain.RoleAdministrator)

	secured := v1.Group("", auth, anyRole)

	users := secured.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	texts := secured.Group("/texts")
	texts.GET("", textHandler.List)
	texts.POST("", textHandler.Create)
	texts.GET("/:id", textHandler.Get)
	texts.PUT("/:id", textHandler.Update)
	texts.DELETE("/:id", textHandler.Delete)

	predictions := secured.Group("/predictions")
	predictions.GET("", predictionHandler.List)
	predictions.GET("/stats", predictionHandler.Stats)
	predictions.POST("/predict/:textId", predictionHandler.Predict)
	predictions.POST("/retrain", predictionHandler.Retrain, adminOnly)
	predictions.GET("/:id", predictionHandler.Get)
	predictions.DELETE("/:id", predictionHandler.Delete)

	// Singular alias kept for older clients.
	secured.POST("/prediction/predict/:textId", predictionHandler.Predict)

	v1.POST("/security", securityHandler.Register, auth, adminOnly)
}
