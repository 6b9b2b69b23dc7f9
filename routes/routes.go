package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/branegg/dyspo/config"
	"github.com/branegg/dyspo/handlers"
	"github.com/branegg/dyspo/middlewares"
	"github.com/branegg/dyspo/models"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	av := handlers.NewAvailabilityHandler()
	sch := handlers.NewScheduleHandler()
	emp := handlers.NewEmployeeHandler()
	hrs := handlers.NewHourLogHandler()

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.POST("/auth/register", auth.Register)
	e.POST("/auth/login", auth.Login)

	// ===== Authenticated =====
	authMW := middlewares.RequireAuth(cfg.JWTSecret)
	api := e.Group("/api", authMW)

	api.GET("/availability", av.Get)
	api.POST("/availability", av.Save)

	api.GET("/schedule", sch.Get, middlewares.RequireRole(models.RoleEmployee))
	api.GET("/stats", sch.Stats)

	api.GET("/hours", hrs.List)
	api.POST("/hours", hrs.Create)
	api.PUT("/hours/:id", hrs.Update)
	api.DELETE("/hours/:id", hrs.Delete)

	// ===== Admin =====
	admin := api.Group("/admin", middlewares.RequireRole(models.RoleAdmin))

	admin.GET("/availability", av.AdminList)
	admin.POST("/availability/lock", av.Lock)
	admin.POST("/availability/unlock", av.Unlock)
	admin.POST("/availability/lock-all", av.LockAll)

	admin.GET("/schedule", sch.AdminGet)
	admin.POST("/schedule", sch.AdminSave)

	admin.GET("/employees", emp.List)
	admin.POST("/employees", emp.Create)
	admin.PUT("/employees/:id", emp.Update)

	admin.GET("/hours", hrs.AdminList)
}
