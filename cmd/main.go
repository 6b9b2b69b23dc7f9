package main

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/branegg/dyspo/config"
	"github.com/branegg/dyspo/database"
	"github.com/branegg/dyspo/routes"
)

// payloadValidator plugs go-playground/validator into echo.
type payloadValidator struct {
	v *validator.Validate
}

func (p *payloadValidator) Validate(i any) error {
	return p.v.Struct(i)
}

// @title           Dyspo API
// @version         1.0
// @description     Echo + PostgreSQL work-scheduling backend
// @BasePath        /
func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	cfg := config.Load()

	// fail early if the DB is not up
	database.Connect(cfg)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &payloadValidator{v: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 15 * time.Second

	routes.Register(e, cfg)

	log.Printf("listening on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
	if err := e.Start(":" + cfg.AppPort); err != nil {
		log.Fatal(err)
	}
}
