package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/brewday/cart-service/internal/brewery"
	"github.com/brewday/cart-service/internal/cart"
	"github.com/brewday/cart-service/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestID)
	app.Use(requestLog)

	// liveness probe, stays reachable without a token
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("Cart service is running")
	})

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	client := brewery.NewClient(cfg.BreweryAPIURL)
	cartHandler := cart.NewHandler(cart.NewService(client))
	cartHandler.RegisterProtectedRoutes(app)

	log.Printf("starting cart service on %s (upstream %s)", cfg.Addr, cfg.BreweryAPIURL)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// requestID keeps an inbound X-Request-ID or mints one, so log lines and
// upstream traffic can be correlated per request.
func requestID(c *fiber.Ctx) error {
	rid := c.Get("X-Request-ID")
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Locals("request_id", rid)
	c.Set("X-Request-ID", rid)
	return c.Next()
}

func requestLog(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s -> %d (%v) rid=%v",
		c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start), c.Locals("request_id"))
	return err
}
