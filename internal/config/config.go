package config

import "os"

type Config struct {
	Addr          string
	JWTSecret     string
	BreweryAPIURL string
}

func Load() Config {
	addr := os.Getenv("CART_SERVICE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	base := os.Getenv("BREWERY_API_URL")
	if base == "" {
		base = "http://localhost:5000"
	}

	return Config{
		Addr:          addr,
		JWTSecret:     os.Getenv("JWT_SECRET"),
		BreweryAPIURL: base,
	}
}
