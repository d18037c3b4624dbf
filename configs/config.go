package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	// default rates; order completion snapshots these
	TaxRate      decimal.Decimal
	GratuityRate decimal.Decimal

	RestaurantName    string
	RestaurantAddress string
	RestaurantPhone   string
}

func LoadConfig() *Config {
	// .env optional นอก dev
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "pos.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 12)) * time.Hour,

		TaxRate:      getEnvDecimal("TAX_RATE", "0.08"),
		GratuityRate: getEnvDecimal("GRATUITY_RATE", "0.20"),

		RestaurantName:    getEnv("RESTAURANT_NAME", "Fuji Restaurant"),
		RestaurantAddress: getEnv("RESTAURANT_ADDRESS", ""),
		RestaurantPhone:   getEnv("RESTAURANT_PHONE", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
		log.Printf("invalid %s=%q, using default %s", key, v, fallback)
	}
	return decimal.RequireFromString(fallback)
}
