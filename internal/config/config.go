package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	DBURL       string
	RedisAddr   string
	KafkaBroker string
	KafkaTopic  string

	JWTSecret string

	Storage StorageConfig
	Payment PaymentConfig

	WhatsAppNumber string

	ResendAPIKey    string
	ResendFromEmail string
	StoreEmail      string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type StorageConfig struct {
	Driver string // cloudinary | s3
	Bucket string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	AWSRegion   string
	AWSEndpoint string
}

type PaymentConfig struct {
	MidtransServerKey    string
	MidtransIsProduction bool
	PublicKey            string
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (*Config, error) {
	_ = godotenv.Load(files...)

	cfg := &Config{
		AppEnv:      getEnv("APP_ENV", "development"),
		Port:        getEnv("PORT", "3000"),
		DBURL:       os.Getenv("DB_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:  getEnv("KAFKA_TOPIC", "checkout.events"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		Storage: StorageConfig{
			Driver:              strings.ToLower(getEnv("STORAGE_DRIVER", "cloudinary")),
			Bucket:              getEnv("STORAGE_BUCKET", "product-images"),
			CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
			AWSEndpoint:         os.Getenv("AWS_S3_ENDPOINT"),
		},
		Payment: PaymentConfig{
			MidtransServerKey:    os.Getenv("MIDTRANS_SERVER_KEY"),
			MidtransIsProduction: getBool("MIDTRANS_IS_PRODUCTION", false),
			PublicKey:            os.Getenv("PAYMENT_PUBLIC_KEY"),
		},
		WhatsAppNumber:  getEnv("WHATSAPP_NUMBER", "2349064515891"),
		ResendAPIKey:    strings.Trim(os.Getenv("RESEND_API_KEY"), "\""),
		ResendFromEmail: strings.Trim(getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"), "\""),
		StoreEmail:      os.Getenv("STORE_EMAIL"),
		AdminEmail:      os.Getenv("ADMIN_EMAIL"),
		AdminPassword:   os.Getenv("ADMIN_PASSWORD"),
		AdminName:       getEnv("ADMIN_NAME", "Store Admin"),
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// ValidateAPI checks the settings the HTTP server cannot start without.
func (c *Config) ValidateAPI() error {
	if c.DBURL == "" {
		return fmt.Errorf("DB_URL is not configured")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not configured")
	}
	switch c.Storage.Driver {
	case "cloudinary", "s3":
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
