package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables
	S3BucketName string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string

	SNSRegion string

	// BrandName appears in every outbound SMS and email.
	BrandName string
	// DefaultLanguage is used when neither the caller nor the phone prefix
	// yields a supported language.
	DefaultLanguage string
	// NotifyTimeout bounds each outbound SMS/email call.
	NotifyTimeout time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users         string
	Sellers       string
	Products      string
	Orders        string
	Cards         string
	Addresses     string
	Reviews       string
	Follows       string
	Verifications string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "eu-central-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Users:         getEnv("DYNAMO_TABLE_USERS", "users"),
			Sellers:       getEnv("DYNAMO_TABLE_SELLERS", "sellers"),
			Products:      getEnv("DYNAMO_TABLE_PRODUCTS", "products"),
			Orders:        getEnv("DYNAMO_TABLE_ORDERS", "orders"),
			Cards:         getEnv("DYNAMO_TABLE_CARDS", "credit_cards"),
			Addresses:     getEnv("DYNAMO_TABLE_ADDRESSES", "addresses"),
			Reviews:       getEnv("DYNAMO_TABLE_REVIEWS", "seller_reviews"),
			Follows:       getEnv("DYNAMO_TABLE_FOLLOWS", "follows"),
			Verifications: getEnv("DYNAMO_TABLE_VERIFICATIONS", "verifications"),
		},
		S3BucketName: getEnv("S3_BUCKET_NAME", "ceptevar-uploads"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@ceptevar.com"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		SNSRegion: getEnv("SNS_REGION", "eu-central-1"),

		BrandName:       getEnv("BRAND_NAME", "CepteVar"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "tr"),
		NotifyTimeout:   time.Duration(getEnvInt("NOTIFY_TIMEOUT_SECONDS", 5)) * time.Second,

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
