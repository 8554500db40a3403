package utils

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

	// Admin login (bcrypt hash of the admin password)
	AdminPasswordHash string `yaml:"ADMIN_PASSWORD_HASH"`

	// Google sign-in
	GoogleClientID string `yaml:"GOOGLE_CLIENT_ID"`

	// Mailing configuration
	AppURL           string `yaml:"APP_URL"`
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`

	// Gemini API configuration
	GeminiAPIKey string `yaml:"GEMINI_API_KEY"`
	GeminiModel  string `yaml:"GEMINI_MODEL"`

	// Firebase Cloud Messaging (service account JSON blob)
	FCMKeyData string `yaml:"FCM_KEY_DATA"`

	// External product / recipe APIs
	OpenFoodFactsURL string `yaml:"OPENFOODFACTS_URL"`
	RecipeAPIURL     string `yaml:"RECIPE_API_URL"`
	RecipeAPIKey     string `yaml:"RECIPE_API_KEY"`
}

var config Config

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}

	os.Setenv("JWT_SECRET", config.JWTSecret)
	os.Setenv("GOOGLE_CLIENT_ID", config.GoogleClientID)
	os.Setenv("AWS_S3_BUCKET", config.AWSS3Bucket)
	os.Setenv("AWS_S3_REGION", config.AWSS3Region)
	os.Setenv("AWS_ACCESS_KEY", config.AWSAccessKey)
	os.Setenv("AWS_SECRET_KEY", config.AWSSecretKey)
	os.Setenv("GEMINI_API_KEY", config.GeminiAPIKey)
}

// GetConfig resolves a key from config.yaml, falling back to the process
// environment so secrets like FCM_KEY_DATA can stay out of the file.
func GetConfig(key string) string {
	switch key {
	case "DB_USER":
		return orEnv(key, config.DBUser)
	case "DB_NAME":
		return orEnv(key, config.DBName)
	case "DB_PASSWORD":
		return orEnv(key, config.DBPassword)
	case "DB_PORT":
		return orEnv(key, config.DBPort)
	case "DB_HOST":
		return orEnv(key, config.DBHost)
	case "JWT_SECRET":
		return orEnv(key, config.JWTSecret)
	case "ADMIN_PASSWORD_HASH":
		return orEnv(key, config.AdminPasswordHash)
	case "GOOGLE_CLIENT_ID":
		return orEnv(key, config.GoogleClientID)
	case "APP_URL":
		return orEnv(key, config.AppURL)
	case "SMTP_HOST":
		return orEnv(key, config.SMTPHost)
	case "SMTP_PORT":
		return orEnv(key, config.SMTPPort)
	case "SMTP_SENDER_NAME":
		return orEnv(key, config.SMTPSenderName)
	case "SMTP_AUTH_EMAIL":
		return orEnv(key, config.SMTPAuthEmail)
	case "SMTP_AUTH_PASSWORD":
		return orEnv(key, config.SMTPAuthPassword)
	case "AWS_S3_BUCKET":
		return orEnv(key, config.AWSS3Bucket)
	case "AWS_S3_REGION":
		return orEnv(key, config.AWSS3Region)
	case "AWS_ACCESS_KEY":
		return orEnv(key, config.AWSAccessKey)
	case "AWS_SECRET_KEY":
		return orEnv(key, config.AWSSecretKey)
	case "GEMINI_API_KEY":
		return orEnv(key, config.GeminiAPIKey)
	case "GEMINI_MODEL":
		return orEnv(key, config.GeminiModel)
	case "FCM_KEY_DATA":
		return orEnv(key, config.FCMKeyData)
	case "OPENFOODFACTS_URL":
		return orEnv(key, config.OpenFoodFactsURL)
	case "RECIPE_API_URL":
		return orEnv(key, config.RecipeAPIURL)
	case "RECIPE_API_KEY":
		return orEnv(key, config.RecipeAPIKey)
	default:
		return os.Getenv(key)
	}
}

func orEnv(key, val string) string {
	if val != "" {
		return val
	}
	return os.Getenv(key)
}
