package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string

	DataFile  string
	AssetsDir string

	WebDir    string
	IndexFile string
	DistDir   string

	UseS3         bool
	S3Bucket      string
	S3Region      string
	CloudFrontURL string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		DataFile:   getEnv("DATA_FILE", "./data/cards.json"),
		AssetsDir:  getEnv("ASSETS_DIR", "./assets/images"),
		WebDir:     getEnv("WEB_DIR", "./web"),
		IndexFile:  getEnv("INDEX_FILE", "./web/index.html"),
		DistDir:    getEnv("DIST_DIR", "./dist"),

		UseS3:         getEnv("USE_S3", "false") == "true",
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", ""),
		CloudFrontURL: getEnv("CLOUDFRONT_URL", ""),
	}

	log.Println("✅ Config loaded")
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
