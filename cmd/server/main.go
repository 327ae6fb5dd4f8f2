package main

import (
	"log"

	"github.com/Kyz7/portfolio/internal/assets"
	"github.com/Kyz7/portfolio/internal/cards"
	"github.com/Kyz7/portfolio/internal/config"
	"github.com/Kyz7/portfolio/internal/server"
)

func main() {
	cfg := config.Load()

	// ========== STORAGE SETUP ==========
	if err := assets.Init(cfg.AssetsDir); err != nil {
		log.Fatal("❌ Failed to initialize asset root:", err)
	}
	log.Printf("✅ Asset root initialized at %s", cfg.AssetsDir)

	cards.Init(cfg.DataFile)
	log.Printf("✅ Card store backed by %s", cfg.DataFile)

	if cfg.UseS3 {
		if cfg.S3Bucket != "" && cfg.S3Region != "" {
			if err := assets.InitS3(cfg.S3Bucket, cfg.S3Region, cfg.CloudFrontURL); err != nil {
				log.Println("⚠️  S3 initialization failed:", err)
				log.Println("⚠️  Falling back to local storage")
				assets.SetStorageMode(true)
			} else {
				log.Println("✅ S3 initialized successfully")
				log.Printf("☁️  Using S3: %s (region: %s)", cfg.S3Bucket, cfg.S3Region)
			}
		} else {
			log.Println("⚠️  USE_S3=true but S3_BUCKET or S3_REGION not configured")
			log.Println("⚠️  Falling back to local storage")
		}
	} else {
		log.Printf("💾 Using LOCAL storage mode (%s)", cfg.AssetsDir)
		assets.SetStorageMode(true)
	}

	// ========== START SERVER ==========
	app := server.New(cfg)

	log.Printf("🚀 Portfolio server running at http://localhost%s", cfg.ServerAddr)
	log.Printf("💾 Storage Mode: %s", assets.GetStorageMode())

	if err := app.Listen(cfg.ServerAddr); err != nil {
		log.Fatal("❌ Failed to start server:", err)
	}
}
