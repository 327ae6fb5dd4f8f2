package main

import (
	"log"
	"path/filepath"

	"github.com/Kyz7/portfolio/internal/cards"
	"github.com/Kyz7/portfolio/internal/config"
	"github.com/Kyz7/portfolio/internal/site"
)

func main() {
	cfg := config.Load()

	builder := &site.Builder{
		Store:     cards.NewStore(cfg.DataFile),
		IndexFile: cfg.IndexFile,
		DistDir:   cfg.DistDir,
		StaticDirs: []string{
			filepath.Dir(cfg.AssetsDir),
			filepath.Join(cfg.WebDir, "css"),
			filepath.Join(cfg.WebDir, "js"),
		},
	}

	log.Println("Build started...")
	count, err := builder.Build()
	if err != nil {
		log.Fatal("❌ Build failed: ", err)
	}
	log.Printf("Loaded %d cards.", count)
	log.Printf("✅ Site written to %s", cfg.DistDir)
}
