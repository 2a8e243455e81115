package main

import (
	"log"

	"github.com/gofiber/fiber/v2"

	httpadapter "portfolio-server/internal/adapter/http"
	"portfolio-server/internal/config"
	"portfolio-server/internal/preview"
	"portfolio-server/internal/usecase"
	"portfolio-server/pkg/sanity"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store := sanity.NewClient(sanity.Config{
		ProjectID:  cfg.ProjectID,
		Dataset:    cfg.Dataset,
		APIVersion: cfg.APIVersion,
		Token:      cfg.ViewerToken,
		UseCDN:     cfg.UseCDN,
	})

	previewStore := preview.NewStore(cfg.SessionSecret, cfg.ProjectID, cfg.ViewerToken)
	content := usecase.NewContentService(store)

	app := fiber.New()

	h := httpadapter.NewHandler(content, previewStore, cfg.PreviewSecret)
	h.Register(app)

	log.Printf("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
