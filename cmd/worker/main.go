package main

import (
	"context"
	"log"
	"time"

	"github.com/MuckRock/textract-table-extractor-add-on/internal/activities"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/analysis"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/config"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/platform"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/storage"
	"github.com/MuckRock/textract-table-extractor-add-on/internal/workflows"

	"github.com/joho/godotenv"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
)

func main() {
	_ = godotenv.Load(".env")
	cfg := config.Load()
	c, err := client.Dial(client.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	w := worker.New(c, cfg.TemporalTaskQueue, worker.Options{})
	workflows.Register(w)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal(err)
	}

	dc := platform.NewClient(cfg.PlatformBaseURL, cfg.PlatformToken, time.Duration(cfg.ImageTimeoutSecs)*time.Second)
	analyzer, err := analysis.NewAnalyzer(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	activities.Register(w, activities.New(cfg, db, dc, analyzer))

	log.Printf("table-extractor worker listening on %s queue=%s provider=%s", cfg.TemporalAddress, cfg.TemporalTaskQueue, analyzer.Name())
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatal(err)
	}
}
