// Command seed fills the database with sample diary entries and a
// window history without starting the API.
package main

import (
	"log"

	"github.com/cbti-tools/sleep-diary/internal/config"
	"github.com/cbti-tools/sleep-diary/internal/seed"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
}
