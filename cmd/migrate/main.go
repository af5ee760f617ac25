// Command migrate applies the database schema on demand. The server only
// automigrates outside production, so deploys run this explicitly.
package main

import (
	"fmt"
	"log"

	"threadnest/internal/config"
	"threadnest/internal/database"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := database.ConnectWithOptions(cfg, database.ConnectOptions{ApplySchema: false})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	log.Println("schema applied")
	return nil
}
