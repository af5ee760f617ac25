// Command main runs the database seeder for Threadnest.
package main

import (
	"flag"
	"log"

	"threadnest/internal/config"
	"threadnest/internal/database"
	"threadnest/internal/seed"
)

func main() {
	// Parse command line flags
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	dryRun := flag.Bool("dry-run", false, "Log planned writes without touching the DB")
	fast := flag.Bool("fast", false, "Skip bcrypt hashing for faster bulk seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts, clean=%v\n", *numUsers, *numPosts, *shouldClean)

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumPosts:    *numPosts,
		ShouldClean: *shouldClean && !*dryRun,
		Factory: seed.SeedOptions{
			DryRun:     *dryRun,
			SkipBcrypt: *fast,
		},
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
