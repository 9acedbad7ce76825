package main

import (
	"context"                        // Context for store setup
	"recipe_manager/internal/config" // Custom import path (Config)
	"recipe_manager/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig()            // Load configuration
	db.Migrate(context.Background(), cfg) // Create tables or indexes for the configured store
}
