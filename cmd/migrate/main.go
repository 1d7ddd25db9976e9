package main

import (
	"mileage_mall/internal/config" // Custom import path (Config)
	"mileage_mall/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
