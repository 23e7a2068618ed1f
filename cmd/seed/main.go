package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/pawmart/pawmart-backend/config"
	"github.com/pawmart/pawmart-backend/pkg/helpers"
)

// Seeds a reviewer account and a demo applicant for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	seed := func(email, name, password, role string) string {
		hash, err := helpers.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		var id string
		err = db.QueryRow(`
			INSERT INTO users (email, password, name, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, role = EXCLUDED.role
			RETURNING id
		`, email, hash, name, role).Scan(&id)
		if err != nil {
			log.Fatalf("failed to seed %s: %v", email, err)
		}
		fmt.Printf("seeded user: id=%s email=%s role=%s password=%s\n", id, email, role, password)
		return id
	}

	seed("admin@pawmart.local", "PawMart Admin", "admin12345", "ADMIN")
	seed("demo@pawmart.local", "Demo Applicant", "password123", "USER")
}
