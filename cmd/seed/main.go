package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/listora/listings-api/config"
	"github.com/listora/listings-api/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@example.com"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s password=%s\n", id, email, password)

	listings := []struct {
		title       string
		description string
	}{
		{"Vintage bicycle", "Single-speed city bike, recently serviced."},
		{"Bookshelf", "Oak bookshelf, five shelves, minor scratches."},
		{"Guitar amp", "20W practice amp, barely used."},
	}
	for _, l := range listings {
		var lid int64
		if err := db.QueryRow(`
			INSERT INTO listings (title, description, owner_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, l.title, l.description, id).Scan(&lid); err != nil {
			log.Fatalf("failed to seed listing: %v", err)
		}
		fmt.Printf("seeded listing: id=%d title=%q\n", lid, l.title)
	}
}
