package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/trafylabs/academy-api/pkg/auth"
)

func main() {
	fmt.Println("adding user into database...")

	err := godotenv.Load()
	if err != nil {
		log.Println("warning: .env file not found, use system environment variables.")
	}

	DSN := os.Getenv("DB_DSN")
	SEED_EMAIL := os.Getenv("SEED_EMAIL")
	SEED_PASSWORD := os.Getenv("SEED_PASSWORD")
	SEED_FIRST_NAME := os.Getenv("SEED_FIRST_NAME")

	hash, err := auth.HashPassword(SEED_PASSWORD)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), DSN)
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	var firstName *string
	if SEED_FIRST_NAME != "" {
		firstName = &SEED_FIRST_NAME
	}

	query := `
		INSERT INTO users (id, email, first_name, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET first_name = $3, password_hash = $4
	`
	_, err = pool.Exec(context.Background(), query, uuid.New(), SEED_EMAIL, firstName, hash)
	if err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated user '%s' successfully!\n", SEED_EMAIL)
}
