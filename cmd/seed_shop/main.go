package main

import (
	"context"
	"log"
	"os"

	"study_webapp/internal/db"
	"study_webapp/internal/repository"
	"study_webapp/internal/service"
)

// Creates a demo user (if missing) and prints a JWT for it. The shop catalog
// itself is seeded by the migrations.
func main() {
	// expects DATABASE_URL env var
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	stats := repository.NewStatsRepository(pool)
	auth := service.NewAuthService(users, stats)
	ctx := context.Background()

	email := "demo@example.com"

	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}
	if u != nil {
		log.Printf("user already exists id=%s\n", u.ID)
	} else {
		u, _, err = auth.Register(ctx, "demo", email, "demopass1", "Demo Student")
		if err != nil {
			log.Fatalf("create user failed: %v", err)
		}
		log.Printf("user created id=%s\n", u.ID)
	}

	// give the demo account some spending money
	if _, err := stats.AddCoins(ctx, u.ID, 500); err != nil {
		log.Fatalf("add coins failed: %v", err)
	}

	st, err := stats.GetByUserID(ctx, u.ID)
	if err != nil {
		log.Fatalf("get stats failed: %v", err)
	}
	log.Printf("user id=%s username=%s coins=%d\n", u.ID, u.Username, st.Coins)

	// initialize JWT and print token
	service.InitJWT()
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	log.Printf("token=%s\n", token)
}
