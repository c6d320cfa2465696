package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/you/clubsvc/domain"
	"github.com/you/clubsvc/internal/config"
	"github.com/you/clubsvc/internal/infrastructure/auth"
	"github.com/you/clubsvc/internal/infrastructure/database"
	"github.com/you/clubsvc/internal/infrastructure/repositories"
)

// Creates the first admin account so the back office is reachable on a
// fresh database. Safe to re-run; an existing email is left untouched.
func main() {
	email := flag.String("email", "", "admin email address")
	phone := flag.String("phone", "", "admin phone in international format")
	flag.Parse()

	_ = godotenv.Load()

	password := os.Getenv("ADMIN_PASSWORD")
	if *email == "" || *phone == "" || password == "" {
		log.Fatal("usage: seed-admin -email ... -phone ... (ADMIN_PASSWORD in env)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()
	userRepo := repositories.NewUserRepository(db)

	if _, err := userRepo.FindByEmail(ctx, *email); err == nil {
		log.Printf("admin %s already exists, nothing to do", *email)
		return
	}

	hash, err := auth.NewPasswordService().Hash(password)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	admin := &domain.User{
		FirstName:        "Club",
		LastName:         "Admin",
		Email:            *email,
		Phone:            *phone,
		PasswordHash:     hash,
		Role:             domain.RoleAdmin,
		MembershipStatus: domain.MembershipActive,
		TwoFactorEnabled: true,
		Verified:         true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Fatalf("create admin: %v", err)
	}

	log.Printf("created admin user_id=%d email=%s", admin.ID, admin.Email)
}
