package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/logger"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
)

func main() {
	var email string
	var demote bool
	flag.StringVar(&email, "email", "", "Email of the registered user to promote")
	flag.BoolVar(&demote, "demote", false, "Set the user back to student instead")
	flag.Parse()

	if email == "" {
		fmt.Println("Usage: promote-admin -email <address> [-demote]")
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	user, err := userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Printf("Error: no account registered with %s\n", email)
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to look up user")
	}

	role := model.RoleAdmin
	if demote {
		role = model.RoleStudent
	}
	if user.Role == role {
		fmt.Printf("%s (%s) is already %s, nothing to do.\n", user.Name, user.Email, role)
		return
	}

	updated, err := userRepo.UpdateRole(ctx, user.ID, role)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to update role")
	}

	fmt.Printf("Success! %s (%s) is now %s. Active sessions pick this up on their next request.\n",
		updated.Name, updated.Email, updated.Role)
}
