package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/export"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/logger"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	var file, password string
	var dryRun bool
	flag.StringVar(&file, "file", "", "XLSX roster with name and email columns (credits optional)")
	flag.StringVar(&password, "password", "", "Initial password for every imported student")
	flag.BoolVar(&dryRun, "dry-run", false, "Parse and report without writing")
	flag.Parse()

	if file == "" || (password == "" && !dryRun) {
		fmt.Println("Usage: import-students -file roster.xlsx -password <initial> [-dry-run]")
		os.Exit(2)
	}
	if !dryRun && len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		os.Exit(2)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	f, err := os.Open(file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open roster")
	}
	rows, err := export.ReadXLSX(f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read roster")
	}

	students, skipped, err := parseRoster(rows)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid roster")
	}
	for _, s := range skipped {
		fmt.Printf("Skipping row %d: %s\n", s.Row, s.Reason)
	}
	fmt.Printf("=== Importing %d students ===\n", len(students))

	if dryRun {
		for _, s := range students {
			fmt.Printf("  %s <%s> credits=%d\n", s.Name, s.Email, s.Credits)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	created, existing := 0, 0
	for i, s := range students {
		u := &model.User{
			Name:         s.Name,
			Email:        s.Email,
			PasswordHash: string(hash),
			Role:         model.RoleStudent,
			Credits:      s.Credits,
		}
		err := userRepo.Create(ctx, u)
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			existing++
		case err != nil:
			fmt.Printf("Error creating %s (%s): %v\n", s.Name, s.Email, err)
		default:
			created++
		}
		if (i+1)%25 == 0 {
			fmt.Printf("Processed %d students...\n", i+1)
		}
	}

	fmt.Printf("\nImport completed! Created %d, already registered %d, skipped %d.\n", created, existing, len(skipped))
}
