package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/config"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/database"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/logger"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/model"
	"github.com/Piash-Akbar/Anirban-Da-s-class-organizer-sub000/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	nameFlag := flag.String("name", "", "Admin display name (prompted when empty)")
	emailFlag := flag.String("email", "", "Admin email (prompted when empty)")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	fmt.Println("=== Create Studio Administrator ===")
	reader := bufio.NewReader(os.Stdin)

	in := adminInput{
		Name:  orPrompt(reader, *nameFlag, "Name: "),
		Email: orPrompt(reader, *emailFlag, "Email: "),
	}
	password, err := readPassword(reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading password:", err)
		os.Exit(1)
	}
	in.Password = password

	if err := in.normalize(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	ctx := context.Background()
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	admin := &model.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         model.RoleAdmin,
	}
	if err := repository.NewUserRepository(pool).Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			fmt.Fprintf(os.Stderr, "%s is already registered. Run promote-admin -email %s instead.\n", in.Email, in.Email)
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to create admin")
	}

	log.Info().Str("user_id", admin.ID.String()).Str("email", admin.Email).Msg("Admin created")
}

func orPrompt(r *bufio.Reader, value, label string) string {
	if value != "" {
		return value
	}
	fmt.Print(label)
	line, _ := r.ReadString('\n')
	return line
}

// readPassword reads without echo from a terminal, or a single line when
// stdin is piped.
func readPassword(r *bufio.Reader) (string, error) {
	fmt.Print("Password: ")
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	b, err := term.ReadPassword(fd)
	fmt.Println()
	return string(b), err
}
