// Command createadmin seeds an administrator account. Registration always
// creates regular users; this is the only way an admin comes to exist.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"golang.org/x/term"

	"github.com/nueltech/catalog-service/internal/auth"
	"github.com/nueltech/catalog-service/internal/config"
	"github.com/nueltech/catalog-service/internal/domain"
	"github.com/nueltech/catalog-service/internal/observability"
	"github.com/nueltech/catalog-service/internal/persistence"
	"github.com/nueltech/catalog-service/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(config.LoggerConfig{Level: "warn"})
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer pg.Close()

	users := repository.NewUserRepository(pg.PoolHandle())

	reader := bufio.NewReader(os.Stdin)
	name := prompt(reader, "Name: ")
	email := prompt(reader, "Email: ")

	if _, err := users.GetByEmail(ctx, email); err == nil {
		log.Fatalf("an account with email %s already exists", email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("failed to check email: %v", err)
	}

	password := promptPassword("Password: ")
	confirm := promptPassword("Confirm password: ")
	if password != confirm {
		log.Fatal("passwords do not match")
	}
	if len(password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	fmt.Printf("admin account created\n  id:    %s\n  email: %s\n", admin.ID, admin.Email)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		log.Fatalf("failed to read input: %v", err)
	}
	value := strings.TrimSpace(line)
	if value == "" {
		log.Fatal("value must not be empty")
	}
	return value
}

func promptPassword(label string) string {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		log.Fatalf("failed to read password: %v", err)
	}
	return string(raw)
}
