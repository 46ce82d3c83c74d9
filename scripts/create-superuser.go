package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/recipebox/recipebox/internal/repository"
	"github.com/recipebox/recipebox/internal/service"
)

type output struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		email       = flag.String("email", "", "Superuser email (required)")
		password    = flag.String("password", "", "Superuser password (prompted if omitted)")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}
	if *email == "" {
		fmt.Fprintln(os.Stderr, "-email is required")
		os.Exit(1)
	}

	pw := *password
	if pw == "" {
		var err error
		pw, err = promptPassword()
		if err != nil {
			fmt.Fprintln(os.Stderr, "read password:", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	svc := service.NewUserService(repo)

	user, err := svc.CreateSuperuser(ctx, *email, pw)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create superuser:", err)
		os.Exit(1)
	}

	out := output{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}

	switch strings.ToLower(*format) {
	case "plain":
		fmt.Println(out.UserID)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(out)
	default:
		fmt.Fprintln(os.Stderr, "invalid format; use plain or json")
		os.Exit(1)
	}
}

func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	pw := string(raw)
	if strings.TrimSpace(pw) == "" {
		return "", fmt.Errorf("password must not be empty")
	}
	return pw, nil
}
