// Command seed initializes the database with a first superuser so the API
// can be administered before any other account exists. The seeded account
// gets one pre-issued auth token, printed via the log output.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/doylio/eros-server/internal/app"
	"github.com/doylio/eros-server/internal/auth"
	"github.com/doylio/eros-server/internal/platform/db"
)

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	username := os.Getenv("SEED_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		logger.Error("SEED_PASSWORD must be provided")
		os.Exit(1)
	}

	if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokenService := auth.NewTokenService([]byte(cfg.JWTSecret))
	repo := auth.NewRepository(pool)
	service := auth.NewService(repo, hasher, tokenService)

	account, err := service.Register(ctx, username, password, auth.RoleSuperuser)
	if err != nil {
		logger.Error("register superuser", slog.Any("error", err))
		os.Exit(1)
	}

	token, err := tokenService.Issue(account.ID, auth.ScopeAuth)
	if err != nil {
		logger.Error("issue token", slog.Any("error", err))
		os.Exit(1)
	}
	account.Tokens = append(account.Tokens, auth.IssuedToken{Scope: auth.ScopeAuth, Token: token})
	if err := repo.Update(ctx, account); err != nil {
		logger.Error("persist token", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("database initialized",
		slog.String("username", account.Username),
		slog.String("token", token))
}
