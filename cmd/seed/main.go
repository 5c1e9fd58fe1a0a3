// Command seed populates the wishlist database with demo products and a
// demo user, then prints an access token for that user.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/utafrali/wishlist/internal/auth"
	"github.com/utafrali/wishlist/internal/config"
	"github.com/utafrali/wishlist/internal/domain"
	"github.com/utafrali/wishlist/internal/repository/postgres"
	"github.com/utafrali/wishlist/migrations"
	"github.com/utafrali/wishlist/pkg/database"
	"github.com/utafrali/wishlist/pkg/logger"
	"github.com/utafrali/wishlist/pkg/validator"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New("wishlist-seed", cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// ---------------------------------------------------------------
	// 1. Connect and migrate
	// ---------------------------------------------------------------
	pool, err := database.NewPostgresPool(ctx, cfg.Postgres(), log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()

	if err := database.RunMigrations(ctx, pool, migrations.FS, log); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// ---------------------------------------------------------------
	// 2. Seed products
	// ---------------------------------------------------------------
	productRepo := postgres.NewProductRepository(pool)
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	for _, p := range demoProducts(opts.Products, rng) {
		if err := productRepo.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product %q: %w", p.Name, err)
		}
		log.Info("product seeded",
			slog.Int64("product_id", p.ID),
			slog.String("name", p.Name),
			slog.String("price", p.Price.String()),
		)
	}

	// ---------------------------------------------------------------
	// 3. Seed the demo user and issue a token
	// ---------------------------------------------------------------
	user := &domain.User{Name: opts.Name, Email: opts.Email}
	if err := postgres.NewUserRepository(pool).Upsert(ctx, user); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	log.Info("user seeded", slog.Int64("user_id", user.ID), slog.String("email", user.Email))

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenExpiry()).GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Println(token)
	return nil
}

// options are the command-line flags.
type options struct {
	Products int    `json:"products" validate:"gte=0,lte=1000"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=255"`
}

func parseOptions(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.IntVar(&opts.Products, "products", 10, "number of demo products to create")
	fs.StringVar(&opts.Email, "email", "demo@example.com", "email of the demo user")
	fs.StringVar(&opts.Name, "name", "Demo User", "name of the demo user")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if err := validator.Validate(opts); err != nil {
		return options{}, fmt.Errorf("invalid flags: %w", err)
	}
	return opts, nil
}
