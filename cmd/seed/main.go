// Command seed creates indexes, inserts the default questions that are
// missing and optionally makes sure an approved admin exists.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mindcheck/internal/config"
	"mindcheck/internal/repository"
	"mindcheck/internal/service"
)

func main() {
	config.LoadDotEnv()

	adminEmail := flag.String("admin-email", os.Getenv("ADMIN_EMAIL"), "email of the approved admin to create")
	adminPassword := flag.String("admin-password", os.Getenv("ADMIN_PASSWORD"), "password for a newly created admin")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	mongoCfg := config.LoadMongo()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoCfg.URI))
	if err != nil {
		logger.Error("failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(mongoCfg.DB)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Error("failed to create indexes", "error", err)
		os.Exit(1)
	}

	questionSvc := service.NewQuestionService(repository.NewQuestionRepo(db), nil, logger)
	inserted, err := questionSvc.Seed(ctx)
	if err != nil {
		logger.Error("failed to seed questions", "error", err)
		os.Exit(1)
	}
	logger.Info("questions seeded", "inserted", inserted, "db", mongoCfg.DB)

	if *adminEmail == "" {
		return
	}
	adminRepo := repository.NewAdminRepo(db)
	// tokens are never issued here, so the signing secret is irrelevant
	adminSvc := service.NewAdminService(adminRepo, service.NewAuthService(adminRepo, "", 0), nil, logger)
	admin, err := adminSvc.Bootstrap(ctx, *adminEmail, *adminPassword)
	if err != nil {
		logger.Error("failed to bootstrap admin", "email", *adminEmail, "error", err)
		os.Exit(1)
	}
	logger.Info("admin ready", "id", admin.ID, "email", admin.Email, "status", admin.Status)
}
