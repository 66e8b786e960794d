package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cloud.google.com/go/spanner"
	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/perfume-catalog/internal/app/product/imagepath"
	"github.com/light-bringer/perfume-catalog/internal/app/product/repo"
	"github.com/light-bringer/perfume-catalog/internal/pkg/clock"
)

var (
	projectID  = flag.String("project", getEnvOrDefault("SPANNER_PROJECT_ID", "test-project"), "GCP project ID")
	instanceID = flag.String("instance", getEnvOrDefault("SPANNER_INSTANCE_ID", "dev-instance"), "Spanner instance ID")
	databaseID = flag.String("database", getEnvOrDefault("SPANNER_DATABASE_ID", "perfume-catalog-db"), "Spanner database ID")
	migrateDir = flag.String("migrations", "migrations", "Directory containing migration SQL files")
	bucket     = flag.String("bucket", getEnvOrDefault("STORAGE_BUCKET", imagepath.DefaultBucket), "Image bucket to register after migrating")
)

type migrator struct {
	logger *zap.Logger
}

func main() {
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		logger.Info("using Spanner emulator", zap.String("host", host))
	}

	m := &migrator{logger: logger}
	if err := m.run(context.Background()); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	logger.Info("migrations completed")
}

func (m *migrator) run(ctx context.Context) error {
	if err := m.ensureInstance(ctx); err != nil {
		return fmt.Errorf("failed to ensure instance: %w", err)
	}

	if err := m.ensureDatabase(ctx); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}

	if err := m.applyMigrations(ctx); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	if err := m.ensureBucket(ctx); err != nil {
		return fmt.Errorf("failed to ensure bucket: %w", err)
	}

	return nil
}

func (m *migrator) ensureInstance(ctx context.Context) error {
	m.logger.Info("ensuring instance", zap.String("instance", *instanceID))

	instanceAdmin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer instanceAdmin.Close()

	_, err = instanceAdmin.GetInstance(ctx, &instancepb.GetInstanceRequest{
		Name: instancePath(),
	})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		m.logger.Warn("unexpected error checking instance", zap.Error(err))
		return nil
	}

	m.logger.Info("creating instance")
	op, err := instanceAdmin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     "projects/" + *projectID,
		InstanceId: *instanceID,
		Instance: &instancepb.Instance{
			Config:      fmt.Sprintf("projects/%s/instanceConfigs/emulator-config", *projectID),
			DisplayName: "Perfume Catalog",
			NodeCount:   1,
		},
	})
	if err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		return nil
	}

	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		m.logger.Warn("instance creation did not finish cleanly", zap.Error(err))
	}
	return nil
}

func (m *migrator) ensureDatabase(ctx context.Context) error {
	m.logger.Info("ensuring database", zap.String("database", *databaseID))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	_, err = adminClient.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: databasePath()})
	if err == nil {
		return nil
	}

	if status.Code(err) == codes.NotFound {
		m.logger.Info("creating database")
		op, err := adminClient.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
			Parent:          instancePath(),
			CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", *databaseID),
		})
		if err != nil {
			if status.Code(err) != codes.AlreadyExists {
				return fmt.Errorf("failed to create database: %w", err)
			}
			return nil
		}

		if _, err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to wait for database creation: %w", err)
		}
		return nil
	}

	if os.Getenv("SPANNER_EMULATOR_HOST") != "" {
		m.logger.Warn("proceeding with database in emulator mode", zap.Error(err))
		return nil
	}

	return fmt.Errorf("failed to check database: %w", err)
}

// applyMigrations runs every *.sql file in name order, skipping statements
// whose table or index already exists so the command can be rerun.
func (m *migrator) applyMigrations(ctx context.Context) error {
	m.logger.Info("applying migrations", zap.String("dir", *migrateDir))

	adminClient, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create admin client: %w", err)
	}
	defer adminClient.Close()

	files, err := filepath.Glob(filepath.Join(*migrateDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}
	if len(files) == 0 {
		m.logger.Warn("no migration files found")
		return nil
	}

	current, err := adminClient.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: databasePath()})
	if err != nil {
		return fmt.Errorf("failed to read current schema: %w", err)
	}
	existing := existingObjects(current.GetStatements())

	for _, file := range files {
		name := filepath.Base(file)

		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			m.logger.Info("migration already applied", zap.String("file", name))
			continue
		}

		op, err := adminClient.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   databasePath(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply DDL for %s: %w", name, err)
		}

		for _, stmt := range statements {
			if obj := ddlObjectName(stmt); obj != "" {
				existing[obj] = true
			}
		}
		m.logger.Info("applied migration", zap.String("file", name), zap.Int("statements", len(statements)))
	}

	return nil
}

// ensureBucket registers the public image bucket the storefront uploads to.
func (m *migrator) ensureBucket(ctx context.Context) error {
	client, err := spanner.NewClient(ctx, databasePath())
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	gw := repo.NewSpannerGateway(client, "", true, clock.NewRealClock())
	if err := gw.EnsureBucket(ctx, *bucket, true); err != nil {
		return err
	}
	m.logger.Info("bucket ready", zap.String("bucket", *bucket))
	return nil
}

func instancePath() string {
	return fmt.Sprintf("projects/%s/instances/%s", *projectID, *instanceID)
}

func databasePath() string {
	return fmt.Sprintf("%s/databases/%s", instancePath(), *databaseID)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
