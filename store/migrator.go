package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
)

//go:embed migration
var migrationFS embed.FS

//go:embed seed
var seedFS embed.FS

const (
	// LatestSchemaFileName holds the full schema applied to fresh installations.
	LatestSchemaFileName = "LATEST.sql"
	// SeedFileName holds the demo dataset loaded in demo mode.
	SeedFileName = "resources.json"

	modeDemo = "demo"
)

// Migrate brings the database up to the current schema. Fresh installations
// get the full schema from LATEST.sql; demo mode additionally seeds the
// database with a sample dataset.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.preMigrate(ctx); err != nil {
		return errors.Wrap(err, "failed to pre-migrate")
	}

	if s.profile.Mode == modeDemo {
		if err := s.seed(ctx); err != nil {
			return errors.Wrap(err, "failed to seed")
		}
	}
	return nil
}

// preMigrate checks if the database is initialized and applies the latest schema if not.
func (s *Store) preMigrate(ctx context.Context) error {
	initialized, err := s.driver.IsInitialized(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check if database is initialized")
	}
	if initialized {
		return nil
	}

	filePath := s.getMigrationBasePath() + LatestSchemaFileName
	bytes, err := migrationFS.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %s", filePath)
	}

	tx, err := s.driver.GetDB().Begin()
	if err != nil {
		return errors.Wrap(err, "failed to start transaction")
	}
	defer tx.Rollback()

	slog.Info("initializing new database with latest schema", slog.String("file", filePath))
	if err := s.execute(ctx, tx, string(bytes)); err != nil {
		return errors.Wrapf(err, "failed to execute SQL file %s", filePath)
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}

	slog.Info("database initialized successfully")
	return nil
}

func (s *Store) getMigrationBasePath() string {
	return fmt.Sprintf("migration/%s/", s.profile.Driver)
}

// seed loads the demo dataset. It is a no-op when the database already
// contains resources, so restarting a demo instance keeps its data.
func (s *Store) seed(ctx context.Context) error {
	existing, err := s.ListResources(ctx, &FindResource{})
	if err != nil {
		return errors.Wrap(err, "failed to list resources")
	}
	if len(existing) > 0 {
		return nil
	}

	bytes, err := seedFS.ReadFile("seed/" + SeedFileName)
	if err != nil {
		return errors.Wrap(err, "failed to read seed file")
	}

	var seeds []*Resource
	if err := json.Unmarshal(bytes, &seeds); err != nil {
		return errors.Wrap(err, "failed to unmarshal seed file")
	}

	for _, resource := range seeds {
		if resource.UID == "" {
			resource.UID = shortuuid.New()
		}
		if _, err := s.CreateResource(ctx, resource); err != nil {
			return errors.Wrapf(err, "failed to seed resource %q", resource.Name)
		}
	}

	slog.Info("seeded demo dataset", slog.Int("resources", len(seeds)))
	return nil
}

// execute runs a multi-statement SQL script within the given transaction.
func (*Store) execute(ctx context.Context, tx *sql.Tx, stmt string) error {
	if _, err := tx.ExecContext(ctx, stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return nil
}
