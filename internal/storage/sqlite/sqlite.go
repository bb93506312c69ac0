package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/slok/appbox/internal/log"
	"github.com/slok/appbox/internal/model"
	"github.com/slok/appbox/internal/storage"
	"github.com/slok/appbox/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository, opening the database file and
// applying pending migrations.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	if err := migrations.Up(ctx, db, cfg.Logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// DB returns the underlying database handle so other SQLite backed components
// (like the operations monitor) can share the same database file.
func (r *Repository) DB() *sql.DB { return r.db }

// CreateContainer creates a new container record.
func (r *Repository) CreateContainer(ctx context.Context, c model.Container) error {
	query := `INSERT INTO containers (id, name, image, created_at) VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Image, c.CreatedAt.Unix())
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("container with name %s: %w", c.Name, model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert container: %w", err)
	}

	r.logger.Debugf("Created container in repository: %s", c.Name)
	return nil
}

// GetContainerByName retrieves a container by name.
func (r *Repository) GetContainerByName(ctx context.Context, name string) (*model.Container, error) {
	query := `SELECT id, name, image, created_at FROM containers WHERE name = ?`

	var c model.Container
	var createdAt int64

	err := r.db.QueryRowContext(ctx, query, name).Scan(&c.ID, &c.Name, &c.Image, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("container %s: %w", name, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query container: %w", err)
	}

	c.CreatedAt = time.Unix(createdAt, 0).UTC()
	return &c, nil
}

// ContainerExists returns true when a container with the given name exists.
func (r *Repository) ContainerExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT COUNT(*) FROM containers WHERE name = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("could not query container: %w", err)
	}

	return count > 0, nil
}

// ListContainers returns all containers ordered by name.
func (r *Repository) ListContainers(ctx context.Context) ([]model.Container, error) {
	query := `SELECT id, name, image, created_at FROM containers ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query containers: %w", err)
	}
	defer rows.Close()

	containers := []model.Container{}
	for rows.Next() {
		var c model.Container
		var createdAt int64
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan container: %w", err)
		}
		c.CreatedAt = time.Unix(createdAt, 0).UTC()
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate containers: %w", err)
	}

	return containers, nil
}

// DeleteContainer deletes a container record.
func (r *Repository) DeleteContainer(ctx context.Context, name string) error {
	query := `DELETE FROM containers WHERE name = ?`

	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("could not delete container: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("container %s: %w", name, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted container from repository: %s", name)
	return nil
}

func isUniqueConstraintError(err error) bool {
	// modernc.org/sqlite reports SQLITE_CONSTRAINT_UNIQUE through the error
	// message, there is no exported sentinel to match on.
	return err != nil && strings.Contains(err.Error(), "constraint failed")
}

var _ storage.Repository = &Repository{}
