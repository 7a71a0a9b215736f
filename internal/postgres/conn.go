package postgres

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
)

// PasswordEnv holds the PostgreSQL password. It is never read from config files.
const PasswordEnv = "CLUSTERCTL_PG_PASSWORD"

// Config holds PostgreSQL connection parameters. There is no Password field;
// see PasswordEnv.
type Config struct {
	Host     string
	Port     int
	User     string
	Database string
	SSLMode  string
}

// DSN returns a libpq-style connection string with the supplied password.
func (c Config) DSN(password string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, password, c.Database, c.SSLMode,
	)
}

// Password reads the PostgreSQL password from PasswordEnv.
func Password() string {
	return os.Getenv(PasswordEnv)
}

// Connect opens a new PostgreSQL connection.
func Connect(ctx context.Context, cfg Config) (*pgx.Conn, error) {
	conn, err := pgx.Connect(ctx, cfg.DSN(Password()))
	if err != nil {
		return nil, fmt.Errorf("connect to postgres %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return conn, nil
}

// Pinger is satisfied by *pgx.Conn.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping verifies that an existing connection is still alive.
func Ping(ctx context.Context, conn Pinger) error {
	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}
