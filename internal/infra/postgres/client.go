package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

type Config struct {
	Host          string
	Port          int
	User          string
	Password      string
	Name          string
	SSLMode       string
	MaintenanceDB string
}

func (c Config) dsn(dbname string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, dbname, c.SSLMode)
}

// Client executes generated statements against one PostgreSQL database at
// a time and carries the administrative operations the assistant exposes.
type Client struct {
	cfg    Config
	db     *sql.DB
	dbname string
	logger *slog.Logger
}

func Connect(cfg Config, logger *slog.Logger) (*Client, error) {
	db, err := open(cfg, cfg.Name)
	if err != nil {
		return nil, err
	}

	logger.Info("connected", "database", cfg.Name, "host", cfg.Host)

	return &Client{
		cfg:    cfg,
		db:     db,
		dbname: cfg.Name,
		logger: logger,
	}, nil
}

func open(cfg Config, dbname string) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.dsn(dbname))
	if err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &domain.DatabaseError{Err: err}
	}

	return db, nil
}

func (c *Client) Name() string {
	return c.dbname
}

func (c *Client) Close() error {
	return c.db.Close()
}

// Switch reconnects to another database on the same server. The current
// connection is kept when the new one cannot be established.
func (c *Client) Switch(_ context.Context, name string) error {
	db, err := open(c.cfg, name)
	if err != nil {
		return err
	}

	c.db.Close()
	c.db = db
	c.dbname = name

	c.logger.Info("switched database", "database", name)
	return nil
}

// Execute runs one statement. SELECTs return rendered rows; everything
// else reports the affected-row count.
func (c *Client) Execute(ctx context.Context, stmt domain.Statement) (*domain.QueryResult, error) {
	if stmt.Op == domain.OpSelect {
		return c.query(ctx, stmt.SQL)
	}

	res, err := c.db.ExecContext(ctx, stmt.SQL)
	if err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}

	affected, _ := res.RowsAffected()
	return &domain.QueryResult{RowsAffected: affected}, nil
}

func (c *Client) query(ctx context.Context, query string, args ...any) (*domain.QueryResult, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}
	defer rows.Close()

	return collectRows(rows)
}

func collectRows(rows *sql.Rows) (*domain.QueryResult, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}

	result := &domain.QueryResult{Columns: cols}

	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &domain.DatabaseError{Err: err}
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.DatabaseError{Err: err}
	}

	return result, nil
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case time.Time:
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}
