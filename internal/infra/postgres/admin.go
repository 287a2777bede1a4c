package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"github.com/dhavalgirsawale/SQL-Assistant/internal/domain"
)

// CreateDatabase creates a database through a short-lived connection to
// the maintenance database. CREATE DATABASE cannot run inside a
// transaction, which plain Exec satisfies.
func (c *Client) CreateDatabase(ctx context.Context, name string) error {
	return c.maintenanceExec(ctx, fmt.Sprintf("CREATE DATABASE %s", pq.QuoteIdentifier(name)))
}

func (c *Client) DropDatabase(ctx context.Context, name string) error {
	return c.maintenanceExec(ctx, fmt.Sprintf("DROP DATABASE IF EXISTS %s", pq.QuoteIdentifier(name)))
}

func (c *Client) maintenanceExec(ctx context.Context, stmt string) error {
	db, err := open(c.cfg, c.cfg.MaintenanceDB)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return &domain.DatabaseError{Err: err}
	}

	c.logger.Info("maintenance statement executed", "sql", stmt)
	return nil
}
