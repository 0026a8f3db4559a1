package mssqldb

import (
	"context"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/jmoiron/sqlx"
	_ "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"
)

// Descriptor names a database/sql driver and the connection string to open it with.
type Descriptor interface {
	DriverName() string
	ConnectionString() string
}

type Client struct {
	db                       *sqlx.DB
	skipUnavailableDatabases bool
}

func New(ctx context.Context, d Descriptor, skipUnavailableDatabases bool) (*Client, error) {
	l := ctxzap.Extract(ctx)
	l.Debug("connecting", zap.String("driver", d.DriverName()))

	db, err := sqlx.ConnectContext(ctx, d.DriverName(), d.ConnectionString())
	if err != nil {
		return nil, err
	}

	return NewWithDB(db, skipUnavailableDatabases), nil
}

// NewWithDB wraps an already opened database handle.
func NewWithDB(db *sqlx.DB, skipUnavailableDatabases bool) *Client {
	db.SetConnMaxLifetime(time.Minute * 1)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &Client{
		db:                       db,
		skipUnavailableDatabases: skipUnavailableDatabases,
	}
}

func (c *Client) Close() error {
	return c.db.Close()
}
