package mssqldb

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type rawDSN string

func (d rawDSN) DriverName() string       { return "sqlserver" }
func (d rawDSN) ConnectionString() string { return string(d) }

func TestClient_ListCatalogue(t *testing.T) {
	dsn := os.Getenv("BATON_DSN")
	if dsn == "" {
		t.Skip("requires a running SQL Server instance")
	}
	ctx := context.Background()

	c, err := New(ctx, rawDSN(dsn), true)
	require.NoError(t, err)
	defer c.Close()

	server, err := c.GetServer(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, server.Name)

	dbs, _, err := c.ListDatabases(ctx, &Pager{Size: 10})
	require.NoError(t, err)
	require.NotEmpty(t, dbs)

	schemas, _, err := c.ListSchemas(ctx, &Pager{})
	require.NoError(t, err)
	require.NotEmpty(t, schemas)

	_, _, err = c.ListTables(ctx, &Pager{}, "dbo")
	require.NoError(t, err)
}

func TestClient_Close(t *testing.T) {
	db, err := sqlx.Open("sqlserver", "sqlserver://localhost:1433?database=master")
	require.NoError(t, err)

	c := NewWithDB(db, false)
	require.NoError(t, c.Close())

	_, err = c.GetServer(context.Background())
	require.Error(t, err)
}
