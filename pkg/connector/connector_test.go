package connector

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/conductorone/baton-sql-server-import/pkg/mssqldb"
	"github.com/conductorone/baton-sql-server-import/pkg/params"
	v2 "github.com/conductorone/baton-sdk/pb/c1/connector/v2"
	"github.com/conductorone/baton-sdk/pkg/pagination"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaResourceID(t *testing.T) {
	tests := []struct {
		db     string
		schema string
	}{
		{db: "Sales", schema: "dbo"},
		{db: "my/db", schema: "odd/schema"},
		{db: "a b", schema: "c%d"},
	}

	for _, tt := range tests {
		id := schemaResourceID(tt.db, tt.schema)
		db, schema, err := parseSchemaResourceID(id)
		require.NoError(t, err)
		assert.Equal(t, tt.db, db)
		assert.Equal(t, tt.schema, schema)
	}

	for _, bad := range []string{"", "nodelimiter", "/dbo", "Sales/", "%zz/dbo"} {
		_, _, err := parseSchemaResourceID(bad)
		assert.Error(t, err, bad)
	}
}

func TestSchemaDisplayName(t *testing.T) {
	p := params.NewSQLServer()
	assert.Equal(t, "dbo (Sales)", schemaDisplayName(p, "Sales", "dbo"))

	p.SetImportSchemasAsSeparateModels(true)
	assert.Equal(t, "dbo", schemaDisplayName(p, "Sales", "dbo"))
}

func TestDatabaseSyncer_ConfiguredDatabases(t *testing.T) {
	ctx := context.Background()
	p := params.NewSQLServer()
	require.NoError(t, p.PopulateFrom(params.Properties{
		params.KeyHost:          "db.example.com",
		params.KeyDatabaseNames: "Sales,HR",
	}))

	s := newDatabaseSyncer(ctx, nil, p)
	parent := &v2.ResourceId{ResourceType: resourceTypeServer.Id, Resource: "SQL01"}

	resources, token, _, err := s.List(ctx, parent, &pagination.Token{})
	require.NoError(t, err)
	assert.Empty(t, token)
	require.Len(t, resources, 2)
	assert.Equal(t, "Sales", resources[0].DisplayName)
	assert.Equal(t, "Sales", resources[0].Id.Resource)
	assert.Equal(t, resourceTypeDatabase.Id, resources[0].Id.ResourceType)
	assert.Equal(t, "HR", resources[1].DisplayName)
}

func TestSyncers_RejectWrongParent(t *testing.T) {
	ctx := context.Background()
	p := params.NewSQLServer()
	o := &Mssqldb{params: p}
	wrong := &v2.ResourceId{ResourceType: "user", Resource: "1"}

	_, _, _, err := newDatabaseSyncer(ctx, nil, p).List(ctx, wrong, &pagination.Token{})
	assert.Error(t, err)
	_, _, _, err = newSchemaSyncer(ctx, o, p).List(ctx, wrong, &pagination.Token{})
	assert.Error(t, err)
	_, _, _, err = newTableSyncer(ctx, o).List(ctx, wrong, &pagination.Token{})
	assert.Error(t, err)

	res, _, _, err := newSchemaSyncer(ctx, o, p).List(ctx, nil, &pagination.Token{})
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestConnector_Sync(t *testing.T) {
	host := os.Getenv("BATON_DATABASE_HOST")
	if host == "" {
		t.Skip("requires a running SQL Server instance")
	}
	ctx := context.Background()

	p := params.NewSQLServer()
	require.NoError(t, p.PopulateFrom(params.Properties{
		params.KeyHost:          host,
		params.KeyUsername:      os.Getenv("BATON_DATABASE_USERNAME"),
		params.KeyPassword:      os.Getenv("BATON_DATABASE_PASSWORD"),
		params.KeyDatabaseNames: "master",
	}))

	c, err := New(ctx, p, true)
	require.NoError(t, err)

	_, err = c.Validate(ctx)
	require.NoError(t, err)

	db := &v2.ResourceId{ResourceType: resourceTypeDatabase.Id, Resource: "master"}
	schemas, _, _, err := newSchemaSyncer(ctx, c, p).List(ctx, db, &pagination.Token{})
	require.NoError(t, err)
	for _, s := range schemas {
		assert.NotEqual(t, "sys (master)", s.DisplayName)
	}
}

// unconnectedClient returns a client whose handle is opened lazily, so no server is needed.
func unconnectedClient(t *testing.T, dbName string) *mssqldb.Client {
	t.Helper()
	db, err := sqlx.Open("sqlserver", "sqlserver://localhost:1433?database="+dbName)
	require.NoError(t, err)
	return mssqldb.NewWithDB(db, false)
}

func TestConnector_Close(t *testing.T) {
	ctx := context.Background()
	master := unconnectedClient(t, "master")
	sales := unconnectedClient(t, "Sales")

	o := newMssqldb(ctx, params.NewSQLServer(), master, false)
	o.databases["Sales"] = sales

	require.NoError(t, o.Close())
	assert.Empty(t, o.databases)

	_, err := master.GetServer(ctx)
	assert.Error(t, err)
	_, err = sales.GetServer(ctx)
	assert.Error(t, err)
}

func TestConnector_ClosedWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	master := unconnectedClient(t, "master")

	o := newMssqldb(ctx, params.NewSQLServer(), master, false)
	o.databases["Sales"] = unconnectedClient(t, "Sales")

	cancel()

	require.Eventually(t, func() bool {
		o.mtx.Lock()
		defer o.mtx.Unlock()
		return len(o.databases) == 0
	}, time.Second, 10*time.Millisecond)

	_, err := master.GetServer(context.Background())
	assert.Error(t, err)
}
