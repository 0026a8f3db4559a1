package connector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	v2 "github.com/conductorone/baton-sdk/pb/c1/connector/v2"
	"github.com/conductorone/baton-sdk/pkg/annotations"
	"github.com/conductorone/baton-sdk/pkg/connectorbuilder"
	"github.com/conductorone/baton-sql-server-import/pkg/mssqldb"
	"github.com/conductorone/baton-sql-server-import/pkg/params"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// The server-level connection is made to master; catalogued databases get their own.
const masterDatabase = "master"

// Parameters is the import configuration the connector catalogues a server with.
type Parameters interface {
	params.Parameters
	Databases() []string
	SchemaEligible(name string) bool
	ModelName(databaseName, schemaName string) string
}

var _ Parameters = (*params.SQLServer)(nil)

type Mssqldb struct {
	params                   Parameters
	client                   *mssqldb.Client
	skipUnavailableDatabases bool

	mtx       sync.Mutex
	databases map[string]*mssqldb.Client
}

// Resource model:
// Server
// |-- Databases
//    |-- Schemas (filtered by the schema allow-list)
//       |-- Tables

func (o *Mssqldb) Metadata(ctx context.Context) (*v2.ConnectorMetadata, error) {
	var annos annotations.Annotations

	serverInfo, err := o.client.GetServer(ctx)
	if err != nil {
		return nil, err
	}

	return &v2.ConnectorMetadata{
		DisplayName: fmt.Sprintf("%s (%s)", o.params.Dialect(), serverInfo.Name),
		Annotations: annos,
	}, nil
}

func (o *Mssqldb) Validate(ctx context.Context) (annotations.Annotations, error) {
	_, err := o.client.GetServer(ctx)
	if err != nil {
		return nil, err
	}

	return nil, nil
}

func (o *Mssqldb) ResourceSyncers(ctx context.Context) []connectorbuilder.ResourceSyncer {
	return []connectorbuilder.ResourceSyncer{
		newServerSyncer(ctx, o.client),
		newDatabaseSyncer(ctx, o.client, o.params),
		newSchemaSyncer(ctx, o, o.params),
		newTableSyncer(ctx, o),
	}
}

// databaseClient returns the connection for a catalogued database, opening it
// from that database's descriptor on first use.
func (o *Mssqldb) databaseClient(ctx context.Context, name string) (*mssqldb.Client, error) {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	if c, ok := o.databases[name]; ok {
		return c, nil
	}

	l := ctxzap.Extract(ctx)
	l.Debug("opening database connection", zap.String("database", name))

	d, err := o.params.Descriptor(ctx, name)
	if err != nil {
		return nil, err
	}
	c, err := mssqldb.New(ctx, d, o.skipUnavailableDatabases)
	if err != nil {
		return nil, fmt.Errorf("connecting to database %s: %w", name, err)
	}
	o.databases[name] = c

	return c, nil
}

// Close releases the server connection and every database connection.
func (o *Mssqldb) Close() error {
	o.mtx.Lock()
	defer o.mtx.Unlock()

	var errs []error
	for name, c := range o.databases {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database %s: %w", name, err))
		}
		delete(o.databases, name)
	}
	if o.client != nil {
		if err := o.client.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing server connection: %w", err))
		}
	}

	return errors.Join(errs...)
}

// newMssqldb ties the connector's connections to ctx: they are closed once ctx is done.
func newMssqldb(ctx context.Context, p Parameters, c *mssqldb.Client, skipUnavailableDatabases bool) *Mssqldb {
	o := &Mssqldb{
		params:                   p,
		client:                   c,
		skipUnavailableDatabases: skipUnavailableDatabases,
		databases:                make(map[string]*mssqldb.Client),
	}

	context.AfterFunc(ctx, func() {
		l := ctxzap.Extract(ctx)
		if err := o.Close(); err != nil {
			l.Error("error closing database connections", zap.Error(err))
		}
	})

	return o
}

func New(ctx context.Context, p Parameters, skipUnavailableDatabases bool) (*Mssqldb, error) {
	d, err := p.Descriptor(ctx, masterDatabase)
	if err != nil {
		return nil, err
	}
	c, err := mssqldb.New(ctx, d, skipUnavailableDatabases)
	if err != nil {
		return nil, err
	}
	return newMssqldb(ctx, p, c, skipUnavailableDatabases), nil
}
