package connector

import (
	"context"
	"fmt"

	"github.com/conductorone/baton-sql-server-import/pkg/mssqldb"
	v2 "github.com/conductorone/baton-sdk/pb/c1/connector/v2"
	"github.com/conductorone/baton-sdk/pkg/annotations"
	"github.com/conductorone/baton-sdk/pkg/pagination"
	"github.com/conductorone/baton-sdk/pkg/types/resource"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

type schemaSyncer struct {
	resourceType *v2.ResourceType
	connector    *Mssqldb
	params       Parameters
}

func (d *schemaSyncer) ResourceType(ctx context.Context) *v2.ResourceType {
	return d.resourceType
}

func (d *schemaSyncer) List(ctx context.Context, parentResourceID *v2.ResourceId, pToken *pagination.Token) ([]*v2.Resource, string, annotations.Annotations, error) {
	if parentResourceID == nil {
		return nil, "", nil, nil
	}

	if parentResourceID.ResourceType != mssqldb.DatabaseType {
		return nil, "", nil, fmt.Errorf("schemas must have a database parent resource")
	}
	dbName := parentResourceID.Resource

	client, err := d.connector.databaseClient(ctx, dbName)
	if err != nil {
		return nil, "", nil, err
	}

	schemas, nextPageToken, err := client.ListSchemas(ctx, &mssqldb.Pager{Token: pToken.Token, Size: pToken.Size})
	if err != nil {
		return nil, "", nil, err
	}

	l := ctxzap.Extract(ctx)

	var ret []*v2.Resource
	for _, schemaModel := range schemas {
		if !d.params.SchemaEligible(schemaModel.Name) {
			l.Debug("skipping schema", zap.String("database", dbName), zap.String("schema", schemaModel.Name))
			continue
		}

		r, err := resource.NewResource(
			schemaDisplayName(d.params, dbName, schemaModel.Name),
			d.ResourceType(ctx),
			schemaResourceID(dbName, schemaModel.Name),
			resource.WithParentResourceID(parentResourceID),
			resource.WithAnnotation(&v2.ChildResourceType{ResourceTypeId: resourceTypeTable.Id}),
		)
		if err != nil {
			return nil, "", nil, err
		}
		ret = append(ret, r)
	}

	return ret, nextPageToken, nil, nil
}

// schemaDisplayName names a schema after the model it is imported into.
func schemaDisplayName(p Parameters, dbName, schemaName string) string {
	model := p.ModelName(dbName, schemaName)
	if model == schemaName {
		return schemaName
	}
	return fmt.Sprintf("%s (%s)", schemaName, model)
}

func (d *schemaSyncer) Entitlements(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Entitlement, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func (d *schemaSyncer) Grants(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Grant, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func newSchemaSyncer(ctx context.Context, o *Mssqldb, p Parameters) *schemaSyncer {
	return &schemaSyncer{
		resourceType: resourceTypeSchema,
		connector:    o,
		params:       p,
	}
}
