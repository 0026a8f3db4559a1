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

type databaseSyncer struct {
	resourceType *v2.ResourceType
	client       *mssqldb.Client
	params       Parameters
}

func (d *databaseSyncer) ResourceType(ctx context.Context) *v2.ResourceType {
	return d.resourceType
}

// List returns the configured databases, or every database on the server when none are configured.
func (d *databaseSyncer) List(ctx context.Context, parentResourceID *v2.ResourceId, pToken *pagination.Token) ([]*v2.Resource, string, annotations.Annotations, error) {
	if parentResourceID == nil {
		return nil, "", nil, nil
	}

	if parentResourceID.ResourceType != resourceTypeServer.Id {
		return nil, "", nil, fmt.Errorf("databases must have a server parent resource")
	}

	if names := d.params.Databases(); len(names) > 0 {
		l := ctxzap.Extract(ctx)
		l.Debug("using configured databases", zap.Strings("databases", names))

		var ret []*v2.Resource
		for _, name := range names {
			r, err := d.newDatabaseResource(ctx, name, parentResourceID)
			if err != nil {
				return nil, "", nil, err
			}
			ret = append(ret, r)
		}
		return ret, "", nil, nil
	}

	databases, nextPageToken, err := d.client.ListDatabases(ctx, &mssqldb.Pager{Token: pToken.Token, Size: pToken.Size})
	if err != nil {
		return nil, "", nil, err
	}

	var ret []*v2.Resource
	for _, dbModel := range databases {
		r, err := d.newDatabaseResource(ctx, dbModel.Name, parentResourceID)
		if err != nil {
			return nil, "", nil, err
		}
		ret = append(ret, r)
	}

	return ret, nextPageToken, nil, nil
}

func (d *databaseSyncer) newDatabaseResource(ctx context.Context, name string, parentResourceID *v2.ResourceId) (*v2.Resource, error) {
	return resource.NewResource(
		name,
		d.ResourceType(ctx),
		name,
		resource.WithParentResourceID(parentResourceID),
		resource.WithAnnotation(&v2.ChildResourceType{ResourceTypeId: resourceTypeSchema.Id}),
	)
}

func (d *databaseSyncer) Entitlements(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Entitlement, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func (d *databaseSyncer) Grants(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Grant, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func newDatabaseSyncer(ctx context.Context, c *mssqldb.Client, p Parameters) *databaseSyncer {
	return &databaseSyncer{
		resourceType: resourceTypeDatabase,
		client:       c,
		params:       p,
	}
}
