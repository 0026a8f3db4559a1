package connector

import (
	"context"

	"github.com/conductorone/baton-sql-server-import/pkg/mssqldb"
	v2 "github.com/conductorone/baton-sdk/pb/c1/connector/v2"
	"github.com/conductorone/baton-sdk/pkg/annotations"
	"github.com/conductorone/baton-sdk/pkg/pagination"
	"github.com/conductorone/baton-sdk/pkg/types/resource"
)

type serverSyncer struct {
	resourceType *v2.ResourceType
	client       *mssqldb.Client
}

func (d *serverSyncer) ResourceType(ctx context.Context) *v2.ResourceType {
	return d.resourceType
}

func (d *serverSyncer) List(ctx context.Context, parentResourceID *v2.ResourceId, pToken *pagination.Token) ([]*v2.Resource, string, annotations.Annotations, error) {
	if parentResourceID != nil {
		return nil, "", nil, nil
	}

	server, err := d.client.GetServer(ctx)
	if err != nil {
		return nil, "", nil, err
	}

	r, err := resource.NewResource(
		server.Name,
		d.ResourceType(ctx),
		server.Name,
		resource.WithAnnotation(&v2.ChildResourceType{ResourceTypeId: resourceTypeDatabase.Id}),
	)
	if err != nil {
		return nil, "", nil, err
	}

	return []*v2.Resource{r}, "", nil, nil
}

func (d *serverSyncer) Entitlements(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Entitlement, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func (d *serverSyncer) Grants(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Grant, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func newServerSyncer(ctx context.Context, c *mssqldb.Client) *serverSyncer {
	return &serverSyncer{
		resourceType: resourceTypeServer,
		client:       c,
	}
}
