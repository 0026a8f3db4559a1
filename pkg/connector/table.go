package connector

import (
	"context"
	"fmt"

	"github.com/conductorone/baton-sql-server-import/pkg/mssqldb"
	v2 "github.com/conductorone/baton-sdk/pb/c1/connector/v2"
	"github.com/conductorone/baton-sdk/pkg/annotations"
	"github.com/conductorone/baton-sdk/pkg/pagination"
	"github.com/conductorone/baton-sdk/pkg/types/resource"
)

type tableSyncer struct {
	resourceType *v2.ResourceType
	connector    *Mssqldb
}

func (d *tableSyncer) ResourceType(ctx context.Context) *v2.ResourceType {
	return d.resourceType
}

func (d *tableSyncer) List(ctx context.Context, parentResourceID *v2.ResourceId, pToken *pagination.Token) ([]*v2.Resource, string, annotations.Annotations, error) {
	if parentResourceID == nil {
		return nil, "", nil, nil
	}

	if parentResourceID.ResourceType != mssqldb.SchemaType {
		return nil, "", nil, fmt.Errorf("tables must have a schema parent resource")
	}

	dbName, schemaName, err := parseSchemaResourceID(parentResourceID.Resource)
	if err != nil {
		return nil, "", nil, err
	}

	client, err := d.connector.databaseClient(ctx, dbName)
	if err != nil {
		return nil, "", nil, err
	}

	tables, nextPageToken, err := client.ListTables(ctx, &mssqldb.Pager{Token: pToken.Token, Size: pToken.Size}, schemaName)
	if err != nil {
		return nil, "", nil, err
	}

	var ret []*v2.Resource
	for _, tableModel := range tables {
		r, err := resource.NewResource(
			fmt.Sprintf("%s.%s", tableModel.Schema, tableModel.Name),
			d.ResourceType(ctx),
			fmt.Sprintf("%s:%d", dbName, tableModel.ID),
			resource.WithParentResourceID(parentResourceID),
		)
		if err != nil {
			return nil, "", nil, err
		}
		ret = append(ret, r)
	}

	return ret, nextPageToken, nil, nil
}

func (d *tableSyncer) Entitlements(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Entitlement, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func (d *tableSyncer) Grants(ctx context.Context, resource *v2.Resource, pToken *pagination.Token) ([]*v2.Grant, string, annotations.Annotations, error) {
	return nil, "", nil, nil
}

func newTableSyncer(ctx context.Context, o *Mssqldb) *tableSyncer {
	return &tableSyncer{
		resourceType: resourceTypeTable,
		connector:    o,
	}
}
