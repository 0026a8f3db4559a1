package mssqldb

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

const SchemaType = "schema"

type SchemaModel struct {
	ID      int64  `db:"schema_id"`
	OwnerID int64  `db:"principal_id"`
	Name    string `db:"name"`
}

// ListSchemas lists the schemas of the database the client is connected to.
func (c *Client) ListSchemas(ctx context.Context, pager *Pager) ([]*SchemaModel, string, error) {
	l := ctxzap.Extract(ctx)
	l.Debug("listing schemas")

	offset, limit, err := pager.Parse()
	if err != nil {
		return nil, "", err
	}
	args := []interface{}{offset, limit + 1}

	query := `SELECT schema_id, principal_id, name FROM sys.schemas ORDER BY schema_id ASC OFFSET @p1 ROWS FETCH NEXT @p2 ROWS ONLY`

	rows, err := c.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var ret []*SchemaModel
	for rows.Next() {
		var schemaModel SchemaModel
		err = rows.StructScan(&schemaModel)
		if err != nil {
			return nil, "", err
		}
		ret = append(ret, &schemaModel)
	}
	if rows.Err() != nil {
		return nil, "", rows.Err()
	}

	ret, nextPageToken := nextPage(ret, offset, limit)

	return ret, nextPageToken, nil
}
