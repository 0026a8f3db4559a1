package mssqldb

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const TableType = "table"

type TableModel struct {
	ID     int64  `db:"object_id"`
	Name   string `db:"name"`
	Type   string `db:"type_desc"`
	Schema string `db:"schema_name"`
}

// ListTables lists the tables in schemaName of the database the client is connected to.
func (c *Client) ListTables(ctx context.Context, pager *Pager, schemaName string) ([]*TableModel, string, error) {
	l := ctxzap.Extract(ctx)
	l.Debug("listing tables", zap.String("schema", schemaName))

	offset, limit, err := pager.Parse()
	if err != nil {
		return nil, "", err
	}
	args := []interface{}{schemaName, offset, limit + 1}

	var sb strings.Builder
	sb.WriteString(`
SELECT 
  t.object_id,
  t.name,
  t.type_desc,
  s.name AS schema_name
FROM 
  sys.tables t
  JOIN sys.schemas s ON t.schema_id = s.schema_id
WHERE 
  s.name = @p1
ORDER BY 
  t.object_id ASC OFFSET @p2 ROWS FETCH NEXT @p3 ROWS ONLY
`)

	rows, err := c.db.QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var ret []*TableModel
	for rows.Next() {
		var tableModel TableModel
		err = rows.StructScan(&tableModel)
		if err != nil {
			return nil, "", err
		}
		ret = append(ret, &tableModel)
	}
	if rows.Err() != nil {
		return nil, "", rows.Err()
	}

	ret, nextPageToken := nextPage(ret, offset, limit)

	return ret, nextPageToken, nil
}
