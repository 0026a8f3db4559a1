package mssqldb

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const DatabaseType = "database"

type DbModel struct {
	ID        int64  `db:"database_id"`
	Name      string `db:"name"`
	StateDesc string `db:"state_desc"`
}

func (c *Client) ListDatabases(ctx context.Context, pager *Pager) ([]*DbModel, string, error) {
	l := ctxzap.Extract(ctx)
	l.Debug("listing databases")

	offset, limit, err := pager.Parse()
	if err != nil {
		return nil, "", err
	}
	args := []interface{}{offset, limit + 1}

	var sb strings.Builder
	_, _ = sb.WriteString(`SELECT name, database_id, state_desc FROM sys.databases
                                      ORDER BY database_id ASC 
                                      OFFSET @p1 ROWS
                                      FETCH NEXT @p2 ROWS ONLY`)

	rows, err := c.db.QueryxContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var fetched []*DbModel
	for rows.Next() {
		var dbModel DbModel
		err = rows.StructScan(&dbModel)
		if err != nil {
			return nil, "", err
		}
		fetched = append(fetched, &dbModel)
	}
	if rows.Err() != nil {
		return nil, "", rows.Err()
	}

	// Page on the unfiltered rows so skipped databases don't shift the offset.
	fetched, nextPageToken := nextPage(fetched, offset, limit)

	var ret []*DbModel
	for _, dbModel := range fetched {
		if c.skipUnavailableDatabases && dbModel.StateDesc != "ONLINE" {
			l.Info("Skipping sync of unavailable database", zap.String("name", dbModel.Name), zap.String("state", dbModel.StateDesc))
			continue
		}
		ret = append(ret, dbModel)
	}

	return ret, nextPageToken, nil
}
