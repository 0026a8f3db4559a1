package mssqldb

import (
	"fmt"
	"strconv"
)

const (
	defaultPageSize = 100
	maxPageSize     = 1000
)

// Pager carries a page token, which is the row offset of the next page.
type Pager struct {
	Token string
	Size  int
}

func (p *Pager) Parse() (int, int, error) {
	if p == nil {
		return 0, defaultPageSize, nil
	}

	var offset int
	if p.Token != "" {
		var err error
		offset, err = strconv.Atoi(p.Token)
		if err != nil {
			return 0, 0, fmt.Errorf("mssqldb: invalid page token %q: %w", p.Token, err)
		}
		if offset < 0 {
			return 0, 0, fmt.Errorf("mssqldb: invalid page token %q", p.Token)
		}
	}

	limit := p.Size
	if limit <= 0 || limit > maxPageSize {
		limit = defaultPageSize
	}

	return offset, limit, nil
}

// nextPage trims rows fetched with limit+1 and returns the token for the following page.
func nextPage[T any](rows []T, offset, limit int) ([]T, string) {
	if len(rows) <= limit {
		return rows, ""
	}
	return rows[:limit], strconv.Itoa(offset + limit)
}
