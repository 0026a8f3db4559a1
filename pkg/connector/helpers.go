package connector

import (
	"fmt"
	"net/url"
	"strings"
)

// schemaResourceID identifies a schema within its database.
func schemaResourceID(dbName, schemaName string) string {
	return url.PathEscape(dbName) + "/" + url.PathEscape(schemaName)
}

func parseSchemaResourceID(id string) (string, string, error) {
	dbPart, schemaPart, ok := strings.Cut(id, "/")
	if !ok {
		return "", "", fmt.Errorf("invalid schema resource id: %s", id)
	}

	dbName, err := url.PathUnescape(dbPart)
	if err != nil {
		return "", "", fmt.Errorf("invalid schema resource id %s: %w", id, err)
	}
	schemaName, err := url.PathUnescape(schemaPart)
	if err != nil {
		return "", "", fmt.Errorf("invalid schema resource id %s: %w", id, err)
	}
	if dbName == "" || schemaName == "" {
		return "", "", fmt.Errorf("invalid schema resource id: %s", id)
	}

	return dbName, schemaName, nil
}
