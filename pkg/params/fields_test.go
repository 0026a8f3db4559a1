package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroups(t *testing.T) {
	groups := Groups(SQLServerFields())
	require.Len(t, groups, 2)

	assert.Equal(t, GroupConnection, groups[0].Name)
	assert.Equal(t, GroupImport, groups[1].Name)

	var connection []string
	for _, f := range groups[0].Fields {
		connection = append(connection, f.Flag)
	}
	assert.Equal(t, []string{
		FlagHost,
		FlagDomain,
		FlagUseNTLMv2,
		FlagPort,
		FlagServerInstance,
		FlagUsername,
		FlagPassword,
		FlagSSL,
		FlagDriver,
	}, connection)

	var imports []string
	for _, f := range groups[1].Fields {
		imports = append(imports, f.Flag)
	}
	assert.Equal(t, []string{FlagDatabaseNames, FlagSchemaNames, FlagImportSchemasAsSeparateModels}, imports)
}

func TestSQLServerFields(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range SQLServerFields() {
		assert.NotEmpty(t, f.DisplayName, f.Flag)
		assert.NotEmpty(t, f.Description, f.Flag)
		assert.False(t, seen[f.Flag], "duplicate flag %s", f.Flag)
		seen[f.Flag] = true
	}

	// Every SQL Server specific field is optional.
	for _, f := range sqlServerFields {
		assert.True(t, f.Optional, f.Flag)
	}
}
