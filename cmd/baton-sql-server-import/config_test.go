package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conductorone/baton-sql-server-import/pkg/params"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProperties = `import.database.host=file-host
import.database.port=2433
import.database.username=jdoe
import.database.password=secret
import.database.ssl=true
import.database.schemas=dbo,sales
import.database.jtds.useNtlmv2=TRUE
import.database.jtds.domain=CORP
`

func writeProperties(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "import.properties")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadParameters_PropertiesFile(t *testing.T) {
	v := viper.New()
	v.Set(propertiesFile.FieldName, writeProperties(t, sampleProperties))

	p, err := loadParameters(v)
	require.NoError(t, err)

	assert.Equal(t, "file-host", p.Host)
	assert.Equal(t, 2433, p.Port)
	assert.True(t, p.UseNTLMv2())
	domain, ok := p.Domain()
	assert.True(t, ok)
	assert.Equal(t, "CORP", domain)
	assert.Equal(t, []string{"dbo", "sales"}, p.SchemaAllowList())
}

func TestLoadParameters_FlagsOverrideFile(t *testing.T) {
	v := viper.New()
	v.Set(propertiesFile.FieldName, writeProperties(t, sampleProperties))
	v.Set(params.FlagHost, "flag-host")
	v.Set(params.FlagServerInstance, "INST1")
	v.Set(params.FlagImportSchemasAsSeparateModels, true)
	v.Set(params.FlagDriver, "alternate")

	p, err := loadParameters(v)
	require.NoError(t, err)

	assert.Equal(t, "flag-host", p.Host)
	assert.Equal(t, 2433, p.Port)
	assert.Equal(t, "INST1", p.ServerInstance())
	assert.True(t, p.ImportSchemasAsSeparateModels())
	assert.Equal(t, params.DriverAlternate, p.Driver())
}

func TestLoadParameters_FalseFlagOverridesFile(t *testing.T) {
	v := viper.New()
	v.Set(propertiesFile.FieldName, writeProperties(t, sampleProperties))

	p, err := loadParameters(v)
	require.NoError(t, err)
	require.True(t, p.UseNTLMv2())
	require.True(t, p.SSL)

	v.Set(params.FlagUseNTLMv2, false)
	v.Set(params.FlagSSL, false)
	v.Set(params.FlagImportSchemasAsSeparateModels, false)

	p, err = loadParameters(v)
	require.NoError(t, err)
	assert.False(t, p.UseNTLMv2())
	assert.False(t, p.SSL)
	assert.False(t, p.ImportSchemasAsSeparateModels())
}

func TestLoadParameters_FlagsOnly(t *testing.T) {
	v := viper.New()
	v.Set(params.FlagHost, "flag-host")
	v.Set(params.FlagUseNTLMv2, true)

	p, err := loadParameters(v)
	require.NoError(t, err)
	assert.Equal(t, 1433, p.PortOr(p.DefaultPort()))
	assert.True(t, p.UseNTLMv2())
	_, ok := p.Domain()
	assert.False(t, ok)
}

func TestLoadParameters_Errors(t *testing.T) {
	_, err := loadParameters(viper.New())
	require.Error(t, err)

	v := viper.New()
	v.Set(propertiesFile.FieldName, filepath.Join(t.TempDir(), "missing.properties"))
	_, err = loadParameters(v)
	require.Error(t, err)

	v = viper.New()
	v.Set(params.FlagHost, "h")
	v.Set(params.FlagPort, "not-a-port")
	_, err = loadParameters(v)
	var cfgErr *params.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, params.KeyPort, cfgErr.Key)
}

func TestConfigurationFields(t *testing.T) {
	fields := configurationFields()
	assert.Len(t, fields, len(params.SQLServerFields())+2)

	names := map[string]bool{}
	for _, f := range fields {
		names[f.FieldName] = true
	}
	assert.True(t, names[params.FlagUseNTLMv2])
	assert.True(t, names[params.FlagSchemaNames])
	assert.True(t, names[params.FlagDomain])
}
