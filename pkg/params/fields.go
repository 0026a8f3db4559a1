package params

import (
	"cmp"
	"slices"
)

// Group is a section of the import configuration form.
type Group struct {
	Name   string
	Order  int
	Fields []Field
}

// Field describes how a parameter is presented to a user.
// Key is empty for fields that are only settable directly, not from properties.
type Field struct {
	Key         string
	Flag        string
	DisplayName string
	Description string
	Optional    bool
	Bool        bool
	Order       int
	Group       string
	GroupOrder  int
}

const (
	GroupConnection = "Database Connection Details"
	GroupImport     = "Database Import Details"
)

const (
	FlagHost                          = "database-host"
	FlagPort                          = "database-port"
	FlagUsername                      = "database-username"
	FlagPassword                      = "database-password"
	FlagSSL                           = "database-ssl"
	FlagDatabaseNames                 = "database-names"
	FlagDomain                        = "domain"
	FlagServerInstance                = "server-instance"
	FlagUseNTLMv2                     = "use-ntlmv2"
	FlagSchemaNames                   = "schemas"
	FlagImportSchemasAsSeparateModels = "import-schemas-as-separate-models"
	FlagDriver                        = "driver"
)

var databaseFields = []Field{
	{
		Key:         KeyHost,
		Flag:        FlagHost,
		DisplayName: "Database Host",
		Description: "The hostname of the server that is running the database.",
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeyPort,
		Flag:        FlagPort,
		DisplayName: "Database Port",
		Description: "The port that the database is accessed through. If not set then the default port for the database type will be used.",
		Optional:    true,
		Order:       1,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeyUsername,
		Flag:        FlagUsername,
		DisplayName: "Username",
		Description: "The username used to connect to the database.",
		Order:       3,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeyPassword,
		Flag:        FlagPassword,
		DisplayName: "Password",
		Description: "The password used to connect to the database.",
		Order:       4,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeySSL,
		Flag:        FlagSSL,
		DisplayName: "SSL",
		Description: "Whether SSL should be used to connect to the database.",
		Optional:    true,
		Bool:        true,
		Order:       5,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeyDatabaseNames,
		Flag:        FlagDatabaseNames,
		DisplayName: "Database Name/s",
		Description: "A comma-separated list of database names to import. If not supplied then every online database on the server is imported.",
		Optional:    true,
		Order:       1,
		Group:       GroupImport,
		GroupOrder:  2,
	},
}

var sqlServerFields = []Field{
	{
		Key:         KeyDomain,
		Flag:        FlagDomain,
		DisplayName: "Domain Name",
		Description: "User domain name. This should be used rather than prefixing the username with <DOMAIN>/<username>.",
		Optional:    true,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Flag:        FlagServerInstance,
		DisplayName: "SQL Server Instance",
		Description: "The name of the SQL Server Instance. This only needs to be supplied if the server is running an instance with a different name to the server.",
		Optional:    true,
		Order:       2,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeyUseNTLMv2,
		Flag:        FlagUseNTLMv2,
		DisplayName: "Use NTLMv2",
		Description: "Whether to use NTLMv2 when connecting to the database. Default is false.",
		Optional:    true,
		Bool:        true,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeyDriver,
		Flag:        FlagDriver,
		DisplayName: "Driver",
		Description: "Connection profile to use: 'primary' (default) or 'alternate'.",
		Optional:    true,
		Order:       6,
		Group:       GroupConnection,
		GroupOrder:  1,
	},
	{
		Key:         KeySchemas,
		Flag:        FlagSchemaNames,
		DisplayName: "Database Schema/s",
		Description: "A comma-separated list of the schema names to import. If not supplied then all schemas other than 'sys' and 'INFORMATION_SCHEMA' will be imported.",
		Optional:    true,
		Order:       2,
		Group:       GroupImport,
		GroupOrder:  2,
	},
	{
		Flag:        FlagImportSchemasAsSeparateModels,
		DisplayName: "Import Schemas as Separate DataModels",
		Description: "Import the schemas found (or defined) as individual DataModels. Each schema DataModel will be imported with the name of the schema.",
		Optional:    true,
		Bool:        true,
		Order:       3,
		Group:       GroupImport,
		GroupOrder:  2,
	},
}

// SQLServerFields returns the field table for SQL Server imports, common fields first.
func SQLServerFields() []Field {
	return slices.Concat(databaseFields, sqlServerFields)
}

// Groups arranges fields into form sections ordered by group order, then field order.
// Fields with equal order keep their relative position.
func Groups(fields []Field) []Group {
	var ret []Group
	for _, f := range fields {
		i := slices.IndexFunc(ret, func(g Group) bool { return g.Name == f.Group })
		if i < 0 {
			ret = append(ret, Group{Name: f.Group, Order: f.GroupOrder})
			i = len(ret) - 1
		}
		ret[i].Fields = append(ret[i].Fields, f)
	}

	slices.SortStableFunc(ret, func(a, b Group) int {
		return cmp.Compare(a.Order, b.Order)
	})
	for i := range ret {
		slices.SortStableFunc(ret[i].Fields, func(a, b Field) int {
			return cmp.Compare(a.Order, b.Order)
		})
	}

	return ret
}
