package connector

import (
	"github.com/conductorone/baton-sql-server-import/pkg/mssqldb"
	v2 "github.com/conductorone/baton-sdk/pb/c1/connector/v2"
)

var (
	resourceTypeServer = &v2.ResourceType{
		Id:          mssqldb.ServerType,
		DisplayName: "Server",
	}
	resourceTypeDatabase = &v2.ResourceType{
		Id:          mssqldb.DatabaseType,
		DisplayName: "Database",
	}
	resourceTypeSchema = &v2.ResourceType{
		Id:          mssqldb.SchemaType,
		DisplayName: "Schema",
	}
	resourceTypeTable = &v2.ResourceType{
		Id:          mssqldb.TableType,
		DisplayName: "Table",
	}
)
