package params

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	SQLServerDefaultPort = 1433
	SQLServerDialect     = "MS SQL Server"

	KeySchemas   = "import.database.schemas"
	KeyUseNTLMv2 = "import.database.jtds.useNtlmv2"
	KeyDomain    = "import.database.jtds.domain"
	KeyDriver    = "import.database.driver"
)

// Schemas never imported unless named in the allow-list.
var reservedSchemas = []string{"sys", "INFORMATION_SCHEMA"}

// Driver selects how a SQL Server descriptor is assembled.
type Driver string

const (
	// DriverPrimary carries instance, NTLMv2 and domain settings.
	DriverPrimary Driver = "primary"
	// DriverAlternate maps SSL to encrypt and trust-server-certificate.
	// It failed to connect to some production servers, so it is opt-in only.
	DriverAlternate Driver = "alternate"
)

func ParseDriver(s string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(s))) {
	case "", DriverPrimary:
		return DriverPrimary, nil
	case DriverAlternate:
		return DriverAlternate, nil
	default:
		return "", &ConfigurationError{Key: KeyDriver, Value: s, Err: ErrUnknownDriver}
	}
}

// SQLServer holds the import parameters for Microsoft SQL Server.
type SQLServer struct {
	Database

	domain                        *string
	serverInstance                string
	useNTLMv2                     *bool
	schemaNames                   *string
	importSchemasAsSeparateModels *bool
	driver                        Driver
}

var _ Parameters = (*SQLServer)(nil)

func NewSQLServer() *SQLServer {
	return &SQLServer{}
}

func (p *SQLServer) DefaultPort() int {
	return SQLServerDefaultPort
}

func (p *SQLServer) Dialect() string {
	return SQLServerDialect
}

// URL always returns UnknownURL; SQL Server connections are built from a DataSource.
func (p *SQLServer) URL(databaseName string) string {
	return UnknownURL
}

// PopulateFrom reads the common keys and the SQL Server keys from props.
// Missing string keys leave the field unset.
func (p *SQLServer) PopulateFrom(props PropertySource) error {
	if err := p.Database.populate(props); err != nil {
		return err
	}

	p.schemaNames = optionalString(props, KeySchemas)
	useNTLMv2 := parseBool(props.GetString(KeyUseNTLMv2))
	p.useNTLMv2 = &useNTLMv2
	p.domain = optionalString(props, KeyDomain)

	driver, err := ParseDriver(props.GetString(KeyDriver))
	if err != nil {
		return err
	}
	p.driver = driver

	return nil
}

func (p *SQLServer) Domain() (string, bool) {
	if p.domain == nil {
		return "", false
	}
	return *p.domain, true
}

func (p *SQLServer) SetDomain(domain string) {
	p.domain = &domain
}

func (p *SQLServer) ServerInstance() string {
	return p.serverInstance
}

func (p *SQLServer) SetServerInstance(instance string) {
	p.serverInstance = instance
}

func (p *SQLServer) UseNTLMv2() bool {
	return p.useNTLMv2 != nil && *p.useNTLMv2
}

func (p *SQLServer) SetUseNTLMv2(v bool) {
	p.useNTLMv2 = &v
}

func (p *SQLServer) SchemaNames() (string, bool) {
	if p.schemaNames == nil {
		return "", false
	}
	return *p.schemaNames, true
}

func (p *SQLServer) SetSchemaNames(names string) {
	p.schemaNames = &names
}

func (p *SQLServer) ImportSchemasAsSeparateModels() bool {
	return p.importSchemasAsSeparateModels != nil && *p.importSchemasAsSeparateModels
}

func (p *SQLServer) SetImportSchemasAsSeparateModels(v bool) {
	p.importSchemasAsSeparateModels = &v
}

func (p *SQLServer) Driver() Driver {
	if p.driver == "" {
		return DriverPrimary
	}
	return p.driver
}

func (p *SQLServer) SetDriver(d Driver) {
	p.driver = d
}

// SchemaAllowList returns the configured schema names, or nil when every
// non-reserved schema is eligible.
func (p *SQLServer) SchemaAllowList() []string {
	if p.schemaNames == nil {
		return nil
	}
	return splitList(*p.schemaNames)
}

// SchemaEligible reports whether a schema should be imported.
func (p *SQLServer) SchemaEligible(name string) bool {
	allow := p.SchemaAllowList()
	if len(allow) == 0 {
		for _, reserved := range reservedSchemas {
			if strings.EqualFold(name, reserved) {
				return false
			}
		}
		return true
	}
	// Schema names follow the server's default collation, which is case-insensitive.
	for _, s := range allow {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// ModelName returns the name of the catalogue model a schema is imported into.
func (p *SQLServer) ModelName(databaseName, schemaName string) string {
	if p.ImportSchemasAsSeparateModels() {
		return schemaName
	}
	return databaseName
}

func (p *SQLServer) Descriptor(ctx context.Context, databaseName string) (Descriptor, error) {
	return p.DataSource(ctx, databaseName), nil
}

// DataSource builds the connection descriptor for databaseName. No I/O happens here.
func (p *SQLServer) DataSource(ctx context.Context, databaseName string) *DataSource {
	if p.Driver() == DriverAlternate {
		return p.alternateDataSource(ctx, databaseName)
	}
	return p.primaryDataSource(ctx, databaseName)
}

func (p *SQLServer) primaryDataSource(ctx context.Context, databaseName string) *DataSource {
	l := ctxzap.Extract(ctx)

	ds := p.baseDataSource(DriverPrimary, databaseName)
	if p.serverInstance != "" {
		ds.Instance = p.serverInstance
	}
	if p.UseNTLMv2() {
		ds.UseNTLMv2 = true
	}
	if p.domain != nil {
		domain := *p.domain
		ds.Domain = &domain
	}

	l.Debug(
		"data source using primary driver",
		zap.Bool("ntlmv2", p.UseNTLMv2()),
		zap.Stringp("domain", p.domain),
	)

	return ds
}

func (p *SQLServer) alternateDataSource(ctx context.Context, databaseName string) *DataSource {
	l := ctxzap.Extract(ctx)

	ds := p.baseDataSource(DriverAlternate, databaseName)
	if p.SSL {
		ds.Encrypt = true
		ds.TrustServerCertificate = true
	}

	l.Info("data source using alternate driver", zap.Bool("ssl", p.SSL))

	return ds
}

func (p *SQLServer) baseDataSource(driver Driver, databaseName string) *DataSource {
	return &DataSource{
		Driver:       driver,
		ServerName:   p.Host,
		PortNumber:   p.PortOr(p.DefaultPort()),
		DatabaseName: databaseName,
		User:         p.Username,
		Password:     p.Password,
	}
}

func optionalString(props PropertySource, key string) *string {
	if !props.IsSet(key) {
		return nil
	}
	v := props.GetString(key)
	return &v
}
