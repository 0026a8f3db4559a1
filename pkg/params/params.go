package params

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Property keys shared by every database vendor.
const (
	KeyHost          = "import.database.host"
	KeyPort          = "import.database.port"
	KeyUsername      = "import.database.username"
	KeyPassword      = "import.database.password"
	KeySSL           = "import.database.ssl"
	KeyDatabaseNames = "import.database.names"
)

// UnknownURL is returned by URL when a vendor only connects through a structured descriptor.
const UnknownURL = "UNKNOWN"

var ErrUnknownDriver = errors.New("unknown driver variant")

// PropertySource is the property bag parameters are populated from.
// *viper.Viper satisfies it.
type PropertySource interface {
	GetString(key string) string
	IsSet(key string) bool
}

// Properties is an in-memory PropertySource.
type Properties map[string]string

func (p Properties) GetString(key string) string {
	return p[key]
}

func (p Properties) IsSet(key string) bool {
	_, ok := p[key]
	return ok
}

// Layered resolves each key against the first source that has it set.
type Layered []PropertySource

func (l Layered) GetString(key string) string {
	for _, src := range l {
		if src != nil && src.IsSet(key) {
			return src.GetString(key)
		}
	}
	return ""
}

func (l Layered) IsSet(key string) bool {
	for _, src := range l {
		if src != nil && src.IsSet(key) {
			return true
		}
	}
	return false
}

// Descriptor is what a database/sql driver needs to open a connection.
type Descriptor interface {
	DriverName() string
	ConnectionString() string
}

// Parameters is implemented by every vendor-specific parameter set.
type Parameters interface {
	DefaultPort() int
	Dialect() string
	URL(databaseName string) string
	PopulateFrom(props PropertySource) error
	Descriptor(ctx context.Context, databaseName string) (Descriptor, error)
}

// ConfigurationError is returned when a property holds a value that cannot be used.
type ConfigurationError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %v", e.Value, e.Key, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Database holds the connection settings common to all vendors.
type Database struct {
	Host          string
	Port          int
	Username      string
	Password      string
	SSL           bool
	DatabaseNames string
}

func (d *Database) populate(props PropertySource) error {
	d.Host = props.GetString(KeyHost)
	d.Username = props.GetString(KeyUsername)
	d.Password = props.GetString(KeyPassword)
	d.SSL = parseBool(props.GetString(KeySSL))
	d.DatabaseNames = props.GetString(KeyDatabaseNames)

	d.Port = 0
	if raw := strings.TrimSpace(props.GetString(KeyPort)); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return &ConfigurationError{Key: KeyPort, Value: raw, Err: err}
		}
		if port <= 0 || port > 65535 {
			return &ConfigurationError{Key: KeyPort, Value: raw, Err: errors.New("port out of range")}
		}
		d.Port = port
	}

	return nil
}

// PortOr returns the configured port, or def when none was set.
func (d *Database) PortOr(def int) int {
	if d.Port == 0 {
		return def
	}
	return d.Port
}

// Databases returns the configured database names.
func (d *Database) Databases() []string {
	return splitList(d.DatabaseNames)
}

// parseBool accepts only a case-insensitive "true"; everything else, including
// malformed input, is false.
func parseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

func splitList(s string) []string {
	var ret []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ret = append(ret, part)
	}
	return ret
}
