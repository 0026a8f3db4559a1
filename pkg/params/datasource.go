package params

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

// SQLServerDriverName is the database/sql driver registered by go-mssqldb.
const SQLServerDriverName = "sqlserver"

// DataSource describes a connection to one SQL Server database.
type DataSource struct {
	Driver       Driver
	ServerName   string
	PortNumber   int
	DatabaseName string
	User         string
	Password     string

	// Set by the primary driver only.
	Instance  string
	UseNTLMv2 bool
	Domain    *string

	// Set by the alternate driver when SSL is requested.
	Encrypt                bool
	TrustServerCertificate bool
}

var _ Descriptor = (*DataSource)(nil)

func (d *DataSource) DriverName() string {
	return SQLServerDriverName
}

// ConnectionString renders d in the go-mssqldb URL format.
//
// A domain is folded into the user name as DOMAIN\user, which makes go-mssqldb
// authenticate with NTLM. The driver always answers NTLM challenges with
// NTLMv2, so UseNTLMv2 needs no parameter of its own.
func (d *DataSource) ConnectionString() string {
	query := url.Values{}
	query.Set("database", d.DatabaseName)
	if d.Encrypt {
		query.Set("encrypt", "true")
	}
	if d.TrustServerCertificate {
		query.Set("TrustServerCertificate", "true")
	}

	u := &url.URL{
		Scheme:   "sqlserver",
		RawQuery: query.Encode(),
	}

	// A named instance is resolved through the SQL Browser service, which supplies the port.
	if d.Instance != "" {
		u.Host = d.ServerName
		if strings.Contains(u.Host, ":") {
			u.Host = "[" + u.Host + "]"
		}
		u.Path = "/" + d.Instance
	} else {
		u.Host = net.JoinHostPort(d.ServerName, strconv.Itoa(d.PortNumber))
	}

	user := d.User
	if user != "" && d.Domain != nil && *d.Domain != "" {
		user = *d.Domain + `\` + user
	}
	if user != "" {
		u.User = url.UserPassword(user, d.Password)
	}

	return u.String()
}
