package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/conductorone/baton-sdk/pkg/field"
	"github.com/conductorone/baton-sql-server-import/pkg/params"
	"github.com/spf13/viper"
)

var (
	propertiesFile = field.StringField("properties-file",
		field.WithDescription("Path to a .properties file holding import.database.* settings. Flags take precedence over the file."))
	skipUnavailableDatabases = field.BoolField("skip-unavailable-databases",
		field.WithDescription("Skip databases that are unavailable (offline, restoring, etc)"))
)

var cfg = field.Configuration{
	Fields: configurationFields(),
}

// configurationFields turns the import parameter table into CLI fields, in form order.
func configurationFields() []field.SchemaField {
	fields := []field.SchemaField{propertiesFile, skipUnavailableDatabases}
	for _, g := range params.Groups(params.SQLServerFields()) {
		for _, f := range g.Fields {
			desc := fmt.Sprintf("%s: %s", f.DisplayName, f.Description)
			if f.Bool {
				fields = append(fields, field.BoolField(f.Flag, field.WithDescription(desc)))
				continue
			}
			fields = append(fields, field.StringField(f.Flag, field.WithDescription(desc)))
		}
	}
	return fields
}

// loadParameters builds the SQL Server parameters from the properties file and flags.
// A string flag overrides the file when it is non-empty; a boolean flag whenever it is set.
func loadParameters(v *viper.Viper) (*params.SQLServer, error) {
	flags := params.Properties{}
	for _, f := range params.SQLServerFields() {
		if f.Key == "" {
			continue
		}
		if f.Bool {
			if v.IsSet(f.Flag) {
				flags[f.Key] = strconv.FormatBool(v.GetBool(f.Flag))
			}
			continue
		}
		if s := v.GetString(f.Flag); s != "" {
			flags[f.Key] = s
		}
	}

	sources := params.Layered{flags}
	if path := v.GetString(propertiesFile.FieldName); path != "" {
		fv := viper.New()
		fv.SetConfigFile(path)
		fv.SetConfigType("properties")
		if err := fv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading properties file %s: %w", path, err)
		}
		sources = append(sources, fv)
	}

	p := params.NewSQLServer()
	if err := p.PopulateFrom(sources); err != nil {
		return nil, err
	}

	if instance := v.GetString(params.FlagServerInstance); instance != "" {
		p.SetServerInstance(instance)
	}
	if v.IsSet(params.FlagImportSchemasAsSeparateModels) {
		p.SetImportSchemasAsSeparateModels(v.GetBool(params.FlagImportSchemasAsSeparateModels))
	}

	if err := validateParameters(p); err != nil {
		return nil, err
	}

	return p, nil
}

// validateParameters is run after the parameters are loaded, and should return an error if they aren't valid.
func validateParameters(p *params.SQLServer) error {
	if p.Host == "" {
		return errors.New("--" + params.FlagHost + " or " + params.KeyHost + " is required")
	}

	return nil
}
