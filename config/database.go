package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/kndndrj/dbexport/core"
)

// Database describes one data source connection read from the env file.
// Keys are the source prefix followed by the field name, e.g. PGHOST or MSSQLDATABASE.
type Database struct {
	Type     string `mapstructure:"type"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`

	prefix string
}

// DatabaseFromValues decodes, defaults and validates the database settings for prefix.
func DatabaseFromValues(values Values, prefix, defaultType string) (*Database, error) {
	db := &Database{prefix: prefix}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           db,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(values.WithPrefix(prefix)); err != nil {
		return nil, fmt.Errorf("config: decode %s settings: %w", prefix, err)
	}

	db.ApplyDefaults(defaultType)
	if err := db.Validate(); err != nil {
		return nil, err
	}

	return db, nil
}

// Present reports whether any key for the prefix is set.
func Present(values Values, prefix string) bool {
	return len(values.WithPrefix(prefix)) > 0
}

func (d *Database) ApplyDefaults(defaultType string) {
	if d.Type == "" {
		d.Type = defaultType
	}
}

// Validate fails fast on missing required keys. File based databases only need a path.
func (d *Database) Validate() error {
	fields := Values{
		d.prefix + "DATABASE": d.Name,
		d.prefix + "HOST":     d.Host,
		d.prefix + "USER":     d.User,
	}

	required := []string{d.prefix + "DATABASE"}
	if !d.fileBased() {
		required = append(required, d.prefix+"HOST", d.prefix+"USER")
	}

	return fields.Require(required...)
}

func (d *Database) fileBased() bool {
	return d.Type == "sqlite" || d.Type == "sqlite3"
}

// Params converts the settings to connection parameters.
func (d *Database) Params(name string) *core.ConnectionParams {
	var opts map[string]string
	if d.SSLMode != "" {
		opts = map[string]string{"sslmode": d.SSLMode}
	}

	return &core.ConnectionParams{
		Name:     name,
		Type:     d.Type,
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Name,
		User:     d.User,
		Password: d.Password,
		Options:  opts,
	}
}
