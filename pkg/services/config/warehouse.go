package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/snowflakedb/gosnowflake"
	"github.com/spf13/viper"
)

// SnowflakeConfig is a credentials file for a snowflake dataset profile.
type SnowflakeConfig struct {
	Account   string `mapstructure:"account"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Database  string `mapstructure:"database"`
	Schema    string `mapstructure:"schema"`
	Warehouse string `mapstructure:"warehouse"`
	Role      string `mapstructure:"role"`
}

// DatabricksConfig is a credentials file for a databricks dataset profile.
type DatabricksConfig struct {
	Host     string `mapstructure:"host"`
	Token    string `mapstructure:"token"`
	HTTPPath string `mapstructure:"http_path"`
	Catalog  string `mapstructure:"catalog"`
	Schema   string `mapstructure:"schema"`
}

func readFile(path string, out interface{}) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func LoadSnowflakeConfig(path string) (*SnowflakeConfig, error) {
	var cfg SnowflakeConfig
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Account == "" || cfg.User == "" || cfg.Password == "" {
		return nil, fmt.Errorf("snowflake config %s: account, user and password are required", path)
	}
	return &cfg, nil
}

func LoadDatabricksConfig(path string) (*DatabricksConfig, error) {
	var cfg DatabricksConfig
	if err := readFile(path, &cfg); err != nil {
		return nil, err
	}
	if cfg.Host == "" || cfg.Token == "" || cfg.HTTPPath == "" {
		return nil, fmt.Errorf("databricks config %s: host, token and http_path are required", path)
	}
	return &cfg, nil
}

func (c *SnowflakeConfig) DSN() (string, error) {
	return gosnowflake.DSN(&gosnowflake.Config{
		Account:   c.Account,
		User:      c.User,
		Password:  c.Password,
		Database:  c.Database,
		Schema:    c.Schema,
		Warehouse: c.Warehouse,
		Role:      c.Role,
	})
}

// DSN renders token:<token>@<host><http_path>?catalog=..&schema=..
func (c *DatabricksConfig) DSN() (string, error) {
	host := strings.TrimPrefix(strings.TrimPrefix(c.Host, "https://"), "http://")
	path := c.HTTPPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	dsn := fmt.Sprintf("token:%s@%s%s", c.Token, host, path)
	params := url.Values{}
	if c.Catalog != "" {
		params.Set("catalog", c.Catalog)
	}
	if c.Schema != "" {
		params.Set("schema", c.Schema)
	}
	if len(params) > 0 {
		dsn += "?" + params.Encode()
	}
	return dsn, nil
}
