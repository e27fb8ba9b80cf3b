package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/de-tools/commerce-atlas/pkg/models/domain"
	"golang.org/x/exp/slices"
	"gopkg.in/ini.v1"
)

var knownKinds = []domain.SourceKind{
	domain.SourceKindCSV,
	domain.SourceKindDuckDB,
	domain.SourceKindSnowflake,
	domain.SourceKindDatabricks,
}

// Registry lists the dataset profiles of an ini file, one section per
// profile:
//
//	[olist]
//	kind     = csv
//	orders   = data/all_data.csv
//	payments = data/paym_date.csv
//	sellers  = s3://extracts/seller_database.csv
//
//	[warehouse]
//	kind        = snowflake
//	credentials = snowflake.yaml
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.DatasetProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
	dir string
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles: %w", err)
	}
	return &iniRegistry{cfg: cfg, dir: filepath.Dir(path)}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	slices.Sort(profiles)
	return profiles, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (domain.DatasetProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.DatasetProfile{}, fmt.Errorf("profile %s not found", name)
	}

	kind := domain.SourceKind(section.Key("kind").MustString(string(domain.SourceKindCSV)))
	if !slices.Contains(knownKinds, kind) {
		return domain.DatasetProfile{}, fmt.Errorf("profile %s: unknown kind %q", name, kind)
	}

	profile := domain.DatasetProfile{
		Name:          name,
		Kind:          kind,
		Orders:        r.location(section.Key("orders").String()),
		Payments:      r.location(section.Key("payments").String()),
		Sellers:       r.location(section.Key("sellers").String()),
		DSN:           section.Key("dsn").String(),
		Path:          r.location(section.Key("path").String()),
		OrdersTable:   section.Key("orders_table").String(),
		PaymentsTable: section.Key("payments_table").String(),
		SellersTable:  section.Key("sellers_table").String(),
	}

	credentials := r.location(section.Key("credentials").String())
	if profile.DSN == "" && credentials != "" {
		dsn, err := warehouseDSN(kind, credentials)
		if err != nil {
			return domain.DatasetProfile{}, fmt.Errorf("profile %s: %w", name, err)
		}
		profile.DSN = dsn
	}
	return profile, nil
}

// warehouseDSN builds a driver DSN from a credentials file.
func warehouseDSN(kind domain.SourceKind, path string) (string, error) {
	switch kind {
	case domain.SourceKindSnowflake:
		cfg, err := LoadSnowflakeConfig(path)
		if err != nil {
			return "", err
		}
		return cfg.DSN()
	case domain.SourceKindDatabricks:
		cfg, err := LoadDatabricksConfig(path)
		if err != nil {
			return "", err
		}
		return cfg.DSN()
	default:
		return "", fmt.Errorf("credentials are not supported for kind %s", kind)
	}
}

// location resolves relative local paths against the profiles file.
func (r *iniRegistry) location(value string) string {
	if value == "" || strings.Contains(value, "://") || filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(r.dir, value)
}
