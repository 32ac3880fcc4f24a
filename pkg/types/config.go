package types

import "time"

// HTTPConfig holds shared HTTP settings used by every adapter that makes
// network requests.
type HTTPConfig struct {
	// Timeout bounds a single request. Adapters never wait longer than this.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "metadata-verifier/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// TieBreak selects which header wins when several match a column pattern.
type TieBreak string

const (
	TieBreakFirst TieBreak = "first"
	TieBreakLast  TieBreak = "last"
)

// ColumnConfig holds the substrings used to locate identifier and datatype
// columns in a header row. Matching is case-sensitive.
type ColumnConfig struct {
	IdentifierPatterns []string `json:"identifier_patterns" yaml:"identifier_patterns"`
	DatatypePatterns   []string `json:"datatype_patterns" yaml:"datatype_patterns"`

	// TieBreak is "first" (leftmost match wins, the default) or "last".
	TieBreak TieBreak `json:"tie_break" yaml:"tie_break"`
}

// OCLConfig points at an Open Concept Lab style catalog. The same catalog
// backs two adapters: the general "source" and the curated "collection".
type OCLConfig struct {
	BaseURL    string `json:"base_url" yaml:"base_url"`
	Org        string `json:"org" yaml:"org"`
	Source     string `json:"source" yaml:"source"`
	Collection string `json:"collection" yaml:"collection"`
	Token      string `json:"token,omitempty" yaml:"token,omitempty"`
}

// InstanceConfig describes one deployed instance REST endpoint (dev, uat, ...).
type InstanceConfig struct {
	Name     string `json:"name" yaml:"name"`
	BaseURL  string `json:"base_url" yaml:"base_url"`
	Username string `json:"username,omitempty" yaml:"username,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
}

// SnapshotConfig enables the local catalog snapshot as an extra registry source.
type SnapshotConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Name    string `json:"name" yaml:"name"`
}

// RegistryConfig lists the reference systems queried in registry mode.
type RegistryConfig struct {
	OCL       OCLConfig        `json:"ocl" yaml:"ocl"`
	Instances []InstanceConfig `json:"instances" yaml:"instances"`
	Snapshot  SnapshotConfig   `json:"snapshot" yaml:"snapshot"`
}

// FormConfig selects the form document verified in form mode. Each entry in
// Environments must name a configured instance; the form is fetched from
// each of them and every environment becomes one feed.
type FormConfig struct {
	FormID       string   `json:"form_id" yaml:"form_id"`
	Locale       string   `json:"locale" yaml:"locale"`
	Environments []string `json:"environments" yaml:"environments"`
}

// VerifyConfig holds sheet verification settings.
type VerifyConfig struct {
	// Concurrency is the number of rows in flight (default 1).
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// LookupTimeout bounds one adapter lookup, including any body decoding.
	LookupTimeout time.Duration `json:"lookup_timeout" yaml:"lookup_timeout"`
}

// CatalogConfig holds settings for the local concept snapshot store.
type CatalogConfig struct {
	// Dir is the directory holding catalog.db and exports.
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Config groups all settings for metadata-verifier.
type Config struct {
	HTTP         HTTPConfig     `json:"http" yaml:"http"`
	Columns      ColumnConfig   `json:"columns" yaml:"columns"`
	Placeholders []string       `json:"placeholders" yaml:"placeholders"`
	Registry     RegistryConfig `json:"registry" yaml:"registry"`
	Form         FormConfig     `json:"form" yaml:"form"`
	Verify       VerifyConfig   `json:"verify" yaml:"verify"`
	Catalog      CatalogConfig  `json:"catalog" yaml:"catalog"`
	Log          LogConfig      `json:"log" yaml:"log"`
}

// Instance returns the configured instance with the given name.
func (r RegistryConfig) Instance(name string) (InstanceConfig, bool) {
	for _, in := range r.Instances {
		if in.Name == name {
			return in, true
		}
	}
	return InstanceConfig{}, false
}
