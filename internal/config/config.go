// Package config carga la configuración del servicio desde YAML con
// expansión de variables de entorno, al estilo ${VAR}.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del servicio.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	OpsHub  OpsHubConfig  `yaml:"ops_hub"`
	Sources SourcesConfig `yaml:"sources"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// Address devuelve la dirección de escucha HTTP.
func (c ServerConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AuthConfig configura el IAM central. Si BaseURL viene vacía, el servicio
// corre en modo dev (X-Debug-User-ID).
type AuthConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	// ServiceToken: bearer de service-account usado contra los upstreams
	// cuando el request no trae token propio. Puede ser vacío en dev.
	ServiceToken string `yaml:"service_token"`
}

// OpsHubConfig configura el colector de observabilidad (opcional).
type OpsHubConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// SourcesConfig agrupa las cinco fuentes del timeline.
type SourcesConfig struct {
	Appointments  SourceConfig      `yaml:"appointments"`
	Payments      SourceConfig      `yaml:"payments"`
	Invoices      SourceConfig      `yaml:"invoices"`
	Diagnostics   DiagnosticsConfig `yaml:"diagnostics"`
	ClinicalNotes NotesConfig       `yaml:"clinical_notes"`

	// FallbackBulkLimit acota los listados masivos del fallback y del
	// fetch de diagnósticos.
	FallbackBulkLimit int `yaml:"fallback_bulk_limit"`
}

type SourceConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout devuelve el timeout del adapter (0 => default del httpclient).
func (c SourceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DiagnosticsConfig struct {
	SourceConfig `yaml:",inline"`
	// CompletionStatuses: sentinels de completitud del dominio diagnóstico.
	// Vacío => ["Completed"].
	CompletionStatuses []string `yaml:"completion_statuses"`
}

type NotesConfig struct {
	SourceConfig `yaml:",inline"`
	PageSize     int `yaml:"page_size"`
}

// Default devuelve la configuración base (dev local).
func Default() Config {
	return Config{
		Server: ServerConfig{Port: 8080},
		Log:    LogConfig{Level: "info", Format: "text"},
		Sources: SourcesConfig{
			FallbackBulkLimit: 1000,
			ClinicalNotes:     NotesConfig{PageSize: 100},
		},
	}
}

// Load lee el archivo YAML (si existe) sobre los defaults, expande env vars
// y valida. Un path inexistente no es error: queda la config default, que a
// su vez puede completarse por env en el YAML de deploys reales.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validation: %w", err)
	}
	return cfg, nil
}

// Validate valida la configuración completa.
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Sources,
		validation.Field(&c.Sources.FallbackBulkLimit, validation.Min(0)),
	); err != nil {
		return err
	}

	for name, sc := range map[string]SourceConfig{
		"appointments":   c.Sources.Appointments,
		"payments":       c.Sources.Payments,
		"invoices":       c.Sources.Invoices,
		"diagnostics":    c.Sources.Diagnostics.SourceConfig,
		"clinical_notes": c.Sources.ClinicalNotes.SourceConfig,
	} {
		if err := sc.validate(); err != nil {
			return fmt.Errorf("sources.%s: %w", name, err)
		}
	}

	return nil
}

func (c SourceConfig) validate() error {
	return validation.ValidateStruct(&c,
		// BaseURL vacía es válida (fuente deshabilitada en dev); si viene,
		// tiene que ser una URL http(s).
		validation.Field(&c.BaseURL, validation.By(optionalHTTPURL)),
		validation.Field(&c.TimeoutSeconds, validation.Min(0)),
	)
}

func optionalHTTPURL(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return errors.New("must be an http(s) URL")
	}
	return nil
}
