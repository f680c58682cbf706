package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"ponto/analysis"
	"ponto/importer"
	"ponto/internal/logging"
)

const (
	KeySourceInputs          = "source.inputs"
	KeySourceFormat          = "source.format"
	KeySourceTimeout         = "source.timeout"
	KeyOvertimeTolerance     = "analysis.overtime_tolerance_minutes"
	KeyShiftTolerance        = "analysis.shift_tolerance_minutes"
	KeyDefaultPeriod         = "analysis.default_period"
	KeyServerPort            = "server.port"
	KeyServerAllowedOrigins  = "server.allowed_origins"
	KeyLogLevel              = "log.level"
	KeyLogFormat             = "log.format"
	keyColumnsEmployee       = "columns.employee"
	keyColumnsDate           = "columns.date"
	keyColumnsActualIn       = "columns.actual_in"
	keyColumnsActualOut      = "columns.actual_out"
	keyColumnsScheduledIn    = "columns.scheduled_in"
	keyColumnsScheduledOut   = "columns.scheduled_out"
	keyColumnsSupervisor     = "columns.supervisor"
	defaultPeriod            = "last30"
	defaultServerPort        = 8080
	defaultLogLevel          = "info"
	defaultLogFormat         = "text"
	defaultSourceTimeoutText = "30s"
)

type Config struct {
	Source   SourceConfig     `mapstructure:"source"`
	Analysis AnalysisConfig   `mapstructure:"analysis"`
	Columns  importer.Columns `mapstructure:"columns"`
	Server   ServerConfig     `mapstructure:"server"`
	Log      LogConfig        `mapstructure:"log"`
}

type SourceConfig struct {
	Inputs  []string      `mapstructure:"inputs" validate:"required,min=1,dive,required"`
	Format  string        `mapstructure:"format" validate:"omitempty,oneof=csv excel xlsx xlsm xls"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type AnalysisConfig struct {
	OvertimeToleranceMinutes int    `mapstructure:"overtime_tolerance_minutes" validate:"gte=0"`
	ShiftToleranceMinutes    int    `mapstructure:"shift_tolerance_minutes" validate:"gte=0"`
	DefaultPeriod            string `mapstructure:"default_period"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"gte=1,lte=65535"`
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"dive,required"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

func (c Config) Tolerances() analysis.Tolerances {
	return analysis.Tolerances{
		OvertimeMinutes:   c.Analysis.OvertimeToleranceMinutes,
		ShiftStartMinutes: c.Analysis.ShiftToleranceMinutes,
	}
}

func (c Config) LogOptions() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# ponto configuration
source:
  # Local paths or http(s) URLs; several inputs are merged in order.
  inputs:
    - "` + importer.DefaultSource + `"
  # csv, excel or xls; empty means detect from the file extension.
  format: ""
  timeout: "30s"

analysis:
  overtime_tolerance_minutes: 15
  shift_tolerance_minutes: 60
  # all, month, lastN, YYYY-MM or YYYY-MM-DD..YYYY-MM-DD
  default_period: "last30"

# Header aliases per field, matched ignoring case, accents, spaces, '_' and '-'.
columns:
  employee: ["Nome"]
  date: ["Data"]
  actual_in: ["Entrada 1"]
  actual_out: ["Saída 1"]
  scheduled_in: ["Turnos.ENTRADA"]
  scheduled_out: ["Turnos.SAIDA"]
  supervisor: ["Supervisor", "Gestor", "Coordenador"]

server:
  port: 8080
  allowed_origins: ["*"]

log:
  level: "info"
  format: "text"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Columns = cfg.Columns.WithDefaults()
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if _, err := analysis.ParsePeriod(cfg.Analysis.DefaultPeriod, time.Now()); err != nil {
		return nil, fmt.Errorf("validation failed: analysis.default_period: %w", err)
	}
	if err := validateColumns(cfg.Columns); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	columns := importer.DefaultColumns()

	v.SetDefault(KeySourceInputs, []string{importer.DefaultSource})
	v.SetDefault(KeySourceFormat, "")
	v.SetDefault(KeySourceTimeout, defaultSourceTimeoutText)
	v.SetDefault(KeyOvertimeTolerance, analysis.DefaultOvertimeToleranceMinutes)
	v.SetDefault(KeyShiftTolerance, analysis.DefaultShiftToleranceMinutes)
	v.SetDefault(KeyDefaultPeriod, defaultPeriod)
	v.SetDefault(keyColumnsEmployee, columns.Employee)
	v.SetDefault(keyColumnsDate, columns.Date)
	v.SetDefault(keyColumnsActualIn, columns.ActualIn)
	v.SetDefault(keyColumnsActualOut, columns.ActualOut)
	v.SetDefault(keyColumnsScheduledIn, columns.ScheduledIn)
	v.SetDefault(keyColumnsScheduledOut, columns.ScheduledOut)
	v.SetDefault(keyColumnsSupervisor, columns.Supervisor)
	v.SetDefault(KeyServerPort, defaultServerPort)
	v.SetDefault(KeyServerAllowedOrigins, []string{"*"})
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)
}

func validateColumns(columns importer.Columns) error {
	fields := map[string][]string{
		"employee":      columns.Employee,
		"date":          columns.Date,
		"actual_in":     columns.ActualIn,
		"actual_out":    columns.ActualOut,
		"scheduled_in":  columns.ScheduledIn,
		"scheduled_out": columns.ScheduledOut,
		"supervisor":    columns.Supervisor,
	}
	for _, name := range []string{"employee", "date", "actual_in", "actual_out", "scheduled_in", "scheduled_out", "supervisor"} {
		for i, alias := range fields[name] {
			if strings.TrimSpace(alias) == "" {
				return fmt.Errorf("validation failed: columns.%s[%d] must not be blank", name, i)
			}
		}
	}
	return nil
}
