package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shift-planner/pkg/core/calendar"
	"github.com/jakechorley/shift-planner/pkg/core/rules"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DefaultLookbackMonths is how many months before the target month are composed for lookups
const DefaultLookbackMonths = 1

// StoreConfig selects where the roster and overrides are kept
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=sqlite postgres"`
	// DSN is a file path for sqlite or a connection string for postgres
	DSN string `yaml:"dsn" validate:"required"`
}

// RulesConfig overrides parts of the default rule table. Empty fields keep the defaults.
type RulesConfig struct {
	VacationCodes         []string `yaml:"vacationCodes,omitempty" validate:"dive,required"`
	LeaveCodes            []string `yaml:"leaveCodes,omitempty" validate:"dive,required"`
	TrainingCodes         []string `yaml:"trainingCodes,omitempty" validate:"dive,required"`
	PassThroughCodes      []string `yaml:"passThroughCodes,omitempty" validate:"dive,required"`
	NoSaturdayCodes       []string `yaml:"noSaturdayCodes,omitempty" validate:"dive,required"`
	SaturdayWorkableCodes []string `yaml:"saturdayWorkableCodes,omitempty" validate:"dive,required"`
	ExcludedRole          string   `yaml:"excludedRole,omitempty"`
	AssignmentCode        string   `yaml:"assignmentCode,omitempty"`
	RotationEpoch         string   `yaml:"rotationEpoch,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MaxLookbackDays       int      `yaml:"maxLookbackDays,omitempty" validate:"omitempty,min=1,max=366"`
}

// Holiday declares a holiday on a fixed date or as a recurrence
type Holiday struct {
	Name  string `yaml:"name" validate:"required"`
	Kind  string `yaml:"kind" validate:"required,oneof=FN FA FL"`
	Date  string `yaml:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RRule string `yaml:"rrule,omitempty"`
}

// PublishConfig holds the Google Sheets target for publishMonth
type PublishConfig struct {
	SpreadsheetID string `yaml:"spreadsheetID,omitempty"`
}

// Config represents the application configuration
type Config struct {
	Store          StoreConfig   `yaml:"store"`
	Rules          RulesConfig   `yaml:"rules,omitempty"`
	Holidays       []Holiday     `yaml:"holidays,omitempty" validate:"dive"`
	LookbackMonths *int          `yaml:"lookbackMonths,omitempty" validate:"omitempty,min=1,max=12"`
	Publish        PublishConfig `yaml:"publish,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates shift_planner_config.<env>.yaml.
// It looks in the current directory first, then in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findFile(ConfigFileName(env))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct, holiday definitions and rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, h := range cfg.Holidays {
		switch {
		case h.Date == "" && h.RRule == "":
			return fmt.Errorf("holidays[%d] (%s) needs either a date or an rrule", i, h.Name)
		case h.Date != "" && h.RRule != "":
			return fmt.Errorf("holidays[%d] (%s) has both a date and an rrule", i, h.Name)
		case h.RRule != "":
			if _, err := rrule.StrToRRule(h.RRule); err != nil {
				return fmt.Errorf("invalid rrule in holidays[%d]: %w", i, err)
			}
		}
	}

	return nil
}

// RuleTable returns the default rule table with configured fields applied
func (c *Config) RuleTable() (rules.RuleTable, error) {
	rt := rules.Default()
	r := c.Rules

	setCodes := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	setCodes(&rt.VacationCodes, r.VacationCodes)
	setCodes(&rt.LeaveCodes, r.LeaveCodes)
	setCodes(&rt.TrainingCodes, r.TrainingCodes)
	setCodes(&rt.PassThroughCodes, r.PassThroughCodes)
	setCodes(&rt.NoSaturdayCodes, r.NoSaturdayCodes)
	setCodes(&rt.SaturdayWorkableCodes, r.SaturdayWorkableCodes)

	if r.ExcludedRole != "" {
		rt.ExcludedRole = r.ExcludedRole
	}
	if r.AssignmentCode != "" {
		rt.AssignmentCode = r.AssignmentCode
	}
	if r.MaxLookbackDays > 0 {
		rt.MaxLookbackDays = r.MaxLookbackDays
	}
	if r.RotationEpoch != "" {
		epoch, err := calendar.ParseDate(r.RotationEpoch)
		if err != nil {
			return rules.RuleTable{}, fmt.Errorf("invalid rotationEpoch: %w", err)
		}
		rt.RotationEpoch = epoch
	}

	return rt, nil
}

// HolidayRules converts the configured holidays for calendar expansion
func (c *Config) HolidayRules() []calendar.HolidayRule {
	holidayRules := make([]calendar.HolidayRule, 0, len(c.Holidays))
	for _, h := range c.Holidays {
		holidayRules = append(holidayRules, calendar.HolidayRule{
			Name:  h.Name,
			Kind:  calendar.Kind(h.Kind),
			Date:  h.Date,
			RRule: h.RRule,
		})
	}
	return holidayRules
}

// Lookback returns the number of months composed before a target month
func (c *Config) Lookback() int {
	if c.LookbackMonths == nil {
		return DefaultLookbackMonths
	}
	return *c.LookbackMonths
}

// ConfigFileName returns the config file name for env, e.g. shift_planner_config.dev.yaml
func ConfigFileName(env string) string {
	return fmt.Sprintf("shift_planner_config.%s.yaml", env)
}

// findFile looks for name in the current directory, then in the user's home directory
func findFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", name)
}
