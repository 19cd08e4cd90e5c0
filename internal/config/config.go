// Package config загружает настройки запуска: значения по умолчанию,
// необязательный файл (формат по расширению) и переменные окружения SHOP_*.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"shopAlloc/internal/logging"
	"shopAlloc/internal/shopping"
	"shopAlloc/internal/simplex"
)

const EnvPrefix = "SHOP"

type Config struct {
	Problem ProblemConfig `mapstructure:"problem"`
	Solver  SolverConfig  `mapstructure:"solver"`
	Report  ReportConfig  `mapstructure:"report"`
	Log     LogConfig     `mapstructure:"log"`
}

type ProblemConfig struct {
	Goods        int          `mapstructure:"goods"        validate:"min=1"`
	Requirements int          `mapstructure:"requirements" validate:"min=1"`
	Seed         int64        `mapstructure:"seed"`
	Integer      bool         `mapstructure:"integer"`
	Bounds       BoundsConfig `mapstructure:"bounds"`
}

type BoundsConfig struct {
	CostMin     int `mapstructure:"cost_min"     validate:"min=1"`
	CostMax     int `mapstructure:"cost_max"     validate:"gtefield=CostMin"`
	CoverageMax int `mapstructure:"coverage_max" validate:"min=0"`
	TargetMin   int `mapstructure:"target_min"   validate:"min=1"`
	TargetMax   int `mapstructure:"target_max"   validate:"gtefield=TargetMin"`
}

type SolverConfig struct {
	Backend        string  `mapstructure:"backend"         validate:"oneof=simplex"`
	Tolerance      float64 `mapstructure:"tolerance"       validate:"gte=0"`
	IntegralityTol float64 `mapstructure:"integrality_tol" validate:"gt=0,lt=0.5"`
	MaxNodes       int     `mapstructure:"max_nodes"       validate:"min=1"`
	Branching      string  `mapstructure:"branching"       validate:"oneof=most-infeasible first"`
}

type ReportConfig struct {
	RoundingTol float64 `mapstructure:"rounding_tol" validate:"gt=0,lt=0.5"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"       validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format"      validate:"oneof=json text"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"    validate:"min=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"min=0"`
	MaxAge     int    `mapstructure:"max_age"     validate:"min=0"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	b := shopping.DefaultBounds()
	s := simplex.DefaultConfig()

	v.SetDefault("problem.goods", 10)
	v.SetDefault("problem.requirements", 5)
	v.SetDefault("problem.seed", 1)
	v.SetDefault("problem.integer", true)
	v.SetDefault("problem.bounds.cost_min", b.CostMin)
	v.SetDefault("problem.bounds.cost_max", b.CostMax)
	v.SetDefault("problem.bounds.coverage_max", b.CoverageMax)
	v.SetDefault("problem.bounds.target_min", b.TargetMin)
	v.SetDefault("problem.bounds.target_max", b.TargetMax)

	v.SetDefault("solver.backend", "simplex")
	v.SetDefault("solver.tolerance", s.Tolerance)
	v.SetDefault("solver.integrality_tol", s.IntegralityTol)
	v.SetDefault("solver.max_nodes", s.MaxNodes)
	v.SetDefault("solver.branching", string(s.Branching))

	v.SetDefault("report.rounding_tol", 1e-6)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("log.compress", false)
}

// Load читает конфигурацию. path может быть пустым.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config error: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config error: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func (c *Config) Bounds() shopping.Bounds {
	b := c.Problem.Bounds
	return shopping.Bounds{
		CostMin:     b.CostMin,
		CostMax:     b.CostMax,
		CoverageMax: b.CoverageMax,
		TargetMin:   b.TargetMin,
		TargetMax:   b.TargetMax,
	}
}

func (c *Config) Simplex() simplex.Config {
	return simplex.Config{
		Tolerance:      c.Solver.Tolerance,
		IntegralityTol: c.Solver.IntegralityTol,
		MaxNodes:       c.Solver.MaxNodes,
		Branching:      simplex.Branching(c.Solver.Branching),
	}
}

func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:      c.Log.Level,
		Format:     c.Log.Format,
		File:       c.Log.File,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}
