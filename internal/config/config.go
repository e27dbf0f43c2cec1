package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/droneflow/settlements/internal/model"
	"github.com/droneflow/settlements/internal/settlement"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
}

// BusinessConfig carries the settlement constants: the flat monthly salary
// charged against the shared pool, the internal per-hectare rate billed on a
// field partner's own farm, and the beneficiary roster.
type BusinessConfig struct {
	FixedSalary    float64
	PerHectareRate float64
	FieldPartners  []string
	OperatorName   string
	ReserveName    string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Business    BusinessConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Business: BusinessConfig{
			FixedSalary:    v.GetFloat64("BUSINESS_FIXED_SALARY"),
			PerHectareRate: v.GetFloat64("BUSINESS_HECTARE_RATE"),
			FieldPartners:  parseList(v.GetString("BUSINESS_FIELD_PARTNERS")),
			OperatorName:   v.GetString("BUSINESS_OPERATOR"),
			ReserveName:    v.GetString("BUSINESS_RESERVE"),
		},
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7410
	}
	if cfg.Business.FixedSalary == 0 {
		cfg.Business.FixedSalary = 5000
	}
	if cfg.Business.PerHectareRate == 0 {
		cfg.Business.PerHectareRate = 100
	}
	if len(cfg.Business.FieldPartners) == 0 {
		cfg.Business.FieldPartners = []string{"Kaka", "Patrick"}
	}
	if cfg.Business.OperatorName == "" {
		cfg.Business.OperatorName = "Geraldo"
	}
	if cfg.Business.ReserveName == "" {
		cfg.Business.ReserveName = "Reserva"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rules assembles the engine configuration in payout order: the two field
// partners, then the salaried operator, then the reserve fund.
func (b BusinessConfig) Rules() settlement.Rules {
	beneficiaries := make([]model.Beneficiary, 0, len(b.FieldPartners)+2)
	for _, name := range b.FieldPartners {
		beneficiaries = append(beneficiaries, model.Beneficiary{
			Name:     name,
			FullName: name + " (Sócio)",
			Role:     model.RoleFieldPartner,
		})
	}
	beneficiaries = append(beneficiaries,
		model.Beneficiary{Name: b.OperatorName, FullName: b.OperatorName, Role: model.RoleOperator},
		model.Beneficiary{Name: b.ReserveName, FullName: "Fundo de Reserva", Role: model.RoleReserve},
	)
	return settlement.Rules{
		FixedSalary:    b.FixedSalary,
		PerHectareRate: b.PerHectareRate,
		Beneficiaries:  beneficiaries,
	}
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if len(cfg.Business.FieldPartners) != 2 {
		return fmt.Errorf("BUSINESS_FIELD_PARTNERS must name exactly two partners")
	}
	if cfg.Business.FixedSalary < 0 {
		return fmt.Errorf("BUSINESS_FIXED_SALARY must not be negative")
	}
	if cfg.Business.PerHectareRate < 0 {
		return fmt.Errorf("BUSINESS_HECTARE_RATE must not be negative")
	}
	names := map[string]struct{}{}
	for _, name := range append(append([]string{}, cfg.Business.FieldPartners...), cfg.Business.OperatorName, cfg.Business.ReserveName) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("beneficiary names must not be empty")
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("beneficiary name %q duplicated", name)
		}
		names[name] = struct{}{}
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
