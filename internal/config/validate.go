package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading or after overriding fields; Load calls it
// automatically.
func (c *Config) Validate() error {
	if err := c.Store.validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}

	if err := c.Intake.validate(); err != nil {
		return fmt.Errorf("intake: %w", err)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.WriteRateLimit < 0 {
		return fmt.Errorf("server.write_rate_limit must be >= 0 (got %d)", c.Server.WriteRateLimit)
	}

	return nil
}

func (s *StoreConfig) validate() error {
	s.Engine = strings.ToLower(strings.TrimSpace(s.Engine))

	switch s.Engine {
	case EngineSQLite:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("path is required for the %s engine", EngineSQLite)
		}
		if s.BusyTimeout < 0 {
			return fmt.Errorf("busy_timeout must be >= 0 (got %v)", s.BusyTimeout)
		}
	case EnginePostgres:
		if strings.TrimSpace(s.DSN) == "" {
			return fmt.Errorf("dsn is required for the %s engine", EnginePostgres)
		}
		if s.MaxConns <= 0 {
			return fmt.Errorf("max_conns must be > 0 (got %d)", s.MaxConns)
		}
		if s.MinConns < 0 || s.MinConns > s.MaxConns {
			return fmt.Errorf("min_conns must be in 0..max_conns (got %d)", s.MinConns)
		}
	case EngineMemory:
	default:
		return fmt.Errorf("unknown engine %q (want %s, %s or %s)", s.Engine, EngineSQLite, EnginePostgres, EngineMemory)
	}

	if s.OpenTimeout <= 0 {
		return fmt.Errorf("open_timeout must be > 0 (got %v)", s.OpenTimeout)
	}

	return nil
}

func (i *IntakeConfig) validate() error {
	if i.MaxAmount <= 0 {
		return fmt.Errorf("max_amount must be > 0 (got %v)", i.MaxAmount)
	}
	if strings.TrimSpace(i.Unit) == "" {
		return fmt.Errorf("unit must not be empty")
	}

	loc, err := ParseLocation(i.Timezone)
	if err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	i.Location = loc

	return nil
}

// ParseLocation resolves an IANA zone name. An empty name means the
// process-local zone.
func ParseLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.Local, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid zone %q: %w", name, err)
	}

	return loc, nil
}
