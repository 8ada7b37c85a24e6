package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	if cfg.PlayerARole != "human" || cfg.PlayerBRole != "computer" {
		t.Fatalf("roles = %s/%s", cfg.PlayerARole, cfg.PlayerBRole)
	}
	if cfg.MoveDelay != 200*time.Millisecond || cfg.AIBudget != 0 {
		t.Fatalf("delay=%v budget=%v", cfg.MoveDelay, cfg.AIBudget)
	}
	if cfg.ScoreboardBackend != BackendMemory || cfg.KafkaTopic != "connectfour.rounds" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PLAYER_A_ROLE", "Computer")
	t.Setenv("PLAYER_B_COLOR", "green")
	t.Setenv("AI_TIME_BUDGET_MS", "100")
	t.Setenv("ROUNDS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg := LoadConfig()
	if cfg.PlayerARole != "computer" || cfg.PlayerBColor != "green" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.AIBudget != 100*time.Millisecond {
		t.Fatalf("AIBudget = %v", cfg.AIBudget)
	}
	if cfg.Rounds != 0 {
		t.Fatalf("invalid ROUNDS should fall back to 0, got %d", cfg.Rounds)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if len(cfg.KafkaBrokers) != 2 {
		t.Fatalf("KafkaBrokers = %v", cfg.KafkaBrokers)
	}
}

func TestNegativeDurationsClampToZero(t *testing.T) {
	t.Setenv("AI_MOVE_DELAY_MS", "-5")
	if cfg := LoadConfig(); cfg.MoveDelay != 0 {
		t.Fatalf("MoveDelay = %v, want 0", cfg.MoveDelay)
	}
}

func TestValidateRejectsBadSettings(t *testing.T) {
	base := func() *Config {
		return &Config{
			PlayerARole:       "human",
			PlayerBRole:       "computer",
			PlayerAColor:      "red",
			PlayerBColor:      "blue",
			ScoreboardBackend: BackendMemory,
		}
	}

	cases := map[string]func(c *Config){
		"role":         func(c *Config) { c.PlayerBRole = "robot" },
		"color":        func(c *Config) { c.PlayerAColor = "pink" },
		"same color":   func(c *Config) { c.PlayerBColor = "red" },
		"backend":      func(c *Config) { c.ScoreboardBackend = "sqlite" },
		"postgres dsn": func(c *Config) { c.ScoreboardBackend = BackendPostgres },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}
