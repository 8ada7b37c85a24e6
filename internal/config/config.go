package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/IdoSagiv/connect-four/internal/domain"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

type Config struct {
	PlayerARole  string
	PlayerBRole  string
	PlayerAColor string
	PlayerBColor string

	AIBudget  time.Duration
	MoveDelay time.Duration
	Rounds    int

	ScoreboardBackend string
	RedisURL          string
	RedisPassword     string

	DatabaseURL          string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	SpectatorAddr  string
	AllowedOrigins []string

	KafkaBrokers []string
	KafkaTopic   string
}

var AppConfig *Config

func LoadConfig() *Config {
	// Players
	playerARole := strings.ToLower(GetEnv("PLAYER_A_ROLE", string(domain.RoleHuman)))
	playerBRole := strings.ToLower(GetEnv("PLAYER_B_ROLE", string(domain.RoleComputer)))
	playerAColor := strings.ToLower(GetEnv("PLAYER_A_COLOR", "red"))
	playerBColor := strings.ToLower(GetEnv("PLAYER_B_COLOR", "blue"))

	// Pacing
	aiBudgetMs := GetEnvAsInt("AI_TIME_BUDGET_MS", 0)
	moveDelayMs := GetEnvAsInt("AI_MOVE_DELAY_MS", 200)
	rounds := GetEnvAsInt("ROUNDS", 0)

	// Scoreboard
	backend := strings.ToLower(GetEnv("SCOREBOARD_BACKEND", BackendMemory))
	redisURL := GetEnv("REDIS_URL", "localhost:6379")
	redisPassword := GetEnv("REDIS_PASSWORD", "")

	// Database Config
	dbURL := GetEnv("DATABASE_URL", "")
	dbMaxOpenConns := GetEnvAsInt("DB_MAX_OPEN_CONNS", 5)
	dbMaxIdleConns := GetEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	dbConnMaxLifetimeMin := GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5)

	// Spectators & analytics
	spectatorAddr := GetEnv("SPECTATOR_ADDR", "")
	allowedOrigins := splitCSV(GetEnv("ALLOWED_ORIGINS", ""))
	kafkaBrokers := splitCSV(GetEnv("KAFKA_BROKERS", ""))
	kafkaTopic := GetEnv("KAFKA_TOPIC", "connectfour.rounds")

	AppConfig = &Config{
		PlayerARole:          playerARole,
		PlayerBRole:          playerBRole,
		PlayerAColor:         playerAColor,
		PlayerBColor:         playerBColor,
		AIBudget:             time.Duration(nonNegative("AI_TIME_BUDGET_MS", aiBudgetMs)) * time.Millisecond,
		MoveDelay:            time.Duration(nonNegative("AI_MOVE_DELAY_MS", moveDelayMs)) * time.Millisecond,
		Rounds:               nonNegative("ROUNDS", rounds),
		ScoreboardBackend:    backend,
		RedisURL:             redisURL,
		RedisPassword:        redisPassword,
		DatabaseURL:          dbURL,
		DBMaxOpenConns:       dbMaxOpenConns,
		DBMaxIdleConns:       dbMaxIdleConns,
		DBConnMaxLifetimeMin: dbConnMaxLifetimeMin,
		SpectatorAddr:        spectatorAddr,
		AllowedOrigins:       allowedOrigins,
		KafkaBrokers:         kafkaBrokers,
		KafkaTopic:           kafkaTopic,
	}

	return AppConfig
}

// Validate rejects settings that cannot start a match.
func (c *Config) Validate() error {
	for _, role := range []string{c.PlayerARole, c.PlayerBRole} {
		if _, err := domain.ParseRole(role); err != nil {
			return err
		}
	}
	for _, color := range []string{c.PlayerAColor, c.PlayerBColor} {
		if !domain.IsColor(color) {
			return fmt.Errorf("unknown color %q, expected one of %s", color, strings.Join(domain.Colors, ", "))
		}
	}
	if c.PlayerAColor == c.PlayerBColor {
		return fmt.Errorf("both players use the color %q", c.PlayerAColor)
	}

	switch c.ScoreboardBackend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("SCOREBOARD_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown scoreboard backend %q", c.ScoreboardBackend)
	}
	return nil
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func nonNegative(key string, v int) int {
	if v < 0 {
		log.Printf("Negative value for %s: %d, using 0", key, v)
		return 0
	}
	return v
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
