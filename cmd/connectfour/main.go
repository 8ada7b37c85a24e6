package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/IdoSagiv/connect-four/internal/analytics"
	"github.com/IdoSagiv/connect-four/internal/config"
	"github.com/IdoSagiv/connect-four/internal/domain"
	"github.com/IdoSagiv/connect-four/internal/repository/postgres"
	"github.com/IdoSagiv/connect-four/internal/repository/redis"
	"github.com/IdoSagiv/connect-four/internal/service/match"
	"github.com/IdoSagiv/connect-four/internal/service/scoreboard"
	"github.com/IdoSagiv/connect-four/internal/transport/console"
	transportHttp "github.com/IdoSagiv/connect-four/internal/transport/http"
	"github.com/IdoSagiv/connect-four/internal/transport/websocket"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Score storage
	store, closeStore := openStore(cfg)
	defer closeStore()
	scores := scoreboard.NewService(store)

	// 2. Players
	players, err := buildPlayers(cfg)
	if err != nil {
		log.Fatalf("Invalid players: %v", err)
	}

	// 3. Observers
	var observers []match.Observer

	var srv *http.Server
	if cfg.SpectatorAddr != "" {
		hub := websocket.NewHub()
		defer hub.Close()
		observers = append(observers, hub)

		wsHandler := websocket.NewHandler(hub, cfg.AllowedOrigins)
		watchHandler := transportHttp.NewWatchHandler(hub, scores)
		router := transportHttp.NewRouter(watchHandler, wsHandler.HandleWebSocket, cfg.AllowedOrigins)

		srv = &http.Server{Addr: cfg.SpectatorAddr, Handler: router}
		go func() {
			log.Printf("Spectator server starting on %s", cfg.SpectatorAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Spectator server error: %v", err)
			}
		}()
	}

	if publisher := analytics.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic); publisher != nil {
		defer publisher.Close()
		observers = append(observers, publisher)
	}

	// 4. Play
	presenter := console.NewPresenter(os.Stdin, os.Stdout, os.Getenv("NO_COLOR") == "")
	session, err := match.NewSession(players, presenter, scores, match.Options{
		Rounds:    cfg.Rounds,
		AIBudget:  cfg.AIBudget,
		MoveDelay: cfg.MoveDelay,
	}, observers...)
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Match stopped: %v", err)
	}

	if srv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Spectator server forced to shutdown: %v", err)
		}
	}
	log.Println("Goodbye")
}

func buildPlayers(cfg *config.Config) ([2]*domain.Player, error) {
	roleA, err := domain.ParseRole(cfg.PlayerARole)
	if err != nil {
		return [2]*domain.Player{}, err
	}
	roleB, err := domain.ParseRole(cfg.PlayerBRole)
	if err != nil {
		return [2]*domain.Player{}, err
	}
	return [2]*domain.Player{
		domain.NewPlayer(domain.PlayerA, 0, cfg.PlayerAColor, roleA),
		domain.NewPlayer(domain.PlayerB, 0, cfg.PlayerBColor, roleB),
	}, nil
}

// openStore picks the scoreboard backend. Redis falls back to memory when the
// server is unreachable; postgres is required once selected.
func openStore(cfg *config.Config) (scoreboard.Store, func()) {
	switch cfg.ScoreboardBackend {
	case config.BackendRedis:
		if err := redis.InitRedis(cfg.RedisURL, cfg.RedisPassword); err != nil {
			log.Printf("Failed to initialize Redis: %v", err)
		}
		if redis.IsRedisEnabled() && redis.RedisClient != nil {
			return redis.NewScoreStore(redis.RedisClient), func() { redis.CloseRedis() }
		}
		redis.CloseRedis()
		return scoreboard.NewMemoryStore(), func() {}

	case config.BackendPostgres:
		db, err := postgres.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetimeMin)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		log.Println("Running database migrations...")
		if err := postgres.RunMigrations(db); err != nil {
			db.Close()
			log.Fatalf("Migration failed: %v", err)
		}
		return postgres.NewScoreRepo(db), closeDB(db)
	}

	return scoreboard.NewMemoryStore(), func() {}
}

func closeDB(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Printf("[DB] Close error: %v", err)
		}
	}
}
