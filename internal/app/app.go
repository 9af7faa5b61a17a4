package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aidar/member-search/internal/config"
	"github.com/aidar/member-search/internal/handler"
	"github.com/aidar/member-search/internal/logger"
	"github.com/aidar/member-search/internal/middleware"
	"github.com/aidar/member-search/internal/repository/postgres"
	"github.com/aidar/member-search/internal/service"
)

// requestTimeout ограничивает и обработку запроса (middleware), и запись ответа сервером
const requestTimeout = 15 * time.Second

// App представляет приложение со всеми зависимостями
type App struct {
	config *config.Config
	db     *pgxpool.Pool
	server *http.Server
	logger zerolog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: cfg.Log.ServiceName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	app := &App{
		config: cfg,
		logger: log,
	}

	return app, nil
}

// Logger возвращает логгер приложения
func (a *App) Logger() zerolog.Logger {
	return a.logger
}

// Initialize подключается к БД, применяет миграции, при необходимости загружает
// тестовые данные и настраивает HTTP сервер
func (a *App) Initialize(ctx context.Context) error {
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if a.config.Database.AutoMigrate {
		if err := a.Migrate(); err != nil {
			return err
		}
	}

	if a.config.Seed.OnStart {
		if _, err := a.Seed(ctx, a.config.Seed.Members); err != nil {
			return err
		}
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info().Msg("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	if a.db != nil {
		return nil
	}

	pool, err := postgres.Connect(ctx, a.config.Database, a.logger.With().Str("component", "pgx").Logger())
	if err != nil {
		return err
	}

	a.db = pool
	a.logger.Info().Str("host", a.config.Database.Host).Str("db", a.config.Database.Name).Msg("Connected to database")
	return nil
}

// Migrate применяет миграции схемы
func (a *App) Migrate() error {
	if err := postgres.Migrate(a.config.Database.DSN(), a.config.Database.MigrationsPath); err != nil {
		return err
	}
	a.logger.Info().Str("path", a.config.Database.MigrationsPath).Msg("Migrations applied")
	return nil
}

// Seed загружает тестовые команды и участников
func (a *App) Seed(ctx context.Context, members int) (int, error) {
	if err := a.connectDB(ctx); err != nil {
		return 0, fmt.Errorf("failed to connect to database: %w", err)
	}

	seeder := service.NewSeedService(postgres.NewTxManager(a.db), a.logger)
	created, err := seeder.Seed(ctx, members)
	if err != nil {
		return created, fmt.Errorf("failed to seed data: %w", err)
	}
	return created, nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.router(),
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info().Str("addr", addr).Msg("HTTP server configured")
}

func (a *App) router() http.Handler {
	// Слой репозиториев
	memberRepo := postgres.NewMemberRepository(a.db)
	teamRepo := postgres.NewTeamRepository(a.db)
	searchRepo := postgres.NewMemberSearchRepository(a.db, a.config.Pagination.Policy(), a.logger)

	// Слой сервисов
	searchService := service.NewMemberSearchService(searchRepo, a.config.Pagination, a.logger)
	memberService := service.NewMemberService(memberRepo)
	teamService := service.NewTeamService(teamRepo, memberRepo)

	// HTTP обработчики
	memberHandler := handler.NewMemberHandler(searchService, memberService, a.config.Pagination.DefaultSize)
	teamHandler := handler.NewTeamHandler(teamService)

	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(a.logger.With().Str("component", "http").Logger()))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error().Err(err).Msg("Failed to write health check response")
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/members", func(r chi.Router) {
			r.Get("/", memberHandler.SearchMembers)
			r.Post("/", memberHandler.CreateMember)
			r.Get("/by-username/{username}", memberHandler.FindByUsername)
			r.Get("/{memberID}", memberHandler.GetMember)
			r.Post("/{memberID}/team", memberHandler.ChangeTeam)
		})
		r.Route("/teams", func(r chi.Router) {
			r.Post("/", teamHandler.AddTeam)
			r.Get("/stats", teamHandler.GetTeamStats)
			r.Get("/{teamID}/members", teamHandler.GetTeamMembers)
		})
	})

	// Постраничный поиск
	r.Get("/v2/members", memberHandler.SearchMembersPage)

	return r
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info().Str("addr", a.server.Addr).Msg("Starting HTTP server")
	return a.server.ListenAndServe()
}

// Close закрывает подключения к базе данных
func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	a.Close()

	a.logger.Info().Msg("Application stopped gracefully")
	return nil
}

// Config возвращает конфигурацию приложения
func (a *App) Config() *config.Config {
	return a.config
}
