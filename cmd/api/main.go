package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidar/member-search/internal/app"
	"github.com/aidar/member-search/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:           "member-search",
		Short:         "Member search service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}

			// Инициализируем приложение (подключение к БД, миграции, роутинг)
			if err := application.Initialize(cmd.Context()); err != nil {
				application.Close()
				return fmt.Errorf("не удалось инициализировать приложение: %w", err)
			}

			return serve(application)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(_ *cobra.Command, _ []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			return application.Migrate()
		},
	}
}

func newSeedCmd() *cobra.Command {
	var members int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample teams and members",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := newApp()
			if err != nil {
				return err
			}
			defer application.Close()

			if !cmd.Flags().Changed("members") {
				members = application.Config().Seed.Members
			}

			created, err := application.Seed(cmd.Context(), members)
			if err != nil {
				return err
			}
			fmt.Printf("Создано участников: %d\n", created)
			return nil
		},
	}
	cmd.Flags().IntVarP(&members, "members", "n", 0, "number of members to create (defaults to SEED_MEMBERS)")
	return cmd
}

// newApp загружает конфигурацию из переменных окружения и создает приложение
func newApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить конфигурацию: %w", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать приложение: %w", err)
	}
	return application, nil
}

// serve запускает HTTP сервер и ждет SIGINT/SIGTERM для graceful shutdown
func serve(application *app.App) error {
	log := application.Logger()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Запускаем HTTP сервер в отдельной горутине
	errChan := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Остановка сервера")
	case err := <-errChan:
		application.Close()
		return fmt.Errorf("ошибка сервера: %w", err)
	}

	// Создаем контекст с таймаутом для graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("не удалось корректно остановить сервер: %w", err)
	}
	return nil
}
