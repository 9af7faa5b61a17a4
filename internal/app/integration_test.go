package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aidar/member-search/internal/config"
	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/handler"
)

// setupTestApp поднимает PostgreSQL контейнер и инициализирует приложение с миграциями и seed
func setupTestApp(t *testing.T, members int) *App {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("member_search_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Database.Host = host
	cfg.Database.Port = port.Port()
	cfg.Database.User = "test_user"
	cfg.Database.Password = "test_password"
	cfg.Database.Name = "member_search_test"
	cfg.Database.MigrationsPath = filepath.Join(getProjectRoot(t), "migrations")
	cfg.Database.AutoMigrate = true
	cfg.Seed.OnStart = true
	cfg.Seed.Members = members

	application := &App{config: cfg, logger: zerolog.Nop()}
	require.NoError(t, application.Initialize(ctx))
	t.Cleanup(application.Close)

	return application
}

// getProjectRoot находит корень проекта по go.mod
func getProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("Could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

func getJSON(t *testing.T, h http.Handler, target string, out any) int {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
	}
	return rec.Code
}

func TestApp_SeededSearch(t *testing.T) {
	application := setupTestApp(t, 100)
	h := application.server.Handler

	// Повторный seed ничего не добавляет
	created, err := application.Seed(context.Background(), 100)
	require.NoError(t, err)
	assert.Zero(t, created)

	t.Run("unpaged search by team and age", func(t *testing.T) {
		var rows []domain.MemberTeam
		require.Equal(t, http.StatusOK, getJSON(t, h, "/v1/members?teamName=teamA&ageGoe=10&ageLoe=20", &rows))
		// Четные возраста 10..20
		require.Len(t, rows, 6)
		for _, r := range rows {
			assert.Zero(t, r.Age%2)
			assert.Equal(t, "teamA", *r.TeamName)
		}
	})

	t.Run("paged search agrees across strategies", func(t *testing.T) {
		var pages []handler.PageResponse
		for _, strategy := range []string{"simple", "split", "optimized"} {
			var page handler.PageResponse
			require.Equal(t, http.StatusOK, getJSON(t, h, "/v2/members?ageGoe=35&page=1&size=10&sort=age,desc&strategy="+strategy, &page))
			pages = append(pages, page)
		}
		for _, page := range pages {
			assert.Equal(t, int64(65), page.Total)
			assert.Equal(t, int64(7), page.TotalPages)
			assert.Equal(t, int64(1), page.Number)
			assert.False(t, page.Last)
			require.Len(t, page.Content, 10)
			assert.Equal(t, 89, page.Content[0].Age)
			assert.Equal(t, pages[0].Content, page.Content)
		}
	})

	t.Run("last page", func(t *testing.T) {
		var page handler.PageResponse
		require.Equal(t, http.StatusOK, getJSON(t, h, "/v2/members?offset=95&limit=10", &page))
		assert.Equal(t, int64(100), page.Total)
		assert.Len(t, page.Content, 5)
		assert.True(t, page.Last)
	})

	t.Run("team stats", func(t *testing.T) {
		var resp handler.TeamStatsResponse
		require.Equal(t, http.StatusOK, getJSON(t, h, "/v1/teams/stats", &resp))
		require.Len(t, resp.Teams, 2)
		assert.Equal(t, int64(50), resp.Teams[0].MemberCount)
		assert.Equal(t, 0, resp.Teams[0].AgeMin)
		assert.Equal(t, 98, resp.Teams[0].AgeMax)
		assert.Equal(t, 99, resp.Teams[1].AgeMax)
	})

	t.Run("username lookup", func(t *testing.T) {
		var members []domain.Member
		require.Equal(t, http.StatusOK, getJSON(t, h, "/v1/members/by-username/member42", &members))
		require.Len(t, members, 1)
		assert.Equal(t, 42, members[0].Age)
	})

	t.Run("unknown team", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, getJSON(t, h, "/v1/teams/999999/members", nil))
	})
}
