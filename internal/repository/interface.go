package repository

import (
	"context"

	"github.com/aidar/member-search/internal/domain"
)

// MemberRepository определяет методы для работы с данными участников
type MemberRepository interface {
	// Create создает участника и заполняет member.ID
	Create(ctx context.Context, member *domain.Member) error

	// GetByID получает участника по ID
	GetByID(ctx context.Context, memberID int64) (*domain.Member, error)

	// FindByUsername возвращает всех участников с указанным именем
	FindByUsername(ctx context.Context, username string) ([]*domain.Member, error)

	// ChangeTeam переводит участника в другую команду (nil - исключить из команды)
	ChangeTeam(ctx context.Context, memberID int64, teamID *int64) error

	// ListByTeam возвращает участников команды, упорядоченных по ID
	ListByTeam(ctx context.Context, teamID int64) ([]*domain.Member, error)
}

// TeamRepository определяет методы для работы с данными команд
type TeamRepository interface {
	// Create создает команду и заполняет team.ID
	Create(ctx context.Context, team *domain.Team) error

	// GetByID получает команду по ID
	GetByID(ctx context.Context, teamID int64) (*domain.Team, error)

	// GetByName получает команду по имени
	GetByName(ctx context.Context, name string) (*domain.Team, error)

	// AgeStats возвращает агрегаты по возрасту для каждой команды
	AgeStats(ctx context.Context) ([]domain.TeamAgeStats, error)
}

// MemberSearchRepository определяет поиск участников с проекцией в domain.MemberTeam
type MemberSearchRepository interface {
	// Search возвращает все строки, удовлетворяющие условию, без пагинации
	Search(ctx context.Context, cond domain.MemberSearchCondition) ([]domain.MemberTeam, error)

	// SearchPageSimple получает окно и total за один запрос
	SearchPageSimple(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error)

	// SearchPageSplit получает окно и total двумя независимыми запросами
	SearchPageSplit(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error)

	// SearchPageOptimized выполняет count-запрос только если total нельзя вывести из окна
	SearchPageOptimized(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest) (*domain.Page, error)
}

// Repositories - набор репозиториев, работающих в одной транзакции
type Repositories struct {
	Teams   TeamRepository
	Members MemberRepository
}

// TxManager выполняет fn в транзакции: commit если fn вернула nil, иначе rollback
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
