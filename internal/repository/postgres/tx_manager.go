package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/member-search/internal/domain"
	"github.com/aidar/member-search/internal/repository"
)

// TxManager открывает транзакции на пуле и выдает репозитории поверх pgx.Tx
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager создает новый TxManager
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithinTx выполняет fn в одной транзакции
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	var fnErr error
	err := pgx.BeginFunc(ctx, m.pool, func(tx pgx.Tx) error {
		fnErr = fn(ctx, repository.Repositories{
			Teams:   NewTeamRepository(tx),
			Members: NewMemberRepository(tx),
		})
		return fnErr
	})
	if err != nil {
		// Ошибки fn возвращаются как есть, сбои begin/commit - как DataAccessError
		if fnErr != nil {
			return fnErr
		}
		return domain.NewDataAccessError("transaction", err)
	}
	return nil
}

var _ repository.TxManager = (*TxManager)(nil)
