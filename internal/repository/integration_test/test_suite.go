// Package integration_test общая база для интеграционных тестов репозиториев.
// Переменные POSTGRES_* подгружает Makefile из .env.test.
package integration_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"marketplace/internal/pkg/config"
	"marketplace/internal/pkg/postgres"
	"marketplace/pkg/logger/zap_adapter"
	"marketplace/pkg/querier"
	"marketplace/pkg/tx"
)

const statementTimeout = 2 * time.Second

// пул живёт весь прогон пакета, миграции применяются один раз
var sharedPool = sync.OnceValues(func() (*pgxpool.Pool, error) {
	ctx := context.Background()

	log, err := zap_adapter.NewZapAdapter("warn")
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewConnPool(ctx, log, &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		MaxConns: 4,
	})
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(ctx, log, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
})

func pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	p, err := sharedPool()
	require.NoError(t, err, "integration database is not available")
	return p
}

func GetQuerier(t *testing.T) *querier.Querier {
	t.Helper()
	return querier.New(pool(t), pgxv5.DefaultCtxGetter)
}

func GetTxManager(t *testing.T) *tx.Manager {
	t.Helper()
	return tx.New(pool(t))
}

// SetupDB выполняет setupSQL и чистит таблицы по завершении теста.
func SetupDB(t *testing.T, setupSQL string) {
	t.Helper()
	t.Cleanup(func() { truncate(t) })

	if setupSQL == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := pool(t).Exec(ctx, setupSQL)
	require.NoError(t, err)
}

func truncate(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), statementTimeout)
	defer cancel()

	_, err := pool(t).Exec(ctx, `TRUNCATE TABLE offer_status_history, offers, riders CASCADE`)
	require.NoError(t, err)
}
