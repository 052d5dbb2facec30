package tx

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/avito-tech/go-transaction-manager/trm/manager"
	"github.com/avito-tech/go-transaction-manager/trm/settings"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var TransactionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_transactions_total",
		Help: "Total number of database transactions by outcome",
	},
	[]string{"result"},
)

// Manager открывает транзакцию и кладёт её в ctx, откуда её забирает querier.
// Вложенный Do переиспользует внешнюю транзакцию.
type Manager struct {
	internal *manager.Manager
	settings pgxv5.Settings
}

// New менеджер в read committed: конкурентный UPDATE дожидается коммита
// соседа и перепроверяет условие по версии.
func New(db pgxv5.Transactional) *Manager {
	return &Manager{
		internal: manager.Must(pgxv5.NewDefaultFactory(db)),
		settings: pgxv5.MustSettings(
			settings.Must(),
			pgxv5.WithTxOptions(pgx.TxOptions{IsoLevel: pgx.ReadCommitted}),
		),
	}
}

func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	err := m.internal.DoWithSettings(ctx, m.settings, fn)
	if err != nil {
		TransactionsTotal.WithLabelValues("rollback").Inc()
		return err
	}
	TransactionsTotal.WithLabelValues("commit").Inc()
	return nil
}
