package offer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"marketplace/internal/entities"
	"marketplace/internal/repository"
	"marketplace/internal/service/offer"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var offerColumns = []string{
	"id",
	"business_id",
	"rider_id",
	"status",
	"description",
	"package_size",
	"price",
	"currency",
	"pickup_code_required",
	"pickup",
	"delivery",
	"timeline",
	"payment",
	"dispute",
	"cancellation",
	"version",
	"created_at",
	"updated_at",
}

var _ offer.Repository = (*Repository)(nil)

type Repository struct {
	querier   Querier
	txManager TxManager
}

func New(querier Querier, txManager TxManager) *Repository {
	return &Repository{
		querier:   querier,
		txManager: txManager,
	}
}

func (r *Repository) Create(ctx context.Context, offerCreate entities.OfferCreate) (*entities.Offer, error) {
	offerDB, err := FromDomainCreate(offerCreate)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository create error: %w", err)
	}
	historyDB, err := FromDomainHistory(offerDB.ID, offerDB.Version, offerCreate.InitialEntry)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository create error: %w", err)
	}

	query, args, err := qb.
		Insert("offers").
		Columns(offerColumns...).
		Values(
			offerDB.ID,
			offerDB.BusinessID,
			offerDB.RiderID,
			offerDB.Status,
			offerDB.Description,
			offerDB.PackageSize,
			offerDB.Price,
			offerDB.Currency,
			offerDB.PickupCodeRequired,
			offerDB.Pickup,
			offerDB.Delivery,
			offerDB.Timeline,
			offerDB.Payment,
			offerDB.Dispute,
			offerDB.Cancellation,
			offerDB.Version,
			offerDB.CreatedAt,
			offerDB.UpdatedAt,
		).
		Suffix("RETURNING " + strings.Join(offerColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository create error: %w", err)
	}

	var created *entities.Offer
	err = r.txManager.Do(ctx, func(ctx context.Context) error {
		stored, err := scanOffer(r.querier.QueryRow(ctx, query, args...))
		if err != nil {
			if repository.IsUniqueViolation(err) {
				return offer.ErrConflict
			}
			return fmt.Errorf("insert offer: %w", err)
		}

		err = r.insertHistory(ctx, historyDB)
		if err != nil {
			return err
		}

		created, err = ToDomain(&stored, []HistoryDB{historyDB})
		return err
	})
	if err != nil {
		if errors.Is(err, offer.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("unexpected offer repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Offer, error) {
	query, args, err := qb.
		Select(offerColumns...).
		From("offers").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbyid error: %w", err)
	}

	stored, err := scanOffer(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, offer.ErrOfferNotFound
		}
		return nil, fmt.Errorf("unexpected offer repository getbyid error: %w", err)
	}

	history, err := r.getHistory(ctx, []string{id})
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbyid error: %w", err)
	}

	result, err := ToDomain(&stored, upToVersion(history[id], stored.Version))
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbyid error: %w", err)
	}
	return result, nil
}

// GetByStatus страница предложений в порядке создания.
func (r *Repository) GetByStatus(
	ctx context.Context,
	status entities.OfferStatusType,
	limit, offset uint64,
) ([]entities.Offer, error) {
	query, args, err := qb.
		Select(offerColumns...).
		From("offers").
		Where(sq.Eq{"status": status.String()}).
		OrderBy("created_at", "id").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbystatus error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbystatus error: %w", err)
	}
	defer rows.Close()

	offersDB := make([]OfferDB, 0, limit)
	for rows.Next() {
		stored, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected offer repository getbystatus error: %w", err)
		}
		offersDB = append(offersDB, stored)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbystatus error: %w", err)
	}

	if len(offersDB) == 0 {
		return []entities.Offer{}, nil
	}

	ids := make([]string, len(offersDB))
	for i := range offersDB {
		ids[i] = offersDB[i].ID
	}
	history, err := r.getHistory(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository getbystatus error: %w", err)
	}

	result := make([]entities.Offer, 0, len(offersDB))
	for i := range offersDB {
		domain, err := ToDomain(&offersDB[i], upToVersion(history[offersDB[i].ID], offersDB[i].Version))
		if err != nil {
			return nil, fmt.Errorf("unexpected offer repository getbystatus error: %w", err)
		}
		result = append(result, *domain)
	}
	return result, nil
}

// ConditionalUpdate применяет delta только если версия в базе равна expectedVersion.
// Обновление строки и запись истории идут в одной транзакции.
func (r *Repository) ConditionalUpdate(
	ctx context.Context,
	id string,
	expectedVersion int64,
	delta entities.OfferDelta,
) (*entities.Offer, error) {
	deltaDB, err := FromDomainDelta(delta)
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository update error: %w", err)
	}

	builder := qb.
		Update("offers").
		Set("status", deltaDB.Status)

	// опциональные поля
	if deltaDB.RiderID != nil {
		builder = builder.Set("rider_id", deltaDB.RiderID)
	}
	if deltaDB.Pickup != nil {
		builder = builder.Set("pickup", deltaDB.Pickup)
	}
	if deltaDB.Delivery != nil {
		builder = builder.Set("delivery", deltaDB.Delivery)
	}
	if deltaDB.Payment != nil {
		builder = builder.Set("payment", deltaDB.Payment)
	}
	if deltaDB.Dispute != nil {
		builder = builder.Set("dispute", deltaDB.Dispute)
	}
	if deltaDB.Cancellation != nil {
		builder = builder.Set("cancellation", deltaDB.Cancellation)
	}

	// существующие ключи слева перекрывают новые: веха пишется один раз
	query, args, err := builder.
		Set("timeline", sq.Expr("?::jsonb || timeline", deltaDB.TimelineAdd)).
		Set("version", sq.Expr("version + 1")).
		Set("updated_at", deltaDB.UpdatedAt).
		Where(sq.Eq{"id": id, "version": expectedVersion}).
		Suffix("RETURNING " + strings.Join(offerColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected offer repository update error: %w", err)
	}

	var updated *entities.Offer
	err = r.txManager.Do(ctx, func(ctx context.Context) error {
		stored, err := scanOffer(r.querier.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return r.missingOrStale(ctx, id)
			}
			return fmt.Errorf("update offer: %w", err)
		}

		historyDB, err := FromDomainHistory(id, stored.Version, delta.HistoryAppend)
		if err != nil {
			return err
		}
		err = r.insertHistory(ctx, historyDB)
		if err != nil {
			return err
		}

		history, err := r.getHistory(ctx, []string{id})
		if err != nil {
			return err
		}

		updated, err = ToDomain(&stored, upToVersion(history[id], stored.Version))
		return err
	})
	if err != nil {
		if errors.Is(err, offer.ErrOfferNotFound) || errors.Is(err, offer.ErrConcurrentModification) {
			return nil, err
		}
		if repository.IsConcurrencyConflict(err) {
			return nil, offer.ErrConcurrentModification
		}
		return nil, fmt.Errorf("unexpected offer repository update error: %w", err)
	}

	return updated, nil
}

func (r *Repository) missingOrStale(ctx context.Context, id string) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM offers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check offer existence: %w", err)
	}
	if !exists {
		return offer.ErrOfferNotFound
	}
	return offer.ErrConcurrentModification
}

func (r *Repository) insertHistory(ctx context.Context, h HistoryDB) error {
	query := `
		INSERT INTO offer_status_history (offer_id, seq, status, updated_by, notes, location, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.querier.Exec(ctx, query, h.OfferID, h.Seq, h.Status, h.UpdatedBy, h.Notes, h.Location, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return nil
}

func (r *Repository) getHistory(ctx context.Context, offerIDs []string) (map[string][]HistoryDB, error) {
	query := `
		SELECT offer_id, seq, status, updated_by, notes, location, created_at
		FROM offer_status_history
		WHERE offer_id = ANY($1)
		ORDER BY offer_id, seq
	`

	rows, err := r.querier.Query(ctx, query, offerIDs)
	if err != nil {
		return nil, fmt.Errorf("select status history: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]HistoryDB, len(offerIDs))
	for rows.Next() {
		var h HistoryDB
		err := rows.Scan(&h.OfferID, &h.Seq, &h.Status, &h.UpdatedBy, &h.Notes, &h.Location, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan status history: %w", err)
		}
		result[h.OfferID] = append(result[h.OfferID], h)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("select status history: %w", err)
	}
	return result, nil
}

// upToVersion отбрасывает записи, дописанные после чтения строки offers.
func upToVersion(history []HistoryDB, version int64) []HistoryDB {
	for i, h := range history {
		if h.Seq > version {
			return history[:i]
		}
	}
	return history
}

func scanOffer(row pgx.Row) (OfferDB, error) {
	var o OfferDB
	err := row.Scan(
		&o.ID,
		&o.BusinessID,
		&o.RiderID,
		&o.Status,
		&o.Description,
		&o.PackageSize,
		&o.Price,
		&o.Currency,
		&o.PickupCodeRequired,
		&o.Pickup,
		&o.Delivery,
		&o.Timeline,
		&o.Payment,
		&o.Dispute,
		&o.Cancellation,
		&o.Version,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	return o, err
}
