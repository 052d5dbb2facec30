package rider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"marketplace/internal/entities"
	"marketplace/internal/repository"
	"marketplace/internal/service/rider"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var riderColumns = []string{
	"id",
	"name",
	"phone",
	"status",
	"transport_type",
	"last_seen_at",
	"created_at",
	"updated_at",
}

var _ rider.Repository = (*Repository)(nil)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)
	query := `INSERT INTO riders (id, name, phone, status, transport_type, last_seen_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + strings.Join(riderColumns, ", ")

	riderModel, err := scanRider(r.querier.QueryRow(
		ctx,
		query,
		riderModifyModel.ID,
		riderModifyModel.Name,
		riderModifyModel.Phone,
		riderModifyModel.Status,
		riderModifyModel.TransportType,
		riderModifyModel.LastSeenAt,
	))
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, rider.ErrConflict
		}
		return nil, fmt.Errorf("unexpected rider repository create error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

func (r *Repository) Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error) {
	riderModifyModel := FromDomainModify(&riderModifyEntity)

	builder := qb.
		Update("riders")

	// опциональные поля
	if riderModifyModel.Name != nil {
		builder = builder.Set("name", riderModifyModel.Name)
	}
	if riderModifyModel.Phone != nil {
		builder = builder.Set("phone", riderModifyModel.Phone)
	}
	if riderModifyModel.Status != nil {
		builder = builder.Set("status", riderModifyModel.Status)
	}
	if riderModifyModel.TransportType != nil {
		builder = builder.Set("transport_type", riderModifyModel.TransportType)
	}
	if riderModifyModel.LastSeenAt != nil {
		builder = builder.Set("last_seen_at", riderModifyModel.LastSeenAt)
	}

	builder = builder.Set("updated_at", sq.Expr("NOW()"))

	builder = builder.
		Where(sq.Eq{"id": riderModifyModel.ID}).
		Suffix("RETURNING " + strings.Join(riderColumns, ", "))

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	riderModel, err := scanRider(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}

		if repository.IsUniqueViolation(err) {
			return nil, rider.ErrConflict
		}

		return nil, fmt.Errorf("unexpected rider repository update error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Rider, error) {
	query, args, err := qb.
		Select(riderColumns...).
		From("riders").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	riderModel, err := scanRider(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, rider.ErrRiderNotFound
		}

		return nil, fmt.Errorf("unexpected rider repository getbyid error: %w", err)
	}

	return ToDomain(&riderModel), nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Rider, error) {
	query, args, err := qb.
		Select(riderColumns...).
		From("riders").
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
	}
	defer rows.Close()

	riderModels := make([]RiderDB, 0, 8)
	for rows.Next() {
		riderModel, err := scanRider(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
		}
		riderModels = append(riderModels, riderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected rider repository getall error: %w", err)
	}

	return ToDomainList(riderModels), nil
}

// PauseIdle переводит в paused доступных курьеров, молчащих с seenBefore.
func (r *Repository) PauseIdle(ctx context.Context, seenBefore time.Time) (int64, error) {
	query, args, err := qb.
		Update("riders").
		Set("status", entities.RiderPaused.String()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"status": entities.RiderAvailable.String()}).
		Where(sq.Or{
			sq.Eq{"last_seen_at": nil},
			sq.Lt{"last_seen_at": seenBefore},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected rider repository pause idle error: %w", err)
	}

	result, err := r.querier.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected rider repository pause idle error: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanRider(row pgx.Row) (RiderDB, error) {
	var riderModel RiderDB
	err := row.Scan(
		&riderModel.ID,
		&riderModel.Name,
		&riderModel.Phone,
		&riderModel.Status,
		&riderModel.TransportType,
		&riderModel.LastSeenAt,
		&riderModel.CreatedAt,
		&riderModel.UpdatedAt,
	)
	return riderModel, err
}
