package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/plandesk/admin-api/internal/domain"
)

// PlanRepository encapsulates subscription plan persistence.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) error
	Update(ctx context.Context, plan *domain.Plan) error
	GetByID(ctx context.Context, id string) (*domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id string) error
	// UpdateSerials reassigns serials in one transaction so a partial reorder
	// can never be persisted.
	UpdateSerials(ctx context.Context, serials map[string]int) error
}

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository instantiates repository.
func NewPlanRepository(pool *pgxpool.Pool) PlanRepository {
	return &planRepository{pool: pool}
}

const planColumns = `id, name, slug, description, duration_value, duration_unit,
       price, features, is_trial, post_trial_plan_id, is_active, serial, created_at, updated_at`

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	const query = `
        INSERT INTO plans (name, slug, description, duration_value, duration_unit, price, features, is_trial, post_trial_plan_id, is_active, serial)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Slug,
		plan.Description,
		plan.DurationValue,
		plan.DurationUnit,
		plan.Price,
		plan.Features,
		plan.IsTrial,
		plan.PostTrialPlanID,
		plan.IsActive,
		plan.Serial,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	const query = `
        UPDATE plans SET name=$1, slug=$2, description=$3, duration_value=$4, duration_unit=$5,
            price=$6, features=$7, is_trial=$8, post_trial_plan_id=$9, is_active=$10, serial=$11, updated_at=NOW()
        WHERE id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		plan.Name,
		plan.Slug,
		plan.Description,
		plan.DurationValue,
		plan.DurationUnit,
		plan.Price,
		plan.Features,
		plan.IsTrial,
		plan.PostTrialPlanID,
		plan.IsActive,
		plan.Serial,
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*domain.Plan, error) {
	var plan domain.Plan
	if err := r.pool.QueryRow(ctx, `SELECT `+planColumns+` FROM plans WHERE id=$1`, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Slug,
		&plan.Description,
		&plan.DurationValue,
		&plan.DurationUnit,
		&plan.Price,
		&plan.Features,
		&plan.IsTrial,
		&plan.PostTrialPlanID,
		&plan.IsActive,
		&plan.Serial,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+planColumns+` FROM plans ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Plan
	for rows.Next() {
		var plan domain.Plan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Slug,
			&plan.Description,
			&plan.DurationValue,
			&plan.DurationUnit,
			&plan.Price,
			&plan.Features,
			&plan.IsTrial,
			&plan.PostTrialPlanID,
			&plan.IsActive,
			&plan.Serial,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepository) UpdateSerials(ctx context.Context, serials map[string]int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for id, serial := range serials {
		cmd, err := tx.Exec(ctx, `UPDATE plans SET serial=$1, updated_at=NOW() WHERE id=$2`, serial, id)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return pgx.ErrNoRows
		}
	}
	return tx.Commit(ctx)
}
