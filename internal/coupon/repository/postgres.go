package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nakula/catalog-admin-service/internal/coupon/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Coupon) error {
	query := `
        INSERT INTO coupons (id, merchant_id, code, description, discount_kind, discount_value,
            min_order_value, usage_limit, used_count, expires_at, is_active, created_at, updated_at)
        VALUES (:id, :merchant_id, :code, :description, :discount_kind, :discount_value,
            :min_order_value, :usage_limit, :used_count, :expires_at, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Coupon, error) {
	var c model.Coupon
	query := `SELECT * FROM coupons WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindByCode(ctx context.Context, merchantID, code string) (*model.Coupon, error) {
	var c model.Coupon
	query := `SELECT * FROM coupons WHERE merchant_id = $1 AND code = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &c, query, merchantID, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CouponFilters) ([]model.Coupon, int, error) {
	var coupons []model.Coupon
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(code ILIKE :search OR description ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM coupons" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM coupons" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &coupons, args); err != nil {
		return nil, 0, err
	}

	return coupons, count, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.Coupon) error {
	query := `
        UPDATE coupons
        SET description = :description,
            discount_kind = :discount_kind,
            discount_value = :discount_value,
            min_order_value = :min_order_value,
            usage_limit = :usage_limit,
            expires_at = :expires_at,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, c)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM coupons WHERE id = $1", id)
	return err
}

func (r *PGRepository) IncrementUsage(ctx context.Context, id string) (int64, error) {
	query := `
        UPDATE coupons
        SET used_count = used_count + 1,
            updated_at = now()
        WHERE id = $1
          AND is_active = true
          AND (expires_at IS NULL OR expires_at > now())
          AND (usage_limit = 0 OR used_count < usage_limit)
    `
	res, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
