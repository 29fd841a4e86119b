package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nakula/catalog-admin-service/internal/attribute/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, a *model.Attribute) error {
	query := `
        INSERT INTO attributes (id, merchant_id, name, kind, options, is_active, created_at, updated_at)
        VALUES (:id, :merchant_id, :name, :kind, :options, :is_active, :created_at, :updated_at)
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Attribute, error) {
	var attr model.Attribute
	query := `SELECT * FROM attributes WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &attr, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &attr, nil
}

func (r *PGRepository) FindByIDs(ctx context.Context, merchantID string, ids []string) ([]model.Attribute, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(
		`SELECT * FROM attributes WHERE merchant_id = ? AND id IN (?)`, merchantID, ids)
	if err != nil {
		return nil, err
	}
	query = r.DB.Rebind(query)

	var attrs []model.Attribute
	if err := r.DB.SelectContext(ctx, &attrs, query, args...); err != nil {
		return nil, err
	}
	return attrs, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.AttributeFilters) ([]model.Attribute, int, error) {
	var attrs []model.Attribute
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
		conditions = append(conditions, "name ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM attributes" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM attributes" + whereClause + " ORDER BY name ASC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &attrs, args); err != nil {
		return nil, 0, err
	}

	return attrs, count, nil
}

func (r *PGRepository) Update(ctx context.Context, a *model.Attribute) error {
	query := `
        UPDATE attributes
        SET name = :name,
            kind = :kind,
            options = :options,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, a)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM attributes WHERE id = $1", id)
	return err
}
