package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nakula/catalog-admin-service/internal/lot/dto"
	"github.com/nakula/catalog-admin-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, l *model.Lot) error {
	query := `
        INSERT INTO lots (
            id, merchant_id, lot_number, current_quantity, initial_quantity,
            received_at, expires_at, notes, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :lot_number, :current_quantity, :initial_quantity,
            :received_at, :expires_at, :notes, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Lot, error) {
	var lot model.Lot
	query := `SELECT * FROM lots WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &lot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func (r *PGRepository) FindByNumber(ctx context.Context, merchantID, lotNumber string) (*model.Lot, error) {
	var lot model.Lot
	query := `SELECT * FROM lots WHERE merchant_id = $1 AND lot_number = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &lot, query, merchantID, lotNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &lot, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.LotFilters) ([]model.Lot, int, error) {
	var lots []model.Lot
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "lot_number ILIKE :search")
		args["search"] = "%" + f.SearchQuery + "%"
	}
	if f.Depleted != nil {
		if *f.Depleted {
			conditions = append(conditions, "current_quantity <= 0")
		} else {
			conditions = append(conditions, "current_quantity > 0")
		}
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM lots" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM lots" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &lots, args); err != nil {
		return nil, 0, err
	}

	return lots, count, nil
}

func (r *PGRepository) Update(ctx context.Context, l *model.Lot) error {
	query := `
        UPDATE lots
        SET lot_number = :lot_number,
            expires_at = :expires_at,
            notes = :notes,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, l)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM lots WHERE id = $1", id)
	return err
}

func (r *PGRepository) FindBySkus(ctx context.Context, merchantID string, skuIDs []string) (map[string]*model.Lot, error) {
	if len(skuIDs) == 0 {
		return map[string]*model.Lot{}, nil
	}

	query, args, err := sqlx.In(`
        SELECT s.id AS sku_id, l.*
        FROM skus s
        JOIN lots l ON l.id = s.lot_id
        WHERE l.merchant_id = ? AND s.id IN (?)
    `, merchantID, skuIDs)
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryxContext(ctx, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]*model.Lot)
	for rows.Next() {
		var row struct {
			SkuID string `db:"sku_id"`
			model.Lot
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, err
		}
		lot := row.Lot
		out[row.SkuID] = &lot
	}
	return out, rows.Err()
}

func (r *PGRepository) LogMovement(ctx context.Context, m *model.LotMovement) error {
	query := `
        INSERT INTO lot_movements (
            id, merchant_id, lot_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            notes, created_at
        )
        VALUES (
            :id, :merchant_id, :lot_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :notes, :created_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, m)
	return err
}

func (r *PGRepository) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.LotMovement, int, error) {
	var movements []model.LotMovement
	var count int

	conditions := []string{"merchant_id = :merchant_id"}
	args := map[string]interface{}{"merchant_id": f.MerchantID}

	if f.LotID != "" {
		conditions = append(conditions, "lot_id = :lot_id")
		args["lot_id"] = f.LotID
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := "SELECT count(*) FROM lot_movements" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	query := "SELECT * FROM lot_movements" + whereClause + " ORDER BY created_at DESC"
	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	if err := nstmt.SelectContext(ctx, &movements, args); err != nil {
		return nil, 0, err
	}

	return movements, count, nil
}

// AdjustQuantityWithMovement persists the new quantity and its audit row in
// one transaction.
func (r *PGRepository) AdjustQuantityWithMovement(ctx context.Context, l *model.Lot, m *model.LotMovement) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	updateQuery := `
        UPDATE lots
        SET current_quantity = :current_quantity, updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	if _, err := tx.NamedExecContext(ctx, updateQuery, l); err != nil {
		return err
	}

	movementQuery := `
        INSERT INTO lot_movements (
            id, merchant_id, lot_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_type, reference_id,
            notes, created_at
        )
        VALUES (
            :id, :merchant_id, :lot_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_type, :reference_id,
            :notes, :created_at
        )
    `
	if _, err := tx.NamedExecContext(ctx, movementQuery, m); err != nil {
		return err
	}

	return tx.Commit()
}
