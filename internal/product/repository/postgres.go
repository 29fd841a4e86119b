package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query := `
        INSERT INTO products (
            id, merchant_id, category_id, name, slug, description,
            mrp, selling_price, cost_price, tax_rate, has_variants,
            image_url, is_active, created_at, updated_at
        )
        VALUES (
            :id, :merchant_id, :category_id, :name, :slug, :description,
            :mrp, :selling_price, :cost_price, :tax_rate, :has_variants,
            :image_url, :is_active, :created_at, :updated_at
        )
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	var products []model.Product
	var count int

	conditions := []string{}
	args := map[string]interface{}{}

	if f.MerchantID != "" {
		conditions = append(conditions, "merchant_id = :merchant_id")
		args["merchant_id"] = f.MerchantID
	}
	if f.CategoryID != "" {
		conditions = append(conditions, "category_id = :category_id")
		args["category_id"] = f.CategoryID
	}
	if f.IsActive != nil {
		conditions = append(conditions, "is_active = :is_active")
		args["is_active"] = *f.IsActive
	}
	if f.SearchQuery != "" {
		conditions = append(conditions, "(name ILIKE :search OR slug ILIKE :search)")
		args["search"] = "%" + f.SearchQuery + "%"
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT count(*) FROM products" + whereClause
	rows, err := r.DB.NamedQueryContext(ctx, countQuery, args)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	if rows.Next() {
		rows.Scan(&count)
	}

	orderBy := "created_at DESC"
	if f.SortBy != "" {
		// Whitelist sortable fields
		switch f.SortBy {
		case "name":
			orderBy = "name"
		case "price":
			orderBy = "selling_price"
		case "created_at":
			orderBy = "created_at"
		}
		if strings.ToLower(f.SortOrder) == "asc" {
			orderBy += " ASC"
		} else {
			orderBy += " DESC"
		}
	}

	query := fmt.Sprintf("SELECT * FROM products%s ORDER BY %s", whereClause, orderBy)

	if f.PageSize > 0 {
		offset := (f.Page - 1) * f.PageSize
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, offset)
	}

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	defer nstmt.Close()

	err = nstmt.SelectContext(ctx, &products, args)
	if err != nil {
		return nil, 0, err
	}

	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
        UPDATE products
        SET category_id = :category_id,
            name = :name,
            slug = :slug,
            description = :description,
            mrp = :mrp,
            selling_price = :selling_price,
            cost_price = :cost_price,
            tax_rate = :tax_rate,
            has_variants = :has_variants,
            image_url = :image_url,
            is_active = :is_active,
            updated_at = :updated_at
        WHERE id = :id AND merchant_id = :merchant_id
    `
	_, err := r.DB.NamedExecContext(ctx, query, p)
	return err
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	return err
}

func (r *PGRepository) IsSlugUnique(ctx context.Context, merchantID, slug, excludeID string) (bool, error) {
	var count int
	query := `SELECT count(*) FROM products WHERE merchant_id = $1 AND slug = $2`
	args := []interface{}{merchantID, slug}
	if excludeID != "" {
		query += ` AND id != $3`
		args = append(args, excludeID)
	}

	err := r.DB.GetContext(ctx, &count, query, args...)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *PGRepository) ListSkus(ctx context.Context, productID string) ([]model.Sku, error) {
	var skus []model.Sku
	query := `SELECT * FROM skus WHERE product_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.DB.SelectContext(ctx, &skus, query, productID); err != nil {
		return nil, err
	}
	return skus, nil
}

func (r *PGRepository) ReplaceSkus(ctx context.Context, productID string, skus []model.Sku) error {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	keep := make([]string, 0, len(skus))
	for _, s := range skus {
		keep = append(keep, s.ID)
	}

	// Drop rows whose combination no longer exists.
	if len(keep) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM skus WHERE product_id = $1`, productID); err != nil {
			return err
		}
	} else {
		query, args, err := sqlx.In(`DELETE FROM skus WHERE product_id = ? AND id NOT IN (?)`, productID, keep)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return err
		}
	}

	upsert := `
        INSERT INTO skus (
            id, product_id, code, mrp, selling_price, cost_price, stock,
            attributes, images, lot_id, created_at, updated_at
        )
        VALUES (
            :id, :product_id, :code, :mrp, :selling_price, :cost_price, :stock,
            :attributes, :images, :lot_id, :created_at, :updated_at
        )
        ON CONFLICT (id) DO UPDATE
        SET code = EXCLUDED.code,
            mrp = EXCLUDED.mrp,
            selling_price = EXCLUDED.selling_price,
            cost_price = EXCLUDED.cost_price,
            stock = EXCLUDED.stock,
            attributes = EXCLUDED.attributes,
            images = EXCLUDED.images,
            lot_id = EXCLUDED.lot_id,
            updated_at = EXCLUDED.updated_at
    `
	for i := range skus {
		if _, err := tx.NamedExecContext(ctx, upsert, &skus[i]); err != nil {
			return err
		}
	}

	return tx.Commit()
}
