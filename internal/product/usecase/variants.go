package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
	"github.com/nakula/catalog-admin-service/internal/variant"
)

// GenerateVariants expands the editor's axis selection into SKU drafts,
// reconciled against the product's persisted SKUs so unchanged combinations
// keep their server ids, stock, and lot links. Nothing is persisted here;
// the drafts go back to the editor for review.
func (uc *productUseCase) GenerateVariants(ctx context.Context, input *dto.GenerateVariantsInput) ([]variant.SkuDraft, error) {
	p, err := uc.ownedProduct(ctx, input.MerchantID, input.ProductID)
	if err != nil {
		return nil, err
	}

	skus, err := uc.repo.ListSkus(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	prev := make([]variant.SkuDraft, len(skus))
	for i, s := range skus {
		prev[i] = draftFromSku(s)
	}

	resolve, err := uc.attributeResolver(ctx, input.MerchantID, axisAttributeIDs(input.Axes))
	if err != nil {
		return nil, err
	}

	combos := variant.Generate(input.Axes, resolve)
	drafts := variant.Reconcile(combos, prev, variant.Defaults{
		Slug:         p.Slug,
		MRP:          p.MRP,
		SellingPrice: p.SellingPrice,
		CostPrice:    p.CostPrice,
	})
	return drafts, nil
}

func (uc *productUseCase) ListSkus(ctx context.Context, merchantID, productID string) ([]model.Sku, error) {
	p, err := uc.ownedProduct(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListSkus(ctx, p.ID)
}

// ReplaceSkus persists the operator-confirmed draft collection as the
// product's complete SKU set. Drafts are exported into persistence shape
// first, resolving attribute display names against the current definitions.
func (uc *productUseCase) ReplaceSkus(ctx context.Context, input *dto.ReplaceSkusInput) ([]model.Sku, error) {
	p, err := uc.ownedProduct(ctx, input.MerchantID, input.ProductID)
	if err != nil {
		return nil, err
	}

	// At most one draft per combination identity.
	seen := make(map[string]bool, len(input.Drafts))
	for _, d := range input.Drafts {
		key := d.Attributes.Key()
		if seen[key] {
			return nil, product.ErrDuplicateCombination
		}
		seen[key] = true
	}

	var ids []string
	for _, d := range input.Drafts {
		for _, pair := range d.Attributes {
			ids = append(ids, pair.AttributeID)
		}
	}
	resolve, err := uc.attributeResolver(ctx, input.MerchantID, ids)
	if err != nil {
		return nil, err
	}

	store := variant.NewDraftStore(input.Drafts)
	exported := store.Export(resolve)

	now := time.Now()
	skus := make([]model.Sku, 0, len(exported))
	for _, e := range exported {
		id := e.ServerID
		if id == "" {
			id = uuid.New().String()
		}

		attrs := make(model.SkuAttributes, len(e.Attributes))
		for i, a := range e.Attributes {
			attrs[i] = variant.Pair{
				AttributeID:   a.AttributeID,
				Value:         a.Value,
				AttributeName: a.AttributeName,
			}
		}

		var lotID *string
		if e.LotID != "" {
			v := e.LotID
			lotID = &v
		}

		skus = append(skus, model.Sku{
			BaseModel:    model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
			ProductID:    p.ID,
			Code:         e.SKU,
			MRP:          e.MRP,
			SellingPrice: e.SellingPrice,
			CostPrice:    e.CostPrice,
			Stock:        e.Stock,
			Attributes:   attrs,
			Images:       model.StringSlice(e.Images),
			LotID:        lotID,
		})
	}

	if err := uc.repo.ReplaceSkus(ctx, p.ID, skus); err != nil {
		return nil, err
	}

	if hasVariants := len(skus) > 0; p.HasVariants != hasVariants {
		p.HasVariants = hasVariants
		p.UpdatedAt = now
		if err := uc.repo.Update(ctx, p); err != nil {
			return nil, err
		}
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)

	return uc.repo.ListSkus(ctx, p.ID)
}

func (uc *productUseCase) ownedProduct(ctx context.Context, merchantID, productID string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.MerchantID != merchantID {
		return nil, product.ErrNotFound
	}
	return p, nil
}

// attributeResolver builds a display-name lookup over the merchant's
// current definitions. Unknown ids resolve to "" and downstream fallbacks
// (denormalized pair name, then raw id) apply.
func (uc *productUseCase) attributeResolver(ctx context.Context, merchantID string, ids []string) (variant.NameResolver, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	attrs, err := uc.attrRepo.FindByIDs(ctx, merchantID, dedupe(ids))
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(attrs))
	for _, a := range attrs {
		names[a.ID] = a.Name
	}
	return func(attributeID string) string {
		return names[attributeID]
	}, nil
}

func axisAttributeIDs(axes []variant.Axis) []string {
	ids := make([]string, 0, len(axes))
	for _, a := range axes {
		ids = append(ids, a.AttributeID)
	}
	return ids
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func draftFromSku(s model.Sku) variant.SkuDraft {
	lotID := ""
	if s.LotID != nil {
		lotID = *s.LotID
	}
	return variant.SkuDraft{
		ServerID:     s.ID,
		Code:         s.Code,
		MRP:          s.MRP,
		SellingPrice: s.SellingPrice,
		CostPrice:    s.CostPrice,
		Stock:        s.Stock,
		Attributes:   variant.Combination(s.Attributes),
		Images:       []string(s.Images),
		LotID:        lotID,
	}
}
