package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nakula/catalog-admin-service/internal/attribute"
	"github.com/nakula/catalog-admin-service/internal/model"
	"github.com/nakula/catalog-admin-service/internal/product"
	"github.com/nakula/catalog-admin-service/internal/product/dto"
	"github.com/nakula/catalog-admin-service/internal/variant"
	"github.com/nakula/catalog-admin-service/pkg/cache"
	"github.com/nakula/catalog-admin-service/pkg/logger"
	"github.com/nakula/catalog-admin-service/pkg/search"
)

type productUseCase struct {
	repo     product.Repository
	attrRepo attribute.Repository
	cache    *cache.RedisClient
	es       *search.Client
	logger   logger.ZapLogger
}

func NewProductUseCase(repo product.Repository, attrRepo attribute.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:     repo,
		attrRepo: attrRepo,
		cache:    cache,
		es:       es,
		logger:   log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	unique, err := uc.repo.IsSlugUnique(ctx, input.MerchantID, input.Slug, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, product.ErrSlugTaken
	}

	id := uuid.New().String()
	now := time.Now()

	categoryID := &input.CategoryID
	if input.CategoryID == "" {
		categoryID = nil
	}

	p := &model.Product{
		BaseModel:    model.BaseModel{ID: id, CreatedAt: now, UpdatedAt: now},
		MerchantID:   input.MerchantID,
		CategoryID:   categoryID,
		Name:         input.Name,
		Slug:         input.Slug,
		Description:  &input.Description,
		MRP:          input.MRP,
		SellingPrice: input.SellingPrice,
		CostPrice:    input.CostPrice,
		TaxRate:      input.TaxRate,
		ImageURL:     &input.ImageURL,
		IsActive:     true,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	// Invalidate Cache
	go uc.invalidateProductCache(context.Background(), input.MerchantID)

	// Sync to Elastic
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}
	const indexName = "products"

	mapping := `{
		"mappings": {
			"properties": {
				"merchant_id": { "type": "keyword" },
				"name": { "type": "text" },
				"slug": { "type": "keyword" },
				"description": { "type": "text" },
				"selling_price": { "type": "double" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, indexName, mapping)

	if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.HasVariants {
		skus, err := uc.repo.ListSkus(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Skus = skus
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	// 1. Generate Cache Key
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		// 2. Check Cache
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				// Cache Hit
				return result.Products, result.Count, nil
			}
		}
	}

	// 3. Search via Elastic (if query present)
	if filters.SearchQuery != "" && uc.es != nil {
		q := map[string]interface{}{
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"must": []map[string]interface{}{
						{
							"query_string": map[string]interface{}{
								"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
								"fields": []string{"name^3", "slug", "description"},
							},
						},
						{
							"term": map[string]interface{}{
								"merchant_id": filters.MerchantID,
							},
						},
					},
				},
			},
			"from": (filters.Page - 1) * filters.PageSize,
		}
		if filters.PageSize > 0 {
			q["size"] = filters.PageSize
		}

		res, err := uc.es.Search(ctx, "products", q)
		if err == nil {
			var esProducts []model.Product
			for _, hit := range res.Hits.Hits {
				var p model.Product
				if err := json.Unmarshal(hit.Source, &p); err == nil {
					esProducts = append(esProducts, p)
				}
			}
			return esProducts, res.Hits.Total.Value, nil
		}
		// If ES fails, fall through to DB
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	// 4. DB Query (Fallback or Standard List)
	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	// 5. Set Cache
	if cacheKey != "" && uc.cache != nil {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{
			Products: products,
			Count:    count,
		}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, 5*time.Minute)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%s:%x", filters.MerchantID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, merchantID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("products:list:%s:*", merchantID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.MerchantID != input.MerchantID {
		return nil, product.ErrNotFound
	}

	if p.Slug != input.Slug {
		unique, err := uc.repo.IsSlugUnique(ctx, input.MerchantID, input.Slug, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrSlugTaken
		}
	}

	// Update fields
	p.Name = input.Name
	p.Slug = input.Slug
	p.Description = &input.Description
	p.MRP = input.MRP
	p.SellingPrice = input.SellingPrice
	p.CostPrice = input.CostPrice
	p.TaxRate = input.TaxRate
	p.ImageURL = &input.ImageURL
	p.IsActive = input.IsActive
	if input.CategoryID != "" {
		catID := input.CategoryID
		p.CategoryID = &catID
	} else {
		p.CategoryID = nil
	}

	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	// Invalidate Cache
	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	// Sync ES
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, merchantID, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil || p.MerchantID != merchantID {
		return nil // absent or not ours, nothing to do
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Invalidate Cache
	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	// Remove from ES
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), "products", id); err != nil {
				uc.logger.Error("failed to delete product from ES", zap.Error(err))
			}
		}()
	}

	return nil
}
