package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/skinmatch/backend/internal/domain"
	"github.com/skinmatch/backend/internal/logging"
	"github.com/skinmatch/backend/internal/metrics"
)

// RecommenderConfig holds configuration for the recommender service
type RecommenderConfig struct {
	DefaultLimit int
	CacheTTL     time.Duration
}

// RecommenderService ranks catalog products for a skin condition.
//
// The service owns the feature matrix derived from the catalog. Every AddProduct
// rebuilds the whole matrix before returning; Recommend only ever sees a matrix
// that matches the catalog snapshot it was built from.
type RecommenderService struct {
	catalog      domain.CatalogRepository
	cache        domain.CacheRepository
	defaultLimit int
	cacheTTL     time.Duration

	mu       sync.RWMutex
	products []domain.Product // catalog snapshot, aligned with features.Rows
	features *domain.FeatureMatrix
	version  int // catalog version the snapshot was read at
}

// NewRecommenderService creates a recommender over catalog and builds the initial
// feature matrix. cache may be nil to disable result caching.
func NewRecommenderService(
	catalog domain.CatalogRepository,
	cache domain.CacheRepository,
	config RecommenderConfig,
) (*RecommenderService, error) {
	limit := config.DefaultLimit
	if limit <= 0 {
		limit = domain.DefaultRecommendationLimit
	}

	cacheTTL := config.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	s := &RecommenderService{
		catalog:      catalog,
		cache:        cache,
		defaultLimit: limit,
		cacheTTL:     cacheTTL,
	}

	if err := s.rebuildFeatures(context.Background()); err != nil {
		return nil, fmt.Errorf("build feature matrix: %w", err)
	}
	return s, nil
}

// Recommend returns up to limit products tagged with the requested condition,
// ranked by their mean cosine similarity to the rest of the matched set.
// An empty match is not an error: the result carries MessageNoProducts.
func (s *RecommenderService) Recommend(
	ctx context.Context,
	request *domain.RecommendRequest,
) (*domain.RecommendationResult, error) {
	if err := validateRecommendRequest(request); err != nil {
		metrics.RecordRecommendation(metrics.OutcomeInvalid, false)
		return nil, err
	}

	limit := s.defaultLimit
	if request.Limit != nil {
		limit = *request.Limit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	cacheKey := generateCacheKey(s.version, request.Condition, limit, request.MaxPrice)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		logging.Ctx(ctx).Debug().Str("key", cacheKey).Msg("recommendation cache hit")
		metrics.RecordRecommendation(outcomeOf(cached), true)
		return cached, nil
	}

	result, err := s.rank(ctx, request.Condition, limit, request.MaxPrice)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to cache recommendation result")
		}
	}

	metrics.RecordRecommendation(outcomeOf(result), false)
	return result, nil
}

// rank filters, scores and orders products. Caller must hold s.mu.
func (s *RecommenderService) rank(
	ctx context.Context,
	condition string,
	limit int,
	maxPrice *float64,
) (*domain.RecommendationResult, error) {
	matched, err := s.filter(ctx, condition, maxPrice)
	if err != nil {
		return nil, err
	}

	logging.Ctx(ctx).Debug().
		Str("condition", condition).
		Int("matched", len(matched)).
		Int("limit", limit).
		Msg("filtered catalog")

	if len(matched) == 0 {
		return &domain.RecommendationResult{
			Recommendations: []domain.Recommendation{},
			Message:         domain.MessageNoProducts,
			Source:          domain.SourceComputed,
		}, nil
	}

	rows := make([][]float64, len(matched))
	for i, idx := range matched {
		rows[i] = s.features.Rows[idx]
	}
	scores := rowMeans(pairwiseSimilarity(rows))

	// order[k] indexes into matched; stable sort keeps catalog order on ties
	order := make([]int, len(matched))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if limit < 0 {
		limit = 0
	}
	if limit > len(order) {
		limit = len(order)
	}

	recommendations := make([]domain.Recommendation, 0, limit)
	for _, k := range order[:limit] {
		p := s.products[matched[k]]
		recommendations = append(recommendations, domain.Recommendation{
			ProductID:      p.ID,
			Name:           p.Name,
			Category:       p.Category,
			Price:          p.Price,
			RelevanceScore: scores[k],
		})
	}

	return &domain.RecommendationResult{
		Recommendations: recommendations,
		Message:         domain.MessageSuccess,
		Source:          domain.SourceComputed,
	}, nil
}

// filter returns catalog indices of products tagged with condition
// (case-insensitive exact match) and priced at or below maxPrice.
func (s *RecommenderService) filter(ctx context.Context, condition string, maxPrice *float64) ([]int, error) {
	want := strings.ToLower(condition)

	var matched []int
	for i, p := range s.products {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !hasCondition(p, want) {
			continue
		}
		if maxPrice != nil && p.Price > *maxPrice {
			continue
		}
		matched = append(matched, i)
	}
	return matched, nil
}

// hasCondition reports whether any of the product's conditions lowercases to want
func hasCondition(p domain.Product, want string) bool {
	for _, c := range p.Conditions {
		if strings.ToLower(c) == want {
			return true
		}
	}
	return false
}

// AddProduct validates and appends a product, then rebuilds the feature matrix
// and drops cached results. Returns the new product id.
func (s *RecommenderService) AddProduct(ctx context.Context, request *domain.AddProductRequest) (int, error) {
	if err := validateAddProduct(request); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.catalog.Add(ctx, domain.Product{
		Name:        request.Name,
		Category:    request.Category,
		Ingredients: request.Ingredients,
		Conditions:  request.Conditions,
		Price:       request.Price,
	})
	if err != nil {
		return 0, fmt.Errorf("add product: %w", err)
	}

	// The product is in the catalog now; finish the rebuild even if ctx is cancelled.
	if err := s.rebuildFeatures(context.WithoutCancel(ctx)); err != nil {
		return 0, fmt.Errorf("rebuild feature matrix: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Purge(ctx); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("failed to purge recommendation cache")
		}
	}

	logging.Ctx(ctx).Info().
		Int("id", id).
		Str("name", request.Name).
		Str("category", request.Category).
		Int("catalog_size", s.catalog.Len()).
		Msg("product added")

	return id, nil
}

// rebuildFeatures re-reads the catalog and recomputes the whole feature matrix.
// Caller must hold s.mu for writing, or be the constructor.
func (s *RecommenderService) rebuildFeatures(ctx context.Context) error {
	start := time.Now()

	version := s.catalog.Version()
	if s.features != nil && version == s.version {
		return nil
	}

	products, err := s.catalog.All(ctx)
	if err != nil {
		return err
	}
	features := BuildFeatureMatrix(products)

	s.products = products
	s.features = features
	s.version = version

	elapsed := time.Since(start)
	metrics.RecordRebuild(elapsed, len(products), len(features.Columns))
	logging.Ctx(ctx).Debug().
		Int("rows", len(features.Rows)).
		Int("columns", len(features.Columns)).
		Int("catalog_version", version).
		Float64("price_mean", features.PriceMean).
		Float64("price_scale", features.PriceScale).
		Dur("elapsed", elapsed).
		Msg("feature matrix rebuilt")

	return nil
}

// Products returns the catalog snapshot the current feature matrix was built from
func (s *RecommenderService) Products(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	for i, p := range s.products {
		p.Ingredients = append(make([]string, 0, len(p.Ingredients)), p.Ingredients...)
		p.Conditions = append(make([]string, 0, len(p.Conditions)), p.Conditions...)
		out[i] = p
	}
	return out, nil
}

// Features returns a copy of the current feature matrix
func (s *RecommenderService) Features() *domain.FeatureMatrix {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFeatureMatrix(s.features)
}

// getFromCache returns a cached result marked with SourceCache, or nil on miss
func (s *RecommenderService) getFromCache(ctx context.Context, key string) *domain.RecommendationResult {
	if s.cache == nil {
		return nil
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil || cached == nil {
		return nil
	}
	cached.Source = domain.SourceCache
	return cached
}

// generateCacheKey creates a cache key from the catalog version and the normalized query.
// Format: "recommend:v{version}:{limit}:{max price or empty}:{lowercased condition}"
func generateCacheKey(version int, condition string, limit int, maxPrice *float64) string {
	price := ""
	if maxPrice != nil {
		price = strconv.FormatFloat(*maxPrice, 'g', -1, 64)
	}
	return fmt.Sprintf("recommend:v%d:%d:%s:%s", version, limit, price, strings.ToLower(condition))
}

func outcomeOf(result *domain.RecommendationResult) string {
	if result.Message == domain.MessageNoProducts {
		return metrics.OutcomeEmpty
	}
	return metrics.OutcomeFound
}
