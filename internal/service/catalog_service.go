package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-catalog-api/internal/dto"
	"github.com/noah-isme/course-catalog-api/internal/models"
	appErrors "github.com/noah-isme/course-catalog-api/pkg/errors"
)

// FilterOptionsCacheKey is invalidated whenever a course is created.
const FilterOptionsCacheKey = "filters:v1"

type categoryRepository interface {
	ListWithPublishedCourses(ctx context.Context) ([]models.Category, error)
}

// CatalogService serves the option lists a catalog client needs to render its filters.
type CatalogService struct {
	repo    categoryRepository
	cache   *CacheService
	metrics *MetricsService
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(repo categoryRepository, cache *CacheService, metrics *MetricsService, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, cache: cache, metrics: metrics, ttl: ttl, logger: logger}
}

// FilterOptions returns category, level and language choices, each led by "All".
// The boolean reports whether the payload came from cache.
func (s *CatalogService) FilterOptions(ctx context.Context) (*dto.FilterOptions, bool, error) {
	var cached dto.FilterOptions
	hit, err := s.cache.Get(ctx, FilterOptionsCacheKey, &cached)
	if err == nil && hit {
		return &cached, true, nil
	}

	start := time.Now()
	categories, err := s.repo.ListWithPublishedCourses(ctx)
	s.metrics.ObserveDBQuery("category_list", time.Since(start))
	if err != nil {
		s.logger.Error("list categories failed", zap.Error(err))
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to fetch filter options")
	}

	opts := buildFilterOptions(categories)
	if err := s.cache.Set(ctx, FilterOptionsCacheKey, opts, s.ttl); err != nil {
		s.logger.Debug("filter options not cached", zap.Error(err))
	}
	return &opts, false, nil
}

func buildFilterOptions(categories []models.Category) dto.FilterOptions {
	opts := dto.FilterOptions{
		Categories: make([]string, 0, len(categories)+1),
		Levels:     make([]string, 0, len(models.Levels)+1),
		Languages:  make([]string, 0, len(models.Languages)+1),
	}
	opts.Categories = append(opts.Categories, models.FilterAll)
	for _, c := range categories {
		opts.Categories = append(opts.Categories, c.Name)
	}
	opts.Levels = append(opts.Levels, models.FilterAll)
	for _, l := range models.Levels {
		opts.Levels = append(opts.Levels, upperFirst(l))
	}
	opts.Languages = append(opts.Languages, models.FilterAll)
	for _, l := range models.Languages {
		opts.Languages = append(opts.Languages, upperFirst(l))
	}
	return opts
}
