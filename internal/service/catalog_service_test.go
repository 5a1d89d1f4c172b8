package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-catalog-api/internal/models"
	appErrors "github.com/noah-isme/course-catalog-api/pkg/errors"
)

type mockCategoryRepo struct {
	categories []models.Category
	err        error
	calls      int
}

func (m *mockCategoryRepo) ListWithPublishedCourses(ctx context.Context) ([]models.Category, error) {
	m.calls++
	return m.categories, m.err
}

func TestCatalogServiceFilterOptions(t *testing.T) {
	repo := &mockCategoryRepo{categories: []models.Category{{ID: 2, Name: "Design"}, {ID: 1, Name: "Programming"}}}
	svc := NewCatalogService(repo, nil, nil, time.Minute, zap.NewNop())

	opts, hit, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, []string{"All", "Design", "Programming"}, opts.Categories)
	assert.Equal(t, []string{"All", "Beginner", "Intermediate", "Advanced"}, opts.Levels)
	assert.Equal(t, []string{"All", "Bangla", "English"}, opts.Languages)
}

func TestCatalogServiceFilterOptionsCached(t *testing.T) {
	repo := &mockCategoryRepo{categories: []models.Category{{ID: 1, Name: "Business"}}}
	cache := NewCacheService(newMemoryCache(), NewMetricsService(), time.Minute, zap.NewNop(), true)
	svc := NewCatalogService(repo, cache, nil, time.Minute, zap.NewNop())

	_, hit, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	opts, hit, err := svc.FilterOptions(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"All", "Business"}, opts.Categories)
	assert.Equal(t, 1, repo.calls)
}

func TestCatalogServiceFilterOptionsError(t *testing.T) {
	svc := NewCatalogService(&mockCategoryRepo{err: errors.New("boom")}, nil, nil, time.Minute, nil)

	_, _, err := svc.FilterOptions(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch filter options", appErrors.FromError(err).Message)
}
