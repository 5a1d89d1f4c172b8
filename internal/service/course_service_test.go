package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/course-catalog-api/internal/dto"
	"github.com/noah-isme/course-catalog-api/internal/models"
	appErrors "github.com/noah-isme/course-catalog-api/pkg/errors"
)

type mockCourseRepo struct {
	rows       []models.CourseRow
	byID       map[int64]models.CourseRow
	lastFilter models.CourseFilter
	created    []models.Course
	searchErr  error
	findErr    error
	createErr  error
}

func (m *mockCourseRepo) Search(ctx context.Context, filter models.CourseFilter) ([]models.CourseRow, error) {
	m.lastFilter = filter
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.rows, nil
}

func (m *mockCourseRepo) FindPublishedByID(ctx context.Context, id int64) (*models.CourseRow, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	row, ok := m.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &row, nil
}

func (m *mockCourseRepo) Create(ctx context.Context, course *models.Course) error {
	if m.createErr != nil {
		return m.createErr
	}
	course.ID = int64(len(m.created) + 1)
	course.CreatedAt = time.Now().UTC()
	course.UpdatedAt = course.CreatedAt
	m.created = append(m.created, *course)
	return nil
}

type memoryCache struct {
	values    map[string]interface{}
	deleted   []string
	deleteErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string]interface{})}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	v, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if opts, ok := dest.(*dto.FilterOptions); ok {
		*opts = v.(dto.FilterOptions)
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for _, k := range keys {
		delete(m.values, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

func newCourseServiceForTest(repo *mockCourseRepo) *CourseService {
	return NewCourseService(repo, nil, nil, validator.New(), zap.NewNop(), CourseServiceConfig{DefaultLimit: 20, MaxLimit: 100})
}

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func TestNormalizeFilterDefaults(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})

	filter := svc.NormalizeFilter(dto.CourseSearchQuery{})
	assert.Equal(t, models.CourseFilter{Limit: 20, Offset: 0}, filter)
}

func TestNormalizeFilterSentinels(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})

	filter := svc.NormalizeFilter(dto.CourseSearchQuery{Category: "All", Level: "All", Language: "all"})
	assert.Empty(t, filter.Category)
	assert.Empty(t, filter.Level)
	assert.Empty(t, filter.Language)

	// category sentinel is exact; a lower-case "all" is a real (case-sensitive) name
	filter = svc.NormalizeFilter(dto.CourseSearchQuery{Category: "all"})
	assert.Equal(t, "all", filter.Category)
}

func TestNormalizeFilterKeepsCategoryVerbatim(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})

	for _, category := range []string{" Design", "Design ", "design", "DESIGN", " All"} {
		filter := svc.NormalizeFilter(dto.CourseSearchQuery{Category: category})
		assert.Equal(t, category, filter.Category)
	}
}

func TestNormalizeFilterLowercasesLevelAndLanguage(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})

	for _, level := range []string{"Beginner", "BEGINNER", "beginner", " bEgInNeR "} {
		filter := svc.NormalizeFilter(dto.CourseSearchQuery{Level: level, Language: "English", Category: "Data Science"})
		assert.Equal(t, "beginner", filter.Level, level)
		assert.Equal(t, "english", filter.Language)
		assert.Equal(t, "Data Science", filter.Category)
	}
}

func TestNormalizeFilterPagination(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})

	cases := []struct {
		limit, offset       string
		wantLimit, wantOffs int
	}{
		{"abc", "xyz", 20, 0},
		{"0", "-4", 20, 0},
		{"-3", "0", 20, 0},
		{"2", "2", 2, 2},
		{"5000", "40", 100, 40},
		{" 7 ", " 3 ", 7, 3},
		{"1.5", "2.5", 20, 0},
	}
	for _, tc := range cases {
		filter := svc.NormalizeFilter(dto.CourseSearchQuery{Limit: tc.limit, Offset: tc.offset})
		assert.Equal(t, tc.wantLimit, filter.Limit, "limit %q", tc.limit)
		assert.Equal(t, tc.wantOffs, filter.Offset, "offset %q", tc.offset)
	}
}

func TestCourseServiceSearchShapesRows(t *testing.T) {
	repo := &mockCourseRepo{rows: []models.CourseRow{
		{
			Course: models.Course{
				ID: 2, Title: "Advanced Go", Description: strPtr("Concurrency for the web"), Level: "advanced", Language: "english",
				Price: 49.99, OriginalPrice: f64Ptr(99.5), DurationHours: 5, TotalLessons: 12, TotalStudents: 340, Rating: 4.7,
				ThumbnailURL: strPtr("https://cdn.test/2.png"), IsPremium: true, IsPublished: true,
			},
			CategoryName:   strPtr("Programming"),
			InstructorName: strPtr("Jane Doe"),
		},
		{
			Course:         models.Course{ID: 1, Title: "Intro", Level: "beginner", Language: "bangla", DurationHours: 2.5, IsPublished: true},
			InstructorName: nil,
		},
	}}
	svc := newCourseServiceForTest(repo)

	courses, err := svc.Search(context.Background(), dto.CourseSearchQuery{Search: "  web "})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "web", repo.lastFilter.Search)

	first := courses[0]
	assert.Equal(t, "Advanced", first.Level)
	assert.Equal(t, "English", first.Language)
	assert.Equal(t, "5 hours", first.Duration)
	assert.Equal(t, "Jane Doe", first.Instructor)
	assert.Equal(t, 49, first.Price)
	require.NotNil(t, first.OriginalPrice)
	assert.Equal(t, 99, *first.OriginalPrice)
	assert.Equal(t, 4.7, first.Rating)
	assert.Equal(t, 340, first.Students)
	assert.Equal(t, 12, first.Lessons)
	assert.True(t, first.IsPremium)
	assert.Equal(t, "Programming", *first.Category)

	second := courses[1]
	assert.Equal(t, "Unknown", second.Instructor)
	assert.Equal(t, "2.5 hours", second.Duration)
	assert.Equal(t, "Bangla", second.Language)
	assert.Nil(t, second.OriginalPrice)
	assert.Nil(t, second.Category)
}

func TestCourseServiceSearchZeroOriginalPriceIsNoDiscount(t *testing.T) {
	repo := &mockCourseRepo{rows: []models.CourseRow{
		{Course: models.Course{ID: 1, Title: "Free", Level: "beginner", Language: "english", OriginalPrice: f64Ptr(0)}},
		{Course: models.Course{ID: 2, Title: "Odd", Level: "beginner", Language: "english", OriginalPrice: f64Ptr(-5)}},
		{Course: models.Course{ID: 3, Title: "Sale", Level: "beginner", Language: "english", Price: 10, OriginalPrice: f64Ptr(0.5)}},
	}}
	svc := newCourseServiceForTest(repo)

	courses, err := svc.Search(context.Background(), dto.CourseSearchQuery{})
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.Nil(t, courses[0].OriginalPrice)
	assert.Nil(t, courses[1].OriginalPrice)
	require.NotNil(t, courses[2].OriginalPrice)
	assert.Equal(t, 0, *courses[2].OriginalPrice)
}

func TestCourseServiceSearchEmptyIsNotNil(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})
	courses, err := svc.Search(context.Background(), dto.CourseSearchQuery{})
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestCourseServiceSearchFailureIsGeneric(t *testing.T) {
	repo := &mockCourseRepo{searchErr: errors.New("pq: password authentication failed for user \"postgres\"")}
	svc := newCourseServiceForTest(repo)

	courses, err := svc.Search(context.Background(), dto.CourseSearchQuery{})
	require.Error(t, err)
	assert.Nil(t, courses)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSearchFailed.Code, appErr.Code)
	assert.Equal(t, "Failed to fetch courses", appErr.Message)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
}

func TestCourseServiceGet(t *testing.T) {
	repo := &mockCourseRepo{byID: map[int64]models.CourseRow{
		7: {Course: models.Course{ID: 7, Title: "Design", Level: "intermediate", Language: "english", DurationHours: 1}},
	}}
	svc := newCourseServiceForTest(repo)

	course, err := svc.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, "Intermediate", course.Level)
	assert.Equal(t, "1 hours", course.Duration)

	for _, id := range []string{"8", "abc", "-1", ""} {
		_, err = svc.Get(context.Background(), id)
		assert.True(t, errors.Is(err, appErrors.ErrNotFound), id)
	}

	repo.findErr = sql.ErrConnDone
	_, err = svc.Get(context.Background(), "7")
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
}

func TestCourseServiceCreateMissingFields(t *testing.T) {
	repo := &mockCourseRepo{}
	svc := newCourseServiceForTest(repo)

	_, err := svc.Create(context.Background(), dto.CreateCourseRequest{})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrMissingRequiredField.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, []string{"title", "category_id", "level", "language"}, appErr.Fields)
	assert.Empty(t, repo.created)

	_, err = svc.Create(context.Background(), dto.CreateCourseRequest{Title: "   ", CategoryID: 1, Level: "beginner", Language: "english"})
	assert.Equal(t, []string{"title"}, appErrors.FromError(err).Fields)
}

func TestCourseServiceCreateInvalidValues(t *testing.T) {
	svc := newCourseServiceForTest(&mockCourseRepo{})

	_, err := svc.Create(context.Background(), dto.CreateCourseRequest{
		Title: "X", CategoryID: 1, Level: "beginner", Language: "english", Price: f64Ptr(-1),
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Equal(t, []string{"price"}, appErr.Fields)
}

func TestCourseServiceCreateDefaults(t *testing.T) {
	repo := &mockCourseRepo{}
	cacheRepo := newMemoryCache()
	cacheRepo.values[FilterOptionsCacheKey] = dto.FilterOptions{}
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewCourseService(repo, cache, NewMetricsService(), validator.New(), zap.NewNop(), CourseServiceConfig{})

	course, err := svc.Create(context.Background(), dto.CreateCourseRequest{
		Title: "X", CategoryID: 1, Level: "Beginner", Language: "ENGLISH",
	})
	require.NoError(t, err)
	assert.NotZero(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	assert.Equal(t, 0.0, course.Price)
	assert.Equal(t, 0, course.TotalLessons)
	assert.Equal(t, 0.0, course.DurationHours)
	assert.False(t, course.IsPremium)
	assert.False(t, course.IsPublished)
	assert.Nil(t, course.OriginalPrice)
	assert.Nil(t, course.InstructorID)
	assert.Equal(t, "beginner", course.Level)
	assert.Equal(t, "english", course.Language)
	assert.Contains(t, cacheRepo.deleted, FilterOptionsCacheKey)
}

func TestCourseServiceCreateSurvivesCacheInvalidationFailure(t *testing.T) {
	repo := &mockCourseRepo{}
	cacheRepo := newMemoryCache()
	cacheRepo.deleteErr = errors.New("redis: connection pool timeout")
	cache := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	svc := NewCourseService(repo, cache, nil, validator.New(), zap.NewNop(), CourseServiceConfig{})

	course, err := svc.Create(context.Background(), dto.CreateCourseRequest{
		Title: "X", CategoryID: 1, Level: "beginner", Language: "english",
	})
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.Len(t, repo.created, 1)
	assert.Empty(t, cacheRepo.deleted)
}

func TestCourseServiceCreateForeignKeyViolation(t *testing.T) {
	repo := &mockCourseRepo{createErr: &pq.Error{Code: "23503", Message: "insert or update on table \"courses\" violates foreign key constraint"}}
	svc := newCourseServiceForTest(repo)

	_, err := svc.Create(context.Background(), dto.CreateCourseRequest{Title: "X", CategoryID: 99, Level: "beginner", Language: "english"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCourseServiceCreateStoreFailure(t *testing.T) {
	repo := &mockCourseRepo{createErr: errors.New("connection reset")}
	svc := newCourseServiceForTest(repo)

	_, err := svc.Create(context.Background(), dto.CreateCourseRequest{Title: "X", CategoryID: 1, Level: "beginner", Language: "english"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Equal(t, "Failed to create course", appErr.Message)
}

func TestUpperFirst(t *testing.T) {
	assert.Equal(t, "Advanced", upperFirst("advanced"))
	assert.Equal(t, "", upperFirst(""))
	assert.Equal(t, "Éclair", upperFirst("éclair"))
	assert.Equal(t, "DATA", upperFirst("dATA"))
}
