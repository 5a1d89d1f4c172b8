package service

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/course-catalog-api/internal/dto"
	"github.com/noah-isme/course-catalog-api/internal/models"
	appErrors "github.com/noah-isme/course-catalog-api/pkg/errors"
)

type courseRepository interface {
	Search(ctx context.Context, filter models.CourseFilter) ([]models.CourseRow, error)
	FindPublishedByID(ctx context.Context, id int64) (*models.CourseRow, error)
	Create(ctx context.Context, course *models.Course) error
}

// CourseServiceConfig controls search pagination.
type CourseServiceConfig struct {
	DefaultLimit int
	MaxLimit     int
}

// CourseService implements catalog search and course authoring.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       CourseServiceConfig
}

// NewCourseService constructs the course service. cache and metrics may be nil.
func NewCourseService(repo courseRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cfg CourseServiceConfig) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	validate.RegisterTagNameFunc(jsonFieldName)
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		cfg.MaxLimit = cfg.DefaultLimit
	}
	return &CourseService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger, cfg: cfg}
}

// NormalizeFilter turns raw query values into a filter. Malformed or out-of-range
// pagination falls back to defaults instead of failing.
func (s *CourseService) NormalizeFilter(q dto.CourseSearchQuery) models.CourseFilter {
	filter := models.CourseFilter{
		Search: strings.TrimSpace(q.Search),
		Limit:  s.cfg.DefaultLimit,
	}

	if q.Category != models.FilterAll {
		filter.Category = q.Category
	}
	if level := strings.TrimSpace(q.Level); !strings.EqualFold(level, models.FilterAll) {
		filter.Level = strings.ToLower(level)
	}
	if language := strings.TrimSpace(q.Language); !strings.EqualFold(language, models.FilterAll) {
		filter.Language = strings.ToLower(language)
	}

	if limit, err := strconv.Atoi(strings.TrimSpace(q.Limit)); err == nil && limit > 0 {
		filter.Limit = limit
	}
	if filter.Limit > s.cfg.MaxLimit {
		filter.Limit = s.cfg.MaxLimit
	}
	if offset, err := strconv.Atoi(strings.TrimSpace(q.Offset)); err == nil && offset > 0 {
		filter.Offset = offset
	}

	return filter
}

// Search returns one page of display-ready published courses. Store failures surface as
// ErrSearchFailed and never yield partial results.
func (s *CourseService) Search(ctx context.Context, q dto.CourseSearchQuery) ([]dto.CourseDisplay, error) {
	filter := s.NormalizeFilter(q)

	start := time.Now()
	rows, err := s.repo.Search(ctx, filter)
	s.metrics.ObserveDBQuery("course_search", time.Since(start))
	if err != nil {
		s.metrics.RecordSearch(false, 0)
		s.logger.Error("course search failed",
			zap.String("category", filter.Category),
			zap.String("level", filter.Level),
			zap.String("language", filter.Language),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
			zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSearchFailed.Code, appErrors.ErrSearchFailed.Status, appErrors.ErrSearchFailed.Message)
	}

	s.metrics.RecordSearch(true, len(rows))
	return toCourseDisplays(rows), nil
}

// Get returns a single published course by id.
func (s *CourseService) Get(ctx context.Context, rawID string) (*dto.CourseDisplay, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	start := time.Now()
	row, err := s.repo.FindPublishedByID(ctx, id)
	s.metrics.ObserveDBQuery("course_get", time.Since(start))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		s.logger.Error("load course failed", zap.Int64("course_id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrSearchFailed.Code, appErrors.ErrSearchFailed.Status, "Failed to fetch course")
	}

	display := toCourseDisplay(*row)
	return &display, nil
}

// Create validates and stores a new course. level and language are stored lower-case.
func (s *CourseService) Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Level = strings.ToLower(strings.TrimSpace(req.Level))
	req.Language = strings.ToLower(strings.TrimSpace(req.Language))

	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordCreate("invalid")
		return nil, validationError(err)
	}

	course := &models.Course{
		Title:         req.Title,
		Description:   req.Description,
		InstructorID:  req.InstructorID,
		CategoryID:    req.CategoryID,
		Level:         req.Level,
		Language:      req.Language,
		OriginalPrice: req.OriginalPrice,
		ThumbnailURL:  req.ThumbnailURL,
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.DurationHours != nil {
		course.DurationHours = *req.DurationHours
	}
	if req.TotalLessons != nil {
		course.TotalLessons = *req.TotalLessons
	}
	if req.IsPremium != nil {
		course.IsPremium = *req.IsPremium
	}
	if req.IsPublished != nil {
		course.IsPublished = *req.IsPublished
	}

	start := time.Now()
	err := s.repo.Create(ctx, course)
	s.metrics.ObserveDBQuery("course_create", time.Since(start))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			s.metrics.RecordCreate("invalid")
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unknown category_id or instructor_id")
		}
		s.metrics.RecordCreate("failed")
		s.logger.Error("create course failed", zap.String("title", course.Title), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrCreateFailed.Code, appErrors.ErrCreateFailed.Status, appErrors.ErrCreateFailed.Message)
	}

	s.metrics.RecordCreate("ok")
	if err := s.cache.Invalidate(ctx, FilterOptionsCacheKey); err != nil {
		s.logger.Warn("filter options stay cached until expiry", zap.Int64("course_id", course.ID))
	}
	return course, nil
}

// validationError reports missing required fields ahead of other constraint failures.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	var missing, invalid []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		} else {
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return appErrors.MissingFields(missing)
	}
	appErr := appErrors.Clone(appErrors.ErrValidation, "Invalid fields: "+strings.Join(invalid, ", "))
	appErr.Fields = invalid
	appErr.Err = err
	return appErr
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
