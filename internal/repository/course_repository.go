package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-catalog-api/internal/models"
)

// Metric and flag columns are coalesced so a NULL left by another writer reads as zero.
const courseColumns = `c.id, c.title, c.description, c.instructor_id, c.category_id, c.level, c.language,
        COALESCE(c.price, 0) AS price, c.original_price, c.thumbnail_url,
        COALESCE(c.duration_hours, 0) AS duration_hours, COALESCE(c.total_lessons, 0) AS total_lessons,
        COALESCE(c.total_students, 0) AS total_students, COALESCE(c.rating, 0) AS rating,
        COALESCE(c.is_premium, false) AS is_premium, c.is_published, c.created_at, c.updated_at`

// Instructor names are resolved in the same statement; a dangling instructor_id yields NULL.
const courseSelect = `SELECT ` + courseColumns + `,
        cat.name AS category_name,
        CASE WHEN c.instructor_id IS NOT NULL
            THEN (SELECT u.name FROM users u JOIN instructors i ON i.user_id = u.id WHERE i.id = c.instructor_id)
            ELSE 'Unknown'
        END AS instructor_name
        FROM courses c
        LEFT JOIN categories cat ON cat.id = c.category_id`

const publishedOnly = "c.is_published = true"

// CourseRepository reads and writes the courses table.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// Search returns one page of published courses matching filter, newest first.
// The filter is expected to be normalised by the caller.
func (r *CourseRepository) Search(ctx context.Context, filter models.CourseFilter) ([]models.CourseRow, error) {
	q := newSelectQuery(courseSelect, publishedOnly)
	if filter.Category != "" {
		q.Where("cat.name", "=", filter.Category)
	}
	if filter.Level != "" {
		q.Where("c.level", "=", filter.Level)
	}
	if filter.Language != "" {
		q.Where("c.language", "=", filter.Language)
	}
	if filter.Search != "" {
		q.WhereAny("LIKE", containsPattern(filter.Search), "LOWER(c.title)", "LOWER(c.description)")
	}
	q.OrderBy("c.created_at DESC", "c.id DESC")

	query, args := q.Build(filter.Limit, filter.Offset)

	courses := make([]models.CourseRow, 0, filter.Limit)
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}
	return courses, nil
}

// FindPublishedByID returns a published course. sql.ErrNoRows is returned unwrapped when absent.
func (r *CourseRepository) FindPublishedByID(ctx context.Context, id int64) (*models.CourseRow, error) {
	query, args := newSelectQuery(courseSelect, publishedOnly).Where("c.id", "=", id).Build(1, 0)
	var row models.CourseRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a course and refreshes it with the stored row, including id and schema defaults.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	const query = `INSERT INTO courses (title, description, instructor_id, category_id, level, language,
        price, original_price, thumbnail_url, duration_hours, total_lessons, total_students, rating,
        is_premium, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
        RETURNING id, title, description, instructor_id, category_id, level, language,
        COALESCE(price, 0) AS price, original_price, thumbnail_url,
        COALESCE(duration_hours, 0) AS duration_hours, COALESCE(total_lessons, 0) AS total_lessons,
        COALESCE(total_students, 0) AS total_students, COALESCE(rating, 0) AS rating,
        COALESCE(is_premium, false) AS is_premium, is_published, created_at, updated_at`

	row := r.db.QueryRowxContext(ctx, query,
		course.Title,
		course.Description,
		course.InstructorID,
		course.CategoryID,
		course.Level,
		course.Language,
		course.Price,
		course.OriginalPrice,
		course.ThumbnailURL,
		course.DurationHours,
		course.TotalLessons,
		course.TotalStudents,
		course.Rating,
		course.IsPremium,
		course.IsPublished,
		course.CreatedAt,
		course.UpdatedAt,
	)
	if err := row.StructScan(course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Ping checks store connectivity for readiness probes.
func (r *CourseRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
