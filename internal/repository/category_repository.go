package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/course-catalog-api/internal/models"
)

// CategoryRepository exposes read queries over categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository instantiates the repository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListWithPublishedCourses returns categories that have at least one published course, by name.
func (r *CategoryRepository) ListWithPublishedCourses(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT cat.id, cat.name, COUNT(c.id) AS course_count
        FROM categories cat
        JOIN courses c ON c.category_id = cat.id AND c.is_published = true
        GROUP BY cat.id, cat.name
        ORDER BY cat.name ASC`

	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}
