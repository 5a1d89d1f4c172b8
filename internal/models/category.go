package models

// Category groups courses in the catalog.
type Category struct {
	ID          int64  `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	CourseCount int    `db:"course_count" json:"course_count"`
}
