package models

import "time"

// Course levels and languages are stored lowercase.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"

	LanguageBangla  = "bangla"
	LanguageEnglish = "english"

	// FilterAll is the sentinel meaning "no constraint" for category, level and language.
	FilterAll = "All"
)

// Levels lists the known level tokens in display order.
var Levels = []string{LevelBeginner, LevelIntermediate, LevelAdvanced}

// Languages lists the known language tokens in display order.
var Languages = []string{LanguageBangla, LanguageEnglish}

// Course mirrors a row of the courses table.
type Course struct {
	ID            int64     `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Description   *string   `db:"description" json:"description"`
	InstructorID  *int64    `db:"instructor_id" json:"instructor_id"`
	CategoryID    int64     `db:"category_id" json:"category_id"`
	Level         string    `db:"level" json:"level"`
	Language      string    `db:"language" json:"language"`
	Price         float64   `db:"price" json:"price"`
	OriginalPrice *float64  `db:"original_price" json:"original_price"`
	ThumbnailURL  *string   `db:"thumbnail_url" json:"thumbnail_url"`
	DurationHours float64   `db:"duration_hours" json:"duration_hours"`
	TotalLessons  int       `db:"total_lessons" json:"total_lessons"`
	TotalStudents int       `db:"total_students" json:"total_students"`
	Rating        float64   `db:"rating" json:"rating"`
	IsPremium     bool      `db:"is_premium" json:"is_premium"`
	IsPublished   bool      `db:"is_published" json:"is_published"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// CourseRow is a course joined with its category and instructor names.
type CourseRow struct {
	Course
	CategoryName   *string `db:"category_name" json:"category_name"`
	InstructorName *string `db:"instructor_name" json:"instructor_name"`
}

// CourseFilter holds normalised search criteria. Empty strings mean "no filter".
type CourseFilter struct {
	Category string
	Level    string
	Language string
	Search   string
	Limit    int
	Offset   int
}
