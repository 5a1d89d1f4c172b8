package dto

// CourseSearchQuery carries raw catalog query-string values before normalisation.
type CourseSearchQuery struct {
	Category string
	Level    string
	Language string
	Search   string
	Limit    string
	Offset   string
}

// CourseDisplay is the display-ready projection of a course returned to catalog clients.
type CourseDisplay struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Instructor    string  `json:"instructor"`
	Category      *string `json:"category"`
	Level         string  `json:"level"`
	Duration      string  `json:"duration"`
	Students      int     `json:"students"`
	Rating        float64 `json:"rating"`
	Price         int     `json:"price"`
	OriginalPrice *int    `json:"originalPrice"`
	Thumbnail     *string `json:"thumbnail"`
	Description   *string `json:"description"`
	Lessons       int     `json:"lessons"`
	IsPremium     bool    `json:"isPremium"`
	Language      string  `json:"language"`
}

// CreateCourseRequest is the authoring payload for a new course.
type CreateCourseRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   *string  `json:"description"`
	InstructorID  *int64   `json:"instructor_id" validate:"omitempty,gt=0"`
	CategoryID    int64    `json:"category_id" validate:"required"`
	Level         string   `json:"level" validate:"required"`
	Language      string   `json:"language" validate:"required"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	OriginalPrice *float64 `json:"original_price" validate:"omitempty,gte=0"`
	ThumbnailURL  *string  `json:"thumbnail_url"`
	DurationHours *float64 `json:"duration_hours" validate:"omitempty,gte=0"`
	TotalLessons  *int     `json:"total_lessons" validate:"omitempty,gte=0"`
	IsPremium     *bool    `json:"is_premium"`
	IsPublished   *bool    `json:"is_published"`
}

// FilterOptions lists the values a catalog client can offer for each filter, "All" first.
type FilterOptions struct {
	Categories []string `json:"categories"`
	Levels     []string `json:"levels"`
	Languages  []string `json:"languages"`
}
