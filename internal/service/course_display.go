package service

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/noah-isme/course-catalog-api/internal/dto"
	"github.com/noah-isme/course-catalog-api/internal/models"
)

const unknownInstructor = "Unknown"

func toCourseDisplay(row models.CourseRow) dto.CourseDisplay {
	instructor := unknownInstructor
	if row.InstructorName != nil && *row.InstructorName != "" {
		instructor = *row.InstructorName
	}

	// A zero or negative original price means no discount.
	var originalPrice *int
	if row.OriginalPrice != nil && *row.OriginalPrice > 0 {
		v := int(math.Trunc(*row.OriginalPrice))
		originalPrice = &v
	}

	return dto.CourseDisplay{
		ID:            row.ID,
		Title:         row.Title,
		Instructor:    instructor,
		Category:      row.CategoryName,
		Level:         upperFirst(row.Level),
		Duration:      formatHours(row.DurationHours),
		Students:      row.TotalStudents,
		Rating:        row.Rating,
		Price:         int(math.Trunc(row.Price)),
		OriginalPrice: originalPrice,
		Thumbnail:     row.ThumbnailURL,
		Description:   row.Description,
		Lessons:       row.TotalLessons,
		IsPremium:     row.IsPremium,
		Language:      upperFirst(row.Language),
	}
}

func toCourseDisplays(rows []models.CourseRow) []dto.CourseDisplay {
	out := make([]dto.CourseDisplay, len(rows))
	for i, row := range rows {
		out[i] = toCourseDisplay(row)
	}
	return out
}

// upperFirst upper-cases only the first rune; the remainder is left untouched.
func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64) + " hours"
}
