package service

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/course-catalog-api/internal/dto"
	"github.com/noah-isme/course-catalog-api/pkg/export"
	appErrors "github.com/noah-isme/course-catalog-api/pkg/errors"
)

// Supported export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportHeaders = []string{"id", "title", "instructor", "category", "level", "language", "duration", "lessons", "students", "rating", "price", "original_price", "premium"}

type courseSearcher interface {
	Search(ctx context.Context, q dto.CourseSearchQuery) ([]dto.CourseDisplay, error)
}

type renderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	ContentType() string
}

// ExportFile is a rendered catalog export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a catalog search page as a downloadable file.
type ExportService struct {
	courses   courseSearcher
	renderers map[string]renderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService with CSV and PDF renderers.
func NewExportService(courses courseSearcher, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		courses: courses,
		renderers: map[string]renderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		logger: logger,
	}
}

// Export runs the search pipeline for q and renders the result in the requested format.
func (s *ExportService) Export(ctx context.Context, q dto.CourseSearchQuery, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: use csv or pdf")
	}

	courses, err := s.courses.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	data, err := r.Render(coursesDataset(courses), "Course Catalog")
	if err != nil {
		s.logger.Error("render catalog export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Failed to export courses")
	}

	return &ExportFile{Filename: "courses." + format, ContentType: r.ContentType(), Data: data}, nil
}

func coursesDataset(courses []dto.CourseDisplay) export.Dataset {
	rows := make([]map[string]string, 0, len(courses))
	for _, c := range courses {
		row := map[string]string{
			"id":         strconv.FormatInt(c.ID, 10),
			"title":      c.Title,
			"instructor": c.Instructor,
			"category":   deref(c.Category),
			"level":      c.Level,
			"language":   c.Language,
			"duration":   c.Duration,
			"lessons":    strconv.Itoa(c.Lessons),
			"students":   strconv.Itoa(c.Students),
			"rating":     strconv.FormatFloat(c.Rating, 'f', -1, 64),
			"price":      strconv.Itoa(c.Price),
			"premium":    strconv.FormatBool(c.IsPremium),
		}
		if c.OriginalPrice != nil {
			row["original_price"] = strconv.Itoa(*c.OriginalPrice)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
