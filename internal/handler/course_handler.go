package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-catalog-api/internal/dto"
	"github.com/noah-isme/course-catalog-api/internal/middleware"
	"github.com/noah-isme/course-catalog-api/internal/models"
	"github.com/noah-isme/course-catalog-api/internal/service"
	appErrors "github.com/noah-isme/course-catalog-api/pkg/errors"
	"github.com/noah-isme/course-catalog-api/pkg/response"
)

type courseService interface {
	Search(ctx context.Context, q dto.CourseSearchQuery) ([]dto.CourseDisplay, error)
	Get(ctx context.Context, id string) (*dto.CourseDisplay, error)
	Create(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error)
}

type catalogService interface {
	FilterOptions(ctx context.Context) (*dto.FilterOptions, bool, error)
}

type exportService interface {
	Export(ctx context.Context, q dto.CourseSearchQuery, format string) (*service.ExportFile, error)
}

// CourseHandler exposes the course catalog endpoints.
type CourseHandler struct {
	courses courseService
	catalog catalogService
	exports exportService
}

// NewCourseHandler constructs CourseHandler.
func NewCourseHandler(courses courseService, catalog catalogService, exports exportService) *CourseHandler {
	return &CourseHandler{courses: courses, catalog: catalog, exports: exports}
}

func searchQuery(c *gin.Context) dto.CourseSearchQuery {
	return dto.CourseSearchQuery{
		Category: c.Query("category"),
		Level:    c.Query("level"),
		Language: c.Query("language"),
		Search:   c.Query("search"),
		Limit:    c.Query("limit"),
		Offset:   c.Query("offset"),
	}
}

// List godoc
// @Summary Search published courses
// @Tags Courses
// @Produce json
// @Param category query string false "Category name, All for any"
// @Param level query string false "Level, All for any"
// @Param language query string false "Language, All for any"
// @Param search query string false "Substring of title or description"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} response.ErrorBody
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.Search(c.Request.Context(), searchQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "courses", courses)
}

// Get godoc
// @Summary Get a published course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.ErrorBody
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "course", course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body dto.CreateCourseRequest true "Course payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.ErrorBody
// @Failure 500 {object} response.ErrorBody
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "course", course)
}

// Filters godoc
// @Summary Filter options for the catalog
// @Tags Courses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /courses/filters [get]
func (h *CourseHandler) Filters(c *gin.Context) {
	opts, hit, err := h.catalog.FilterOptions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, "categories", opts.Categories, gin.H{
		"levels":    opts.Levels,
		"languages": opts.Languages,
	})
}

// Export godoc
// @Summary Export a catalog page as CSV or PDF
// @Tags Courses
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorBody
// @Router /courses/export [get]
func (h *CourseHandler) Export(c *gin.Context) {
	file, err := h.exports.Export(c.Request.Context(), searchQuery(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
