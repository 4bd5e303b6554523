package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "jobtracker/internal/errors"
	"jobtracker/internal/model"
	"jobtracker/internal/service"
	"jobtracker/internal/session"
)

// JobHandler handles job-application endpoints. All routes sit behind the
// session middleware, so a session is always present in context.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// CreateJobRequest represents a job creation request. Status, notes and
// category are optional and default server-side.
type CreateJobRequest struct {
	Company     string `json:"company" validate:"required"`
	Role        string `json:"role" validate:"required"`
	DateApplied string `json:"dateApplied" validate:"required"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	Category    string `json:"category"`
}

// UpdateJobRequest represents a partial update; absent fields stay untouched.
type UpdateJobRequest struct {
	Company     *string `json:"company"`
	Role        *string `json:"role"`
	DateApplied *string `json:"dateApplied"`
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	Category    *string `json:"category"`
}

// DeleteJobsRequest represents a bulk delete request.
type DeleteJobsRequest struct {
	IDs []string `json:"ids" validate:"required"`
}

// DeleteJobsResponse reports how many jobs were actually deleted.
type DeleteJobsResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

// List godoc
// @Summary List the user's job applications, newest first
// @Tags jobs
// @Produce json
// @Success 200 {array} model.JobApplication
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	sess, _ := session.FromContext(c)

	jobs, err := h.jobService.List(c.Request().Context(), sess.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get godoc
// @Summary Get a single job application
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} model.JobApplication
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	sess, _ := session.FromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// Malformed ids behave like missing ones, matching the ownership rule.
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Message: apperrors.ErrJobNotFound.Error()})
	}

	job, err := h.jobService.Get(c.Request().Context(), id, sess.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}
	return c.JSON(http.StatusOK, job)
}

// Create godoc
// @Summary Create a job application
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body CreateJobRequest true "Job fields"
// @Success 201 {object} model.JobApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	sess, _ := session.FromContext(c)

	var req CreateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "Invalid input",
			Errors:  apperrors.FieldErrors(err),
		})
	}
	if fieldErrs := validateEnums(req.Status, req.Category); len(fieldErrs) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "Invalid input",
			Errors:  fieldErrs,
		})
	}

	job, err := h.jobService.Create(c.Request().Context(), sess.UserID, service.CreateJobInput{
		Company:     req.Company,
		Role:        req.Role,
		DateApplied: req.DateApplied,
		Status:      model.JobStatus(req.Status),
		Notes:       req.Notes,
		Category:    model.JobCategory(req.Category),
	})
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}
	return c.JSON(http.StatusCreated, job)
}

// Update godoc
// @Summary Partially update a job application
// @Tags jobs
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body UpdateJobRequest true "Fields to update"
// @Success 200 {object} model.JobApplication
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs/{id} [patch]
func (h *JobHandler) Update(c echo.Context) error {
	sess, _ := session.FromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, apperrors.ErrorResponse{Message: apperrors.ErrJobNotFound.Error()})
	}

	var req UpdateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}

	// Unlike Create, a present field always means "write this value", so an
	// explicit empty string is invalid rather than a request for the default.
	var fieldErrs []apperrors.FieldError
	if req.Status != nil && !model.JobStatus(*req.Status).Valid() {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "status", Message: "is invalid"})
	}
	if req.Category != nil && !model.JobCategory(*req.Category).Valid() {
		fieldErrs = append(fieldErrs, apperrors.FieldError{Field: "category", Message: "is invalid"})
	}
	if len(fieldErrs) > 0 {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "Invalid input",
			Errors:  fieldErrs,
		})
	}

	input := service.UpdateJobInput{
		Company:     req.Company,
		Role:        req.Role,
		DateApplied: req.DateApplied,
		Notes:       req.Notes,
	}
	if req.Status != nil {
		s := model.JobStatus(*req.Status)
		input.Status = &s
	}
	if req.Category != nil {
		cat := model.JobCategory(*req.Category)
		input.Category = &cat
	}

	job, err := h.jobService.Update(c.Request().Context(), id, sess.UserID, input)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}
	return c.JSON(http.StatusOK, job)
}

// DeleteMany godoc
// @Summary Bulk-delete job applications by id
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body DeleteJobsRequest true "Job ids"
// @Success 200 {object} DeleteJobsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs [delete]
func (h *JobHandler) DeleteMany(c echo.Context) error {
	sess, _ := session.FromContext(c)

	var req DeleteJobsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{Message: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "Invalid input",
			Errors:  apperrors.FieldErrors(err),
		})
	}

	deleted, err := h.jobService.DeleteMany(c.Request().Context(), sess.UserID, req.IDs)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}
	return c.JSON(http.StatusOK, DeleteJobsResponse{DeletedCount: deleted})
}

// ExportCSV godoc
// @Summary Export the user's job applications as CSV
// @Tags jobs
// @Produce text/csv
// @Success 200 {string} string "CSV file"
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jobs/export [get]
func (h *JobHandler) ExportCSV(c echo.Context) error {
	sess, _ := session.FromContext(c)

	jobs, err := h.jobService.List(c.Request().Context(), sess.UserID)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, apperrors.ErrorResponse{Message: httpErr.Message})
	}

	filename := fmt.Sprintf("job-tracker-export-%s.csv", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(jobsCSV(jobs)))
}

func validateEnums(status, category string) []apperrors.FieldError {
	var errs []apperrors.FieldError
	if status != "" && !model.JobStatus(status).Valid() {
		errs = append(errs, apperrors.FieldError{Field: "status", Message: "is invalid"})
	}
	if category != "" && !model.JobCategory(category).Valid() {
		errs = append(errs, apperrors.FieldError{Field: "category", Message: "is invalid"})
	}
	return errs
}

// jobsCSV serializes jobs with every field double-quoted, matching the export
// file format the web client produces.
func jobsCSV(jobs []model.JobApplication) string {
	var b strings.Builder
	b.WriteString("Company,Role,Category,Date Applied,Status,Notes\n")
	for _, j := range jobs {
		row := []string{j.Company, j.Role, string(j.Category), j.DateApplied, string(j.Status), j.Notes}
		for i, field := range row {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(field, `"`, `""`))
			b.WriteByte('"')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
