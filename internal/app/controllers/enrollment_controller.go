package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigesco/sigesco/internal/app/models/dto"
	"github.com/sigesco/sigesco/internal/app/services"
	"github.com/sigesco/sigesco/internal/middleware"
)

// EnrollmentController exposes seat assignment and release
type EnrollmentController struct {
	allocationService *services.AllocationService
	defaultSchoolYear string
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(allocationService *services.AllocationService, defaultSchoolYear string) *EnrollmentController {
	return &EnrollmentController{
		allocationService: allocationService,
		defaultSchoolYear: defaultSchoolYear,
	}
}

func (c *EnrollmentController) schoolYear(ctx *gin.Context, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	if y := ctx.Query("schoolYear"); y != "" {
		return y
	}
	return c.defaultSchoolYear
}

// AssignSeat seats a student in a grade
// @Summary Assign a seat
// @Description Seats the student's enrollment in the grade, failing when the grade is full. Reassignment from another grade is atomic.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.AssignSeatRequest true "Target grade"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Seat assigned"
// @Failure 404 {object} dto.ErrorResponse "Student, enrollment or grade not found"
// @Failure 409 {object} dto.ErrorResponse "Grade full or concurrent conflict"
// @Router /students/{id}/seat [post]
func (c *EnrollmentController) AssignSeat(ctx *gin.Context) {
	var req dto.AssignSeatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid seat assignment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	err := c.allocationService.AssignSeat(ctx, ctx.Param("id"), req.GradeID, c.schoolYear(ctx, req.SchoolYear))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Seat assigned"}))
}

// ReleaseSeat withdraws a student from its seat
// @Summary Release a seat
// @Description Returns the student's enrollment to the pre-enrolled pool. Releasing an unseated student succeeds.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param schoolYear query string false "School year (defaults to configured academic year)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Seat released"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /students/{id}/seat [delete]
func (c *EnrollmentController) ReleaseSeat(ctx *gin.Context) {
	err := c.allocationService.ReleaseSeat(ctx, ctx.Param("id"), c.schoolYear(ctx, ""))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Seat released"}))
}

// Graduate moves a student's enrollment to the terminal graduated state
// @Summary Graduate a student
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param schoolYear query string false "School year (defaults to configured academic year)"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student graduated"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /students/{id}/graduate [post]
func (c *EnrollmentController) Graduate(ctx *gin.Context) {
	err := c.allocationService.Graduate(ctx, ctx.Param("id"), c.schoolYear(ctx, ""))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Student graduated"}))
}

// GetEnrollment returns a student's enrollment for a school year
// @Summary Get enrollment
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param schoolYear query string false "School year (defaults to configured academic year)"
// @Success 200 {object} dto.APIResponse{data=models.Enrollment} "Enrollment retrieved"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Router /students/{id}/enrollment [get]
func (c *EnrollmentController) GetEnrollment(ctx *gin.Context) {
	enrollment, err := c.allocationService.GetEnrollment(ctx, ctx.Param("id"), c.schoolYear(ctx, ""))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(enrollment))
}
