package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigesco/sigesco/internal/app/models/dto"
	"github.com/sigesco/sigesco/internal/app/services"
	"github.com/sigesco/sigesco/internal/middleware"
)

// GradeController handles the grade section catalog
type GradeController struct {
	gradeService *services.GradeService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService) *GradeController {
	return &GradeController{gradeService: gradeService}
}

// CreateGrade creates a grade section
// @Summary Create a grade section
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GradeRequest true "Grade information"
// @Success 201 {object} dto.APIResponse{data=models.Grade} "Grade created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Grade already exists"
// @Router /grades [post]
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grade := req.Model()
	if err := c.gradeService.CreateGrade(ctx, grade); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(grade))
}

// GetGradeByID retrieves a grade with its occupancy
// @Summary Get grade by ID
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade retrieved"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /grades/{id} [get]
func (c *GradeController) GetGradeByID(ctx *gin.Context) {
	id := ctx.Param("id")

	grade, err := c.gradeService.GetGradeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	occupied, err := c.gradeService.GetOccupancy(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.GradeResponse{
		Grade:    *grade,
		Occupied: occupied,
	}))
}

// GetAllGrades lists all grade sections
// @Summary List grades
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Grade} "Grades retrieved"
// @Router /grades [get]
func (c *GradeController) GetAllGrades(ctx *gin.Context) {
	grades, err := c.gradeService.GetAllGrades(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(grades))
}

// UpdateGrade replaces all fields of a grade
// @Summary Update grade
// @Description Full field replacement. Lowering capacity below current occupancy is allowed; future admissions stay blocked until occupancy drops.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grade ID"
// @Param request body dto.GradeRequest true "Grade fields"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade updated"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 409 {object} dto.ErrorResponse "Grade tuple already exists"
// @Router /grades/{id} [put]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	var req dto.GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	grade := req.Model()
	grade.ID = ctx.Param("id")

	if err := c.gradeService.UpdateGrade(ctx, grade); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Grade updated"}))
}

// DeleteGrade removes an empty grade section
// @Summary Delete grade
// @Description Fails while any enrollment holds a seat in the grade. Teacher assignment links are removed in the same transaction.
// @Tags grades
// @Produce json
// @Security BearerAuth
// @Param id path string true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Grade deleted"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 409 {object} dto.ErrorResponse "Grade still occupied"
// @Router /grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	if err := c.gradeService.DeleteGrade(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Grade deleted"}))
}
