package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigesco/sigesco/internal/app/models/dto"
	"github.com/sigesco/sigesco/internal/app/services"
	"github.com/sigesco/sigesco/internal/middleware"
)

// StudentController handles student registration and administrative edits
type StudentController struct {
	registrationService *services.RegistrationService
	defaultSchoolYear   string
}

// NewStudentController creates a new StudentController
func NewStudentController(registrationService *services.RegistrationService, defaultSchoolYear string) *StudentController {
	return &StudentController{
		registrationService: registrationService,
		defaultSchoolYear:   defaultSchoolYear,
	}
}

// RegisterStudent handles student registration
// @Summary Register a new student
// @Description Creates the student, resolves the guardian by national id and opens a pre-enrolled enrollment, all in one transaction
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RegisterStudentRequest true "Student and guardian information"
// @Success 201 {object} dto.APIResponse{data=dto.RegisterStudentResponse} "Student registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Duplicate enrollment"
// @Router /students [post]
func (c *StudentController) RegisterStudent(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid registration data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	schoolYear := req.SchoolYear
	if schoolYear == "" {
		schoolYear = c.defaultSchoolYear
	}

	studentID, err := c.registrationService.RegisterStudent(ctx, req.Student(), req.GuardianModel(), schoolYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.RegisterStudentResponse{
		StudentID:  studentID,
		SchoolYear: schoolYear,
	}))
}

// GetStudentByID retrieves a student with its guardian
// @Summary Get student by ID
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Student retrieved"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	student, err := c.registrationService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(student))
}

// GetAllStudents lists all students
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Students retrieved"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.registrationService.GetAllStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(students))
}

// UpdateStudent applies an administrative edit
// @Summary Update student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student fields"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Student updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.registrationService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.BirthDate = req.BirthDate
	student.Gender = req.Gender
	student.Nationality = req.Nationality
	student.Address = req.Address
	student.Phone = req.Phone
	student.SpecialCondition = req.SpecialCondition

	if err := c.registrationService.UpdateStudent(ctx, student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Student updated"}))
}
