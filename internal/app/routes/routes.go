package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sigesco/sigesco/internal/app/controllers"
	"github.com/sigesco/sigesco/internal/app/models"
	"github.com/sigesco/sigesco/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	enrollmentController *controllers.EnrollmentController,
	gradeController *controllers.GradeController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Students and enrollments: any staff role
	students := authenticated.Group("/students")
	{
		students.POST("", studentController.RegisterStudent)
		students.GET("", studentController.GetAllStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.PUT("/:id", studentController.UpdateStudent)

		students.GET("/:id/enrollment", enrollmentController.GetEnrollment)
		students.POST("/:id/seat", enrollmentController.AssignSeat)
		students.DELETE("/:id/seat", enrollmentController.ReleaseSeat)
		students.POST("/:id/graduate", enrollmentController.Graduate)
	}

	// Grade catalog: reads for any staff, mutations admin only
	grades := authenticated.Group("/grades")
	{
		grades.GET("", gradeController.GetAllGrades)
		grades.GET("/:id", gradeController.GetGradeByID)

		adminOnly := grades.Group("")
		adminOnly.Use(authMiddleware.RequireRole(models.RoleAdmin))
		{
			adminOnly.POST("", gradeController.CreateGrade)
			adminOnly.PUT("/:id", gradeController.UpdateGrade)
			adminOnly.DELETE("/:id", gradeController.DeleteGrade)
		}
	}
}
