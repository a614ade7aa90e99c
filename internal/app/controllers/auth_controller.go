package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sigesco/sigesco/internal/app/models/dto"
	"github.com/sigesco/sigesco/internal/app/services"
	"github.com/sigesco/sigesco/internal/middleware"
)

// AuthController handles staff authentication
type AuthController struct {
	authService *services.AuthService
	tokenTTL    int64
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, tokenTTLSeconds int64) *AuthController {
	return &AuthController{
		authService: authService,
		tokenTTL:    tokenTTLSeconds,
	}
}

// Login authenticates a staff account
// @Summary Staff login
// @Description Verifies credentials and returns a JWT access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Authenticated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, user, err := c.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   c.tokenTTL,
		FullName:    user.FullName,
		Role:        string(user.Role),
	}))
}
