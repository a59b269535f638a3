package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/bacaxnot/finance-sub000/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles registration.
type authHandler struct {
	userService  portssvc.UserSvcFacade
	tokenService portssvc.TokenSvcFacade
}

func registerAuthRoutes(r *gin.Engine, userService portssvc.UserSvcFacade, tokenService portssvc.TokenSvcFacade) {
	h := &authHandler{userService: userService, tokenService: tokenService}

	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
	}
}

// register godoc
// @Summary Register a user
// @Description Creates a user and returns an access token for it
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   user body dto.RegisterUserRequest true "User details"
// @Success 201 {object} dto.RegisterResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Failed to register user"
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to issue access token")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.RegisterResponse{
		User:      dto.ToUserResponse(user),
		Token:     token,
		ExpiresAt: expiresAt,
	})
}
