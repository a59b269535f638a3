package handlers

import (
	"net/http"

	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
	}
}

// getMe godoc
// @Summary Get the current user
// @Description Returns the authenticated user
// @Tags users
// @Produce  json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "User not found"
// @Security BearerAuth
// @Router /api/v1/users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
