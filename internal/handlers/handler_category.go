package handlers

import (
	"net/http"

	portssvc "github.com/bacaxnot/finance-sub000/internal/core/ports/services"
	"github.com/bacaxnot/finance-sub000/internal/dto"
	"github.com/gin-gonic/gin"
)

type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func registerCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade, mutating ...gin.HandlerFunc) {
	h := &categoryHandler{categoryService: categoryService}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)
		categories.POST("", withMiddleware(mutating, h.createCategory)...)
	}
}

// createCategory godoc
// @Summary Create a category
// @Description Creates a category for the logged-in user
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} ErrorResponse "Category already exists"
// @Security BearerAuth
// @Router /api/v1/categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.CreateCategory(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create category")
		return
	}
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// getCategory godoc
// @Summary Get a category
// @Description Returns one category owned by the logged-in user
// @Tags categories
// @Produce  json
// @Param   id path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /api/v1/categories/{id} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	category, err := h.categoryService.GetCategoryByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// listCategories godoc
// @Summary List categories
// @Description Lists the categories of the logged-in user
// @Tags categories
// @Produce  json
// @Success 200 {object} dto.ListCategoriesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(categories))
}
