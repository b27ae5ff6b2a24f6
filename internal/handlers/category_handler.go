package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "spendwize/internal/errors"
	"spendwize/internal/models"
	"spendwize/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// RenameCategoryRequest represents the request payload for renaming a category
type RenameCategoryRequest struct {
	Name string `json:"category_name" binding:"required,max=100"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID     string              `json:"id"`
	UserID string              `json:"user_id"`
	Type   models.CategoryType `json:"type"`
	Name   string              `json:"category_name"`
}

type categoryTypeParams struct {
	Type string `form:"type" binding:"omitempty,category_type"`
}

// categoryTypeQuery reads the optional ?type= filter.
func categoryTypeQuery(c *gin.Context) (*models.CategoryType, error) {
	var params categoryTypeParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if params.Type == "" {
		return nil, nil
	}
	t := models.CategoryType(params.Type)
	return &t, nil
}

// ListCategories handles the retrieval of the user's categories. The
// default set is seeded on first access.
// @Summary     List categories
// @Description List the authenticated user's categories, seeding the defaults if the user has none
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by category type (income/expense)"
// @Success     200 {array} CategoryResponse "List of categories"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryType, err := categoryTypeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListCategories(c.Request.Context(), userID, categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetOptions returns the choices a transaction form offers
// @Summary     Category options
// @Description Suggested labels, existing categories, currencies and payment methods for a transaction type
// @Tags        categories
// @Produce     json
// @Security    BearerAuth
// @Param       type query string true "Category type (income/expense)"
// @Success     200 {object} services.CategoryOptions "Form options"
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/options [get]
func (h *CategoryHandler) GetOptions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryType, err := categoryTypeQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if categoryType == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "type is required"))
		return
	}

	options, err := h.categoryService.Options(c.Request.Context(), userID, *categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"options": options})
}

// RenameCategory handles renaming a category
// @Summary     Rename a category
// @Description Rename one of the user's categories. Names are unique per user and type.
// @Tags        categories
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Category ID"
// @Param       request body RenameCategoryRequest true "New name"
// @Success     200 {object} CategoryResponse "Category renamed"
// @Failure     400 {object} ErrorResponse "Invalid input or duplicate name"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) RenameCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.RenameCategory(c.Request.Context(), userID, categoryID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "RENAME_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]any{"category_name": category.Name})

	c.JSON(http.StatusOK, gin.H{"category": category})
}
