package categories

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"menu-app/internal/api/respond"
	"menu-app/internal/domain/i18n"
	"menu-app/internal/domain/menu"
	"menu-app/internal/platform/logger"
	"menu-app/internal/repos"
	"menu-app/internal/translation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	menu         repos.MenuRepo
	translations repos.TranslationRepo
	invalidator  translation.Invalidator
	log          *logger.Logger
}

func NewHandler(menuRepo repos.MenuRepo, translations repos.TranslationRepo, invalidator translation.Invalidator, baseLog *logger.Logger) *Handler {
	return &Handler{menu: menuRepo, translations: translations, invalidator: invalidator, log: baseLog.With("handler", "categories")}
}

// GET /admin/categories
func (h *Handler) List(c *gin.Context) {
	cats, err := h.menu.ListCategories(c.Request.Context(), nil, false)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

// GET /admin/categories/:id
func (h *Handler) Get(c *gin.Context) {
	cat, err := h.menu.GetCategory(c.Request.Context(), nil, c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// POST /admin/categories
func (h *Handler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	slug, err := h.uniqueSlug(ctx, name, "")
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	cat := menu.Category{
		Name:        name,
		Slug:        slug,
		Description: req.Description,
		Icon:        req.Icon,
		ImageURL:    req.ImageURL,
		IsActive:    true,
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	} else {
		n, err := h.menu.CountCategories(ctx, nil)
		if err != nil {
			respond.Error(c, h.log, err)
			return
		}
		cat.DisplayOrder = int(n)
	}

	if err := h.menu.CreateCategory(ctx, nil, &cat); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusCreated, cat)
}

// PUT /admin/categories/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	if _, err := h.menu.GetCategory(ctx, nil, id); err != nil {
		respond.Error(c, h.log, err)
		return
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		slug, err := h.uniqueSlug(ctx, name, id)
		if err != nil {
			respond.Error(c, h.log, err)
			return
		}
		fields["name"] = name
		fields["slug"] = slug
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Icon != nil {
		fields["icon"] = *req.Icon
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.DisplayOrder != nil {
		fields["display_order"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		fields["is_active"] = *req.IsActive
	}

	cat, err := h.menu.UpdateCategory(ctx, nil, id, fields)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusOK, cat)
}

// DELETE /admin/categories/:id
// Removes the category, its items and every translation of either.
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	var removed int64
	err := h.menu.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := h.menu.GetCategory(ctx, tx, id); err != nil {
			return err
		}
		items, err := h.menu.ListItemsByCategory(ctx, tx, id)
		if err != nil {
			return err
		}
		for _, it := range items {
			n, err := h.translations.DeleteByEntity(ctx, tx, i18n.EntityMenuItem, it.ID)
			if err != nil {
				return err
			}
			removed += n
			if err := h.menu.DeleteItem(ctx, tx, it.ID); err != nil {
				return err
			}
		}
		n, err := h.translations.DeleteByEntity(ctx, tx, i18n.EntityCategory, id)
		if err != nil {
			return err
		}
		removed += n
		return h.menu.DeleteCategory(ctx, tx, id)
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}

	h.log.Info("category deleted", "category_id", id, "translations_removed", removed)
	h.invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// POST /admin/categories/reorder
func (h *Handler) Reorder(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if err := h.menu.ReorderCategories(ctx, nil, req.IDs); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Categories reordered"})
}

func (h *Handler) uniqueSlug(ctx context.Context, name, exceptID string) (string, error) {
	base := menu.MakeSlug(name)
	slug := base
	for i := 2; ; i++ {
		exists, err := h.menu.SlugExists(ctx, nil, slug, exceptID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

func (h *Handler) invalidate(ctx context.Context) {
	if h.invalidator == nil {
		return
	}
	if err := h.invalidator.Invalidate(ctx); err != nil {
		h.log.Warn("menu cache invalidation failed", "error", err)
	}
}
