package items

import (
	"context"
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
	return &Handler{menu: menuRepo, translations: translations, invalidator: invalidator, log: baseLog.With("handler", "items")}
}

// GET /admin/items?category_id=
func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		out []menu.MenuItem
		err error
	)
	if catID := c.Query("category_id"); catID != "" {
		out, err = h.menu.ListItemsByCategory(ctx, nil, catID)
	} else {
		out, err = h.menu.ListItems(ctx, nil, false)
	}
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /admin/items/:id
func (h *Handler) Get(c *gin.Context) {
	item, err := h.menu.GetItem(c.Request.Context(), nil, c.Param("id"))
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// POST /admin/items
func (h *Handler) Create(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if req.Price == nil || req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be zero or positive"})
		return
	}
	status := menu.StatusAvailable
	if req.Status != "" {
		if !menu.ValidStatus(req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = req.Status
	}

	ctx := c.Request.Context()
	if _, err := h.menu.GetCategory(ctx, nil, req.CategoryID); err != nil {
		respond.Error(c, h.log, err)
		return
	}

	item := menu.MenuItem{
		CategoryID:      req.CategoryID,
		Name:            name,
		Description:     req.Description,
		Price:           req.Price.Round(2),
		ImageURL:        req.ImageURL,
		Status:          status,
		IsFeatured:      req.IsFeatured,
		PreparationTime: req.PreparationTime,
		Calories:        req.Calories,
		PortionSize:     req.PortionSize,
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	} else {
		siblings, err := h.menu.ListItemsByCategory(ctx, nil, req.CategoryID)
		if err != nil {
			respond.Error(c, h.log, err)
			return
		}
		item.DisplayOrder = len(siblings)
	}

	if err := h.menu.CreateItem(ctx, nil, &item); err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusCreated, item)
}

// PUT /admin/items/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")
	fields := map[string]interface{}{}

	if req.CategoryID != nil {
		if _, err := h.menu.GetCategory(ctx, nil, *req.CategoryID); err != nil {
			respond.Error(c, h.log, err)
			return
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name cannot be empty"})
			return
		}
		fields["name"] = name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be zero or positive"})
			return
		}
		fields["price"] = req.Price.Round(2)
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.Status != nil {
		if !menu.ValidStatus(*req.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		fields["status"] = *req.Status
	}
	if req.IsFeatured != nil {
		fields["is_featured"] = *req.IsFeatured
	}
	if req.DisplayOrder != nil {
		fields["display_order"] = *req.DisplayOrder
	}
	if req.PreparationTime != nil {
		fields["preparation_time"] = *req.PreparationTime
	}
	if req.Calories != nil {
		fields["calories"] = *req.Calories
	}
	if req.PortionSize != nil {
		fields["portion_size"] = *req.PortionSize
	}

	item, err := h.menu.UpdateItem(ctx, nil, id, fields)
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusOK, item)
}

// DELETE /admin/items/:id
func (h *Handler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	err := h.menu.Transaction(ctx, func(tx *gorm.DB) error {
		if _, err := h.translations.DeleteByEntity(ctx, tx, i18n.EntityMenuItem, id); err != nil {
			return err
		}
		return h.menu.DeleteItem(ctx, tx, id)
	})
	if err != nil {
		respond.Error(c, h.log, err)
		return
	}
	h.invalidate(ctx)
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *Handler) invalidate(ctx context.Context) {
	if h.invalidator == nil {
		return
	}
	if err := h.invalidator.Invalidate(ctx); err != nil {
		h.log.Warn("menu cache invalidation failed", "error", err)
	}
}
