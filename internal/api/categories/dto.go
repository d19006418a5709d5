package categories

type CreateCategoryRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	ImageURL     *string `json:"image_url"`
	DisplayOrder *int    `json:"display_order"`
	IsActive     *bool   `json:"is_active"`
}

type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}
