package dto

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Description string `json:"description"`
}

// UpdateCategoryRequest entrada para actualizar; vacío no modifica.
type UpdateCategoryRequest struct {
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// CategoryListResponse listado de categorías activas.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}
