package dto

type CreateCategoryDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateCategoryDTO: a nil Description leaves the stored one untouched
type UpdateCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
