package dto

// CreateAdDTO is bound from the text fields of the single-upload multipart form
type CreateAdDTO struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
}

// BulkAdsDTO is bound from the bulk multipart form. Titles and Descriptions
// arrive as JSON-encoded string arrays.
type BulkAdsDTO struct {
	Titles       string `form:"titles"`
	Descriptions string `form:"descriptions"`
	Category     string `form:"category"`
}

// UpdateAdDTO fields are optional; nil means unchanged.
type UpdateAdDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}
