package dto

import "github.com/recipebox/recipebox/internal/model"

// CreateTagRequest represents the request body for creating a tag.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// TagResponse represents a tag in API responses.
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ToTagResponse converts a Tag model to TagResponse.
func ToTagResponse(tag *model.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

// ToTagListResponse converts a slice of Tag models to response DTOs.
func ToTagListResponse(tags []*model.Tag) []TagResponse {
	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = ToTagResponse(tag)
	}
	return responses
}
