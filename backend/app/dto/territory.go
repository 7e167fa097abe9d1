package dto

import "territorios/backend/app/models"

type CreateTerritoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Region      string `json:"region"`
}

type UpdateTerritoryRequest struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
	Region      string `json:"region"`
	// Comma-separated date list; invalid entries are dropped silently.
	TimesWhereItWasDone string `json:"times_where_it_was_done"`
}

type TerritoryPage struct {
	Page       []models.Territory `json:"page"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

type ClearEditorsRequest struct {
	ID       uint   `json:"id"`
	Username string `json:"username,omitempty"`
}

type ClearedResponse struct {
	Cleared int `json:"cleared"`
}
