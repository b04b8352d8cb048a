package models

// ShowDetails is the metadata of a single TV show as returned by the shows API.
type ShowDetails struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}
