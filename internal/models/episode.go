package models

// Episode is one entry of a show's episode list. It is linked to its show only
// through ShowID.
type Episode struct {
	ID            string `json:"id"`
	ShowID        string `json:"showId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EpisodeNumber string `json:"episodeNumber"`
	Season        string `json:"season"`
	ImageURL      string `json:"imageUrl"`
}
