package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Belphemur/TVShows/internal/models"
)

// showDTO mirrors the show payload. Older API revisions expose the identifier as
// "_id"; both spellings are accepted.
type showDTO struct {
	ID          string `json:"id"`
	LegacyID    string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

type episodeDTO struct {
	ID            string `json:"id"`
	LegacyID      string `json:"_id"`
	ShowID        string `json:"showId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	EpisodeNumber string `json:"episodeNumber"`
	Season        string `json:"season"`
	ImageURL      string `json:"imageUrl"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (d showDTO) toModel() (models.ShowDetails, error) {
	id := firstNonEmpty(d.ID, d.LegacyID)
	if id == "" {
		return models.ShowDetails{}, fmt.Errorf("required field %q missing", "id")
	}
	if strings.TrimSpace(d.Title) == "" {
		return models.ShowDetails{}, fmt.Errorf("required field %q missing", "title")
	}
	return models.ShowDetails{
		ID:          id,
		Title:       norm.NFC.String(d.Title),
		Description: d.Description,
		ImageURL:    d.ImageURL,
	}, nil
}

func (d episodeDTO) toModel() (models.Episode, error) {
	id := firstNonEmpty(d.ID, d.LegacyID)
	if id == "" {
		return models.Episode{}, fmt.Errorf("required field %q missing", "id")
	}
	return models.Episode{
		ID:            id,
		ShowID:        d.ShowID,
		Title:         norm.NFC.String(d.Title),
		Description:   d.Description,
		EpisodeNumber: d.EpisodeNumber,
		Season:        d.Season,
		ImageURL:      d.ImageURL,
	}, nil
}
