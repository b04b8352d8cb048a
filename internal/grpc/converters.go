package grpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Belphemur/TVShows/internal/models"
)

// pageToStruct converts a page to its wire form. Field names follow the JSON
// tags of the models package; the request context is not sent.
func pageToStruct(page *models.ShowPage) (*structpb.Struct, error) {
	data, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("encode page: %w", err)
	}

	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("convert page: %w", err)
	}
	return out, nil
}

// PageFromStruct converts a page received from the service back to the model.
func PageFromStruct(s *structpb.Struct) (*models.ShowPage, error) {
	data, err := protojson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("convert page: %w", err)
	}

	var page models.ShowPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}
