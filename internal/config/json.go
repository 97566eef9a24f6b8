package config

import (
	"context"
	"fmt"

	"github.com/MKhiriev/north-config/models"
	"github.com/MKhiriev/north-config/northconfig"
)

// parseJSON reads the settings file. Despite the name any format northconfig
// understands works; the format follows the extension. Durations are
// written as strings such as "30s".
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	resolved, err := northconfig.Resolve[StructuredConfig](context.Background(), northconfig.Options{
		Sources:     []northconfig.Source{northconfig.FileWithOptions(jsonFilePath, models.FileSourceOptions{})},
		StrictTypes: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error reading settings file: %w", err)
	}

	cfg := resolved.Value()
	cfg.JSONFilePath = ""
	return &cfg, nil
}
