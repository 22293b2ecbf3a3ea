package storage

import (
	"fmt"

	"go.uber.org/zap"

	labelapp "github.com/lucamadonia/dpp-backend/internal/application/label"
	infraconfig "github.com/lucamadonia/dpp-backend/internal/infrastructure/config"
)

// NewArtifactStorage builds the artifact store selected by the storage
// driver. baseURL is used by the local driver to produce serving URLs.
func NewArtifactStorage(cfg *infraconfig.StorageConfig, baseURL string, logger *zap.Logger) (labelapp.ArtifactStorage, error) {
	switch cfg.Driver {
	case "s3":
		return NewS3ArtifactStorage(cfg, WithLogger(logger))
	case "local":
		return NewLocalArtifactStorage(cfg.LocalPath, baseURL, logger)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
