package service

import (
	"context"
	"time"

	"github.com/dkotelnikov/user-service/internal/config"
	"github.com/dkotelnikov/user-service/internal/logger"
	"github.com/dkotelnikov/user-service/models"
)

type appInfoService struct {
	appVersion string

	logger *logger.Logger
}

func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		appVersion: cfg.Version,
		logger:     logger,
	}, nil
}

func (s *appInfoService) GetAppVersion(ctx context.Context) string {
	return s.appVersion
}

func (s *appInfoService) Health(ctx context.Context) models.HealthResponse {
	return models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   s.appVersion,
	}
}
