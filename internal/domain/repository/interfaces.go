package repository

import (
	"context"

	"TermPulse/internal/domain/models"
)

// Publisher emits completed analyses to an external sink.
type Publisher interface {
	PublishAnalysis(ctx context.Context, key string, a *models.Analysis) error
	Close() error
}
