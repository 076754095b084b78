package repository

import (
	"context"

	"github.com/shiftcheck/backend/domain"
)

type RuleRepository interface {
	List(ctx context.Context) ([]domain.Rule, error)
	UpsertByTitle(ctx context.Context, rule *domain.Rule) error
}

type VideoRepository interface {
	List(ctx context.Context) ([]domain.TrainingVideo, error)
	Create(ctx context.Context, video *domain.TrainingVideo) (*domain.TrainingVideo, error)
	Delete(ctx context.Context, id string) error
}
