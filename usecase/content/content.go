package content

import (
	"context"

	"go.uber.org/zap"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

// UseCase covers the simple house-rules and training-video CRUD.
type UseCase struct {
	rules  repository.RuleRepository
	videos repository.VideoRepository
	logger *zap.Logger
}

func New(rules repository.RuleRepository, videos repository.VideoRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		rules:  rules,
		videos: videos,
		logger: logger,
	}
}

func (uc *UseCase) ListRules(ctx context.Context) ([]domain.Rule, error) {
	return uc.rules.List(ctx)
}

func (uc *UseCase) SaveRule(ctx context.Context, rule *domain.Rule) (*domain.Rule, error) {
	if rule == nil || rule.Title == "" || rule.Content == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.rules.UpsertByTitle(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (uc *UseCase) ListVideos(ctx context.Context) ([]domain.TrainingVideo, error) {
	return uc.videos.List(ctx)
}

func (uc *UseCase) AddVideo(ctx context.Context, video *domain.TrainingVideo) (*domain.TrainingVideo, error) {
	return uc.videos.Create(ctx, video)
}

func (uc *UseCase) RemoveVideo(ctx context.Context, id string) error {
	return uc.videos.Delete(ctx, id)
}
