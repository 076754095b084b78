package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

type ruleRepository struct {
	pool *pgxpool.Pool
}

func NewRuleRepository(pool *pgxpool.Pool) repository.RuleRepository {
	return &ruleRepository{pool: pool}
}

func (r *ruleRepository) List(ctx context.Context) ([]domain.Rule, error) {
	const query = `
	SELECT id, title, content, updated_by, created_at, updated_at
	FROM rules
	ORDER BY title
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	var rules []domain.Rule
	for rows.Next() {
		var rule domain.Rule
		if err := rows.Scan(&rule.ID, &rule.Title, &rule.Content, &rule.UpdatedBy, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *ruleRepository) UpsertByTitle(ctx context.Context, rule *domain.Rule) error {
	if rule == nil || rule.Title == "" {
		return domain.ErrInvalidPayload
	}
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO rules (id, title, content, updated_by, created_at, updated_at)
	VALUES ($1, $2, $3, $4, NOW(), NOW())
	ON CONFLICT (title) DO UPDATE
	SET content = EXCLUDED.content,
		updated_by = EXCLUDED.updated_by,
		updated_at = NOW()
	RETURNING id, created_at, updated_at
	`
	if err := r.pool.QueryRow(ctx, query,
		rule.ID,
		rule.Title,
		rule.Content,
		rule.UpdatedBy,
	).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
		return domain.StoreUnavailable(err)
	}
	return nil
}

type videoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) repository.VideoRepository {
	return &videoRepository{pool: pool}
}

func (r *videoRepository) List(ctx context.Context) ([]domain.TrainingVideo, error) {
	const query = `
	SELECT id, title, youtube_url, description, sort_order, created_at
	FROM training_videos
	ORDER BY sort_order, created_at
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	var videos []domain.TrainingVideo
	for rows.Next() {
		var video domain.TrainingVideo
		if err := rows.Scan(&video.ID, &video.Title, &video.YoutubeURL, &video.Description, &video.SortOrder, &video.CreatedAt); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		videos = append(videos, video)
	}
	return videos, rows.Err()
}

func (r *videoRepository) Create(ctx context.Context, video *domain.TrainingVideo) (*domain.TrainingVideo, error) {
	if video == nil || video.Title == "" || video.YoutubeURL == "" {
		return nil, domain.ErrInvalidPayload
	}
	if video.ID == "" {
		video.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO training_videos (id, title, youtube_url, description, sort_order)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query,
		video.ID,
		video.Title,
		video.YoutubeURL,
		video.Description,
		video.SortOrder,
	).Scan(&video.CreatedAt); err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	return video, nil
}

func (r *videoRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM training_videos WHERE id = $1`, id)
	if err != nil {
		return domain.StoreUnavailable(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVideoNotFound
	}
	return nil
}
