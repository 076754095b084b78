package redis

import (
	"context"
	"encoding/json"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

const keyPrefix = "shiftcheck:session:"

type sessionRepository struct {
	client *redislib.Client
	ttl    time.Duration
}

// NewSessionRepository caches sessions in Redis. Keys expire with the
// session so revocation needs no sweeper.
func NewSessionRepository(client *redislib.Client, ttl time.Duration) repository.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &sessionRepository{client: client, ttl: ttl}
}

func (r *sessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.ErrInvalidPayload
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	if !session.ExpiresAt.After(session.CreatedAt) {
		session.ExpiresAt = session.CreatedAt.Add(r.ttl)
	}
	return r.write(ctx, session)
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, keyPrefix+id).Err()
}

// Extend pushes the expiry forward and rewrites the payload, so the
// stored ExpiresAt never disagrees with the key TTL.
func (r *sessionRepository) Extend(ctx context.Context, id string, ttlSeconds int) error {
	session, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	duration := time.Duration(ttlSeconds) * time.Second
	if duration <= 0 {
		duration = r.ttl
	}
	session.ExpiresAt = time.Now().Add(duration)
	return r.write(ctx, session)
}

func (r *sessionRepository) write(ctx context.Context, session *domain.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		ttl = r.ttl
	}
	return r.client.Set(ctx, keyPrefix+session.ID, payload, ttl).Err()
}
