// Package syncclient implements the consumer side of the checklist API.
// Toggles are applied to the local snapshot before the server confirms
// them; a failed call restores the exact pre-toggle snapshot and is not
// retried. A fixed-interval poll refetches the authoritative task list.
package syncclient

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/shiftcheck/backend/domain"
)

type Config struct {
	BaseURL        string
	Token          string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

func (c *Config) normalize() {
	if c.PollInterval <= 0 {
		c.PollInterval = 15 * time.Second
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
}

type Client struct {
	cfg    Config
	http   *fasthttp.Client
	store  *SnapshotStore
	cron   *cron.Cron
	logger *zap.Logger
}

func New(cfg Config, store *SnapshotStore, logger *zap.Logger) *Client {
	cfg.normalize()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &fasthttp.Client{},
		store:  store,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start schedules the reconciliation poll.
func (c *Client) Start() error {
	spec := fmt.Sprintf("@every %s", c.cfg.PollInterval)
	if _, err := c.cron.AddFunc(spec, func() {
		if _, err := c.Refresh(); err != nil {
			c.logger.Warn("reconciliation poll failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}
	c.cron.Start()
	return nil
}

// Stop halts the poll and waits for a running refetch to finish.
func (c *Client) Stop() {
	<-c.cron.Stop().Done()
}

// Tasks returns the current local view.
func (c *Client) Tasks() ([]domain.Task, error) {
	return c.store.All()
}

// Refresh fetches the authoritative list and replaces the local snapshot.
func (c *Client) Refresh() ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.call(fasthttp.MethodGet, "/api/v1/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	if err := c.store.ReplaceAll(tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Toggle applies the completion change locally, then confirms it with the
// server. On any failure the local snapshot is restored to the exact
// pre-toggle state; the caller decides whether to try again.
func (c *Client) Toggle(taskID string, completed bool, proofImage string) (*domain.Task, error) {
	prev, err := c.store.Get(taskID)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return nil, domain.ErrTaskNotFound
	}

	optimistic := optimisticApply(*prev, completed, proofImage, time.Now())
	if err := c.store.Save(optimistic); err != nil {
		return nil, err
	}

	body, err := json.Marshal(map[string]interface{}{
		"is_completed": completed,
		"proof_image":  proofImage,
	})
	if err != nil {
		return nil, err
	}

	var confirmed domain.Task
	path := fmt.Sprintf("/api/v1/tasks/%s/toggle", taskID)
	if err := c.call(fasthttp.MethodPost, path, body, &confirmed); err != nil {
		if rbErr := c.store.Save(*prev); rbErr != nil {
			c.logger.Error("snapshot rollback failed",
				zap.String("task_id", taskID),
				zap.Error(rbErr))
		}
		return nil, err
	}

	if err := c.store.Save(confirmed); err != nil {
		return nil, err
	}
	return &confirmed, nil
}

// optimisticApply builds the local view of a toggle before the server
// confirms it. Undoing a task past its deadline must show late, not
// pending; the status is re-derived, never assumed.
func optimisticApply(prev domain.Task, completed bool, proofImage string, now time.Time) domain.Task {
	next := prev
	next.IsCompleted = completed
	if !completed {
		next.CompletedBy = ""
		next.CompletedByName = ""
		next.CompletedAt = nil
	}
	if proofImage != "" {
		next.ProofImage = proofImage
	}
	next.Refresh(now)
	return next
}

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Error  json.RawMessage `json:"error"`
}

func (c *Client) call(method, path string, body []byte, out interface{}) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.Header.SetMethod(method)
	req.SetRequestURI(c.cfg.BaseURL + path)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
	if body != nil {
		req.Header.SetContentType("application/json")
		req.SetBody(body)
	}

	if err := c.http.DoTimeout(req, resp, c.cfg.RequestTimeout); err != nil {
		return domain.StoreUnavailable(err)
	}

	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK || env.Status != "success" {
		return fmt.Errorf("server rejected %s %s: %s (%s)",
			method, path, env.Code, string(env.Error))
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode payload: %w", err)
		}
	}
	return nil
}
