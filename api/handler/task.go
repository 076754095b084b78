package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/shiftcheck/backend/api/transport"
	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/pkg/httpcontext"
	"github.com/shiftcheck/backend/repository"
	checklistUC "github.com/shiftcheck/backend/usecase/checklist"
)

type TaskHandler struct {
	baseHandler
	uc *checklistUC.UseCase
}

func NewTaskHandler(uc *checklistUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List checklist tasks with freshly derived status
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	filter := repository.TaskFilter{
		Department: domain.Department(ctx.QueryArgs().Peek("department")),
		Limit:      parseInt(string(ctx.QueryArgs().Peek("limit")), 0),
		Offset:     parseInt(string(ctx.QueryArgs().Peek("offset")), 0),
	}
	if filter.Department != "" && !filter.Department.Valid() {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "unknown department", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, tasks, len(tasks))
}

// @Summary Fetch one task
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	taskID, _ := ctx.UserValue("id").(string)
	if taskID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.GetTask(stdCtx, taskID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Toggle completion and append an audit entry
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	actorID := h.actorID(ctx)
	if actorID == "" {
		return
	}

	taskID, _ := ctx.UserValue("id").(string)
	if taskID == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing task id", nil))
		return
	}

	var req transport.ToggleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, err := h.uc.Toggle(stdCtx, checklistUC.ToggleInput{
		TaskID:       taskID,
		ActorID:      actorID,
		SetCompleted: req.IsCompleted,
		ProofImage:   req.ProofImage,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, task)
}

// @Summary Create one checklist task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	if !h.requireManager(ctx) {
		return
	}

	var req transport.TaskCreateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	task, err := taskFromRequest(req)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Bulk-import checklist tasks
// @Tags tasks
// @Router /api/v1/tasks/import [post]
func (h *TaskHandler) ImportTasks(ctx *fasthttp.RequestCtx) {
	if !h.requireManager(ctx) {
		return
	}

	var req transport.TaskImportRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || len(req.Tasks) == 0 {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	tasks := make([]domain.Task, 0, len(req.Tasks))
	for _, item := range req.Tasks {
		task, err := taskFromRequest(item)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		tasks = append(tasks, *task)
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	inserted, err := h.uc.ImportTasks(stdCtx, tasks)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, map[string]int{"imported": inserted})
}

func (h *TaskHandler) requireManager(ctx *fasthttp.RequestCtx) bool {
	if h.actorID(ctx) == "" {
		return false
	}
	if !h.actorRole(ctx).Managerial() {
		h.respondJSON(ctx, http.StatusForbidden, transport.NewError(string(domain.ErrCodeForbidden), "manager role required", nil))
		return false
	}
	return true
}

func taskFromRequest(req transport.TaskCreateRequest) (*domain.Task, error) {
	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Department:  domain.Department(req.Department),
	}
	if req.Deadline != "" {
		deadline, err := domain.ParseDayTime(req.Deadline)
		if err != nil {
			return nil, err
		}
		task.Deadline = &deadline
	}
	return task, nil
}

// parseInt rejects negatives so query values can never reach the
// repository's unbounded-read sentinel.
func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil && v >= 0 {
		return v
	}
	return fallback
}
