package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/shiftcheck/backend/api/transport"
	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/pkg/httpcontext"
	contentUC "github.com/shiftcheck/backend/usecase/content"
)

type ContentHandler struct {
	baseHandler
	uc *contentUC.UseCase
}

func NewContentHandler(uc *contentUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List house rules
// @Tags content
// @Router /api/v1/rules [get]
func (h *ContentHandler) GetRules(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rules, err := h.uc.ListRules(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, rules, len(rules))
}

// @Summary Create or replace a house rule by title
// @Tags content
// @Router /api/v1/rules [put]
func (h *ContentHandler) PutRule(ctx *fasthttp.RequestCtx) {
	actorID := h.actorID(ctx)
	if actorID == "" {
		return
	}

	var req transport.RuleRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rule, err := h.uc.SaveRule(stdCtx, &domain.Rule{
		Title:     req.Title,
		Content:   req.Content,
		UpdatedBy: actorID,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, rule)
}

// @Summary List training videos
// @Tags content
// @Router /api/v1/videos [get]
func (h *ContentHandler) GetVideos(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	videos, err := h.uc.ListVideos(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, videos, len(videos))
}

// @Summary Add a training video
// @Tags content
// @Router /api/v1/videos [post]
func (h *ContentHandler) PostVideo(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	var req transport.VideoRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	video, err := h.uc.AddVideo(stdCtx, &domain.TrainingVideo{
		Title:       req.Title,
		YoutubeURL:  req.YoutubeURL,
		Description: req.Description,
		SortOrder:   req.SortOrder,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, video)
}

// @Summary Delete a training video
// @Tags content
// @Router /api/v1/videos/{id} [delete]
func (h *ContentHandler) DeleteVideo(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing video id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.RemoveVideo(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}
