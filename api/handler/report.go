package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/shiftcheck/backend/pkg/httpcontext"
	reportUC "github.com/shiftcheck/backend/usecase/report"
)

type ReportHandler struct {
	baseHandler
	uc *reportUC.UseCase
}

func NewReportHandler(uc *reportUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Completion statistics over the current task set
// @Tags reports
// @Router /api/v1/stats [get]
func (h *ReportHandler) GetStats(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Stats(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Audit ledger, most recent first
// @Tags reports
// @Router /api/v1/audit [get]
func (h *ReportHandler) GetAuditLog(ctx *fasthttp.RequestCtx) {
	if h.actorID(ctx) == "" {
		return
	}

	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 100)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	entries, err := h.uc.ActivityFeed(stdCtx, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondList(ctx, entries, len(entries))
}
