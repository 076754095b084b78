// Package httpcontext bridges fasthttp handlers and the context-aware
// layers below them. Every request gets a bounded std context carrying a
// request ID that is also echoed back to the client.
package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/shiftcheck/backend/pkg/logger"
)

// Key identifies a request metadata value stored in the context.
type Key string

const (
	KeyRemoteAddr Key = "remote_addr"
	KeyUserAgent  Key = "user_agent"
)

const headerRequestID = "X-Request-ID"

// Adapter derives bounded stdlib contexts from fasthttp requests.
type Adapter struct {
	timeout time.Duration
}

func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{timeout: timeout}
}

// Attach builds a context with the adapter's timeout, tags it with the
// request ID and client metadata, and mirrors the ID onto the response.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(context.Background(), a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set(headerRequestID, reqID)

	if addr := ctx.RemoteAddr(); addr != nil {
		stdCtx = context.WithValue(stdCtx, KeyRemoteAddr, addr.String())
	}
	if ua := string(ctx.Request.Header.UserAgent()); ua != "" {
		stdCtx = context.WithValue(stdCtx, KeyUserAgent, ua)
	}
	return stdCtx, cancel
}

// requestID reuses the caller-supplied header so one ID follows a request
// through retries and proxies; otherwise a fresh one is minted.
func requestID(ctx *fasthttp.RequestCtx) string {
	if ctx != nil {
		if id := strings.TrimSpace(string(ctx.Request.Header.Peek(headerRequestID))); id != "" {
			return id
		}
	}
	return uuid.NewString()
}
