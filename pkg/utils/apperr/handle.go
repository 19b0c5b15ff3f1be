package apperr

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kadr/pkg/domain/model"
)

// Handle reports an error that aborted an operation. Setup failures are logged with
// their own message so misconfigured secrets are easy to spot.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}

	logger := ctxlog.From(ctx)
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}

	if goerr.HasTag(err, model.ErrTagSetup) {
		logger.Error("setup error", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
