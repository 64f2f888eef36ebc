package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ceylonsure/motor-risk/internal/core"
	"github.com/ceylonsure/motor-risk/pkg/problem"
)

func writeError(ctx context.Context, log *slog.Logger, w http.ResponseWriter, err error, detail string) {
	switch {
	case errors.Is(err, core.ErrBlacklisted):
		log.WarnContext(ctx, "blacklisted customer rejected", "err", err)
		problem.Write(w, http.StatusForbidden, "Blacklisted", "Customer cannot be insured.")

	case errors.Is(err, core.ErrMissingField):
		log.WarnContext(ctx, "missing required field", "err", err)
		problem.Write(w, http.StatusBadRequest, "Missing Required Field", detail)

	case errors.Is(err, core.ErrValidation):
		log.WarnContext(ctx, "validation failed", "err", err)
		problem.Write(w, http.StatusBadRequest, "Validation Error", detail)

	case errors.Is(err, core.ErrNotFound):
		log.WarnContext(ctx, "resource not found", "err", err)
		problem.Write(w, http.StatusNotFound, "Not Found", detail)

	case errors.Is(err, core.ErrConflict):
		log.WarnContext(ctx, "resource conflict", "err", err)
		problem.Write(w, http.StatusConflict, "Conflict", detail)

	case errors.Is(err, core.ErrUnauthorized):
		log.WarnContext(ctx, "unauthorized request", "err", err)
		problem.Write(w, http.StatusUnauthorized, "Unauthorized", detail)

	case errors.Is(err, core.ErrMissingModelFeature):
		// schema drift between training and inference; never patched over
		log.ErrorContext(ctx, "model feature schema mismatch", "err", err)
		problem.Write(w, http.StatusInternalServerError, "Model Schema Mismatch", detail)

	case errors.Is(err, core.ErrModelInference):
		log.ErrorContext(ctx, "model inference failed", "err", err)
		problem.Write(w, http.StatusBadGateway, "Model Inference Error", detail)

	case errors.Is(err, context.DeadlineExceeded):
		log.ErrorContext(ctx, "operation timeout", "err", err)
		problem.Write(w, http.StatusGatewayTimeout, "Timeout", "Operation took too long.")

	default:
		log.ErrorContext(ctx, "internal server error", "err", err)
		problem.Write(w, http.StatusInternalServerError, "Internal Server Error", detail)
	}
}
