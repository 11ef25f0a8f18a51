// internal/app/features/ingest/handler.go

// Package ingest is the HTTP boundary of batch ingestion: it accepts a
// multipart upload of timetable PDFs, feeds them to the batch runner, and
// exposes the confirm/cancel endpoints that resolve a suspended
// overwrite.
package ingest

import (
	"errors"
	"io"
	"net/http"

	"github.com/dalemusser/sallehub/internal/app/features/shared/respond"
	"github.com/dalemusser/sallehub/internal/app/system/extract"
	"github.com/dalemusser/sallehub/internal/app/system/ingest"
	"github.com/dalemusser/sallehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// maxUploadBytes caps one batch upload. Timetable PDFs run well under a
// megabyte each.
const maxUploadBytes = 64 << 20

type Handler struct {
	Runner *ingest.Runner
	Log    *zap.Logger
}

func NewHandler(runner *ingest.Runner, logger *zap.Logger) *Handler {
	return &Handler{Runner: runner, Log: logger}
}

// Upload handles POST /ingest. The multipart field name is "files".
//
// 200: every file processed, body carries the batch result and report.
// 409: a verified record would be overwritten; body carries the pending
// payload, resolved via /ingest/confirm or /ingest/cancel.
// 502: the extraction service failed a file; earlier commits stay.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid multipart upload")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respond.Error(w, http.StatusBadRequest, "no files in upload")
		return
	}

	files := make([]ingest.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "unreadable upload part: "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "unreadable upload part: "+fh.Filename)
			return
		}
		files = append(files, ingest.File{Name: fh.Filename, Data: data})
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "timetable ingestion")
	defer cancel()

	res, err := h.Runner.Start(ctx, files)
	h.reply(w, res, err)
}

// Confirm handles POST /ingest/confirm.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "ingestion confirm")
	defer cancel()

	res, err := h.Runner.Confirm(ctx)
	h.reply(w, res, err)
}

// Cancel handles POST /ingest/cancel.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "ingestion cancel")
	defer cancel()

	res, err := h.Runner.Cancel(ctx)
	h.reply(w, res, err)
}

type abortedBody struct {
	ingest.Result
	Error string `json:"error"`
}

func (h *Handler) reply(w http.ResponseWriter, res ingest.Result, err error) {
	switch {
	case err == nil:
		if res.State == ingest.StateAwaiting {
			respond.JSON(w, http.StatusConflict, res)
			return
		}
		respond.JSON(w, http.StatusOK, res)

	case errors.Is(err, ingest.ErrBatchInProgress),
		errors.Is(err, ingest.ErrNoPendingOverwrite):
		respond.Error(w, http.StatusConflict, err.Error())

	default:
		var exErr *extract.Error
		if errors.As(err, &exErr) {
			respond.JSON(w, http.StatusBadGateway, abortedBody{Result: res, Error: exErr.Error()})
			return
		}
		respond.Internal(w, h.Log, "ingestion batch failed", err)
	}
}
