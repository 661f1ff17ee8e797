package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"genfs/internal/genfs"
)

// maxBodyBytes bounds request bodies. Generated assets are small; batch
// imports of a whole app stay well below this.
const maxBodyBytes = 64 << 20

// Handler serves the file store routes.
type Handler struct {
	files  FileService
	logger *slog.Logger
}

// NewHandler creates a Handler. logger may be nil.
func NewHandler(files FileService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{files: files, logger: logger}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// WriteFile handles PUT /api/apps/{appID}/files/*.
func (h *Handler) WriteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filePath, ok := h.filePath(w, r)
	if !ok {
		return
	}

	var req WriteFileRequest
	if !h.decode(w, r, &req) {
		return
	}
	content, err := decodeContent(req.Content, req.Encoding)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}

	result, err := h.files.Write(ctx, genfs.WriteRequest{
		AppID:    chi.URLParam(r, "appID"),
		Path:     filePath,
		Content:  content,
		MimeType: req.MimeType,
		Actor:    req.Actor,
	})
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, writeResponse(result))
}

// ReadFile handles GET /api/apps/{appID}/files/*.
func (h *Handler) ReadFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filePath, ok := h.filePath(w, r)
	if !ok {
		return
	}

	result, err := h.files.Read(ctx, chi.URLParam(r, "appID"), filePath)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}

	content, encoding := encodeContent(result.Content)
	h.writeJSON(ctx, w, http.StatusOK, ReadFileResponse{
		File:     result.File,
		Version:  versionInfo(result.Version),
		MimeType: result.MimeType,
		Encoding: encoding,
		Content:  content,
	})
}

// DeleteFile handles DELETE /api/apps/{appID}/files/*.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filePath, ok := h.filePath(w, r)
	if !ok {
		return
	}

	if err := h.files.Delete(ctx, chi.URLParam(r, "appID"), filePath); err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BatchWrite handles POST /api/apps/{appID}/batch. When the batch stops
// early the committed entries are still reported, with the status of the
// failing entry.
func (h *Handler) BatchWrite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req BatchWriteRequest
	if !h.decode(w, r, &req) {
		return
	}

	// Entries before the first undecodable one are still written, so a bad
	// encoding stops the batch at that entry like any other invalid content.
	entries := make([]genfs.BatchEntry, 0, len(req.Files))
	var decodeErr error
	for i, f := range req.Files {
		content, err := decodeContent(f.Content, f.Encoding)
		if err != nil {
			decodeErr = fmt.Errorf("entry %d (%s): %w", i, f.Path, err)
			break
		}
		entries = append(entries, genfs.BatchEntry{Path: f.Path, Content: content, MimeType: f.MimeType})
	}

	var results []*genfs.WriteResult
	var err error
	if len(entries) > 0 {
		results, err = h.files.BatchWrite(ctx, chi.URLParam(r, "appID"), entries, req.Actor)
	}
	if err == nil {
		err = decodeErr
	}

	resp := BatchWriteResponse{Results: make([]WriteResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = writeResponse(res)
	}
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		resp.Error = err.Error()
		h.logger.WarnContext(ctx, "batch write stopped", "committed", len(results), "total", len(req.Files), "error", err)
		if status == http.StatusServiceUnavailable {
			w.Header().Set("Retry-After", "1")
		}
	}
	h.writeJSON(ctx, w, status, resp)
}

// Rename handles POST /api/apps/{appID}/rename.
func (h *Handler) Rename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RenameRequest
	if !h.decode(w, r, &req) {
		return
	}

	result, err := h.files.Rename(ctx, chi.URLParam(r, "appID"), req.From, req.To)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, writeResponse(result))
}

// Tree handles GET /api/apps/{appID}/tree.
func (h *Handler) Tree(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit, ok := h.limit(w, r)
	if !ok {
		return
	}

	tree, err := h.files.List(ctx, chi.URLParam(r, "appID"), limit)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, tree)
}

// Versions handles GET /api/apps/{appID}/versions/*.
func (h *Handler) Versions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filePath, ok := h.filePath(w, r)
	if !ok {
		return
	}
	limit, ok := h.limit(w, r)
	if !ok {
		return
	}

	summaries, err := h.files.GetVersionSummaries(ctx, chi.URLParam(r, "appID"), filePath, limit)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}

	resp := make([]VersionSummary, len(summaries))
	for i, s := range summaries {
		resp[i] = VersionSummary{
			Version:     s.Version,
			ContentHash: s.ContentHash,
			Size:        s.Size,
			CreatedBy:   s.CreatedBy,
			CreatedAt:   s.CreatedAt,
			IsCurrent:   s.IsCurrent,
		}
	}
	h.writeJSON(ctx, w, http.StatusOK, resp)
}

// Impact handles GET /api/apps/{appID}/impact/{fileID}.
func (h *Handler) Impact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	fileID := chi.URLParam(r, "fileID")

	impacted, err := h.files.FindImpacted(ctx, chi.URLParam(r, "appID"), fileID)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusOK, ImpactResponse{FileID: fileID, ImpactedFileIDs: impacted})
}

// AddReference handles POST /api/apps/{appID}/references.
func (h *Handler) AddReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReferenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	ref, err := h.files.AddReference(ctx, chi.URLParam(r, "appID"), req.Src, req.Dest)
	if err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	h.writeJSON(ctx, w, http.StatusCreated, ref)
}

// RemoveReference handles DELETE /api/apps/{appID}/references.
func (h *Handler) RemoveReference(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ReferenceRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.files.RemoveReference(ctx, chi.URLParam(r, "appID"), req.Src, req.Dest); err != nil {
		h.handleServiceError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// filePath returns the decoded wildcard path of the route. chi matches on
// r.URL.RawPath when it is set and on the already decoded r.URL.Path
// otherwise, so the wildcard is unescaped only in the first case.
func (h *Handler) filePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	p := chi.URLParam(r, "*")
	if r.URL.RawPath == "" {
		return p, true
	}
	p, err := url.PathUnescape(p)
	if err != nil {
		h.writeError(r.Context(), w, http.StatusBadRequest, "invalid path encoding")
		return "", false
	}
	return p, true
}

func (h *Handler) limit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		h.writeError(r.Context(), w, http.StatusBadRequest, "limit must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.logger.WarnContext(r.Context(), "invalid request body", "error", err)
		h.writeError(r.Context(), w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, genfs.ErrNotFound), errors.Is(err, genfs.ErrNoVersion):
		return http.StatusNotFound
	case errors.Is(err, genfs.ErrInvalidContent), errors.Is(err, genfs.ErrInvalidPath):
		return http.StatusBadRequest
	case errors.Is(err, genfs.ErrLockTimeout):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		h.logger.ErrorContext(ctx, "service error", "error", err)
		h.writeError(ctx, w, status, "internal error")
		return
	case http.StatusServiceUnavailable:
		w.Header().Set("Retry-After", "1")
	}
	h.writeError(ctx, w, status, err.Error())
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	h.writeJSON(ctx, w, status, ErrorResponse{Error: message})
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
