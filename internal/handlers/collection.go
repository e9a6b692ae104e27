// internal/handlers/collection.go
package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/dashboard-be/internal/core/domain"
	"github.com/ammerola/dashboard-be/internal/core/patch"
	"github.com/ammerola/dashboard-be/internal/core/ports"
	"github.com/ammerola/dashboard-be/internal/core/services"
	"github.com/ammerola/dashboard-be/internal/pkg/logger"
)

// DefaultMaxPatchBytes bounds a patch body when no limit is configured
const DefaultMaxPatchBytes int64 = 10 << 20

// SheetRow is a record that can be written as a spreadsheet row
type SheetRow interface {
	SheetValues() []any
}

// CollectionConfig describes how one collection is exposed over HTTP
type CollectionConfig struct {
	// CollectionPath is the final path segment of the patch endpoint,
	// e.g. "salecollection"
	CollectionPath string
	// NotFoundStatus is returned when a single-record lookup misses
	NotFoundStatus int
	MaxPatchBytes  int64
	SheetColumns   []string
}

// CollectionHandler serves the list, lookup, patch and export endpoints
// of one collection
type CollectionHandler[E SheetRow] struct {
	service ports.CollectionService[E]
	cfg     CollectionConfig
	logger  *slog.Logger
}

// NewCollectionHandler creates a collection handler
func NewCollectionHandler[E SheetRow](service ports.CollectionService[E], cfg CollectionConfig, logger *slog.Logger) *CollectionHandler[E] {
	if cfg.NotFoundStatus == 0 {
		cfg.NotFoundStatus = http.StatusNotFound
	}
	if cfg.MaxPatchBytes <= 0 {
		cfg.MaxPatchBytes = DefaultMaxPatchBytes
	}
	if cfg.CollectionPath == "" {
		cfg.CollectionPath = "collection"
	}

	return &CollectionHandler[E]{
		service: service,
		cfg:     cfg,
		logger:  logger.With(slog.String("handler", service.Kind())),
	}
}

// Register adds the collection routes under /api/{kind}
func (h *CollectionHandler[E]) Register(mux *http.ServeMux) {
	base := "/api/" + h.service.Kind()

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("GET "+base+"/export", h.ExportExcel)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PATCH "+base+"/"+h.cfg.CollectionPath, h.PatchCollection)
}

// List handles GET /api/{kind}
func (h *CollectionHandler[E]) List(w http.ResponseWriter, r *http.Request) {
	ctx := h.withCollection(r)

	items, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list collection",
			slog.String("error", err.Error()))
		h.internalError(w)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, items)
}

// Get handles GET /api/{kind}/{id}
func (h *CollectionHandler[E]) Get(w http.ResponseWriter, r *http.Request) {
	ctx := h.withCollection(r)
	idStr := r.PathValue("id")

	id, err := uuid.Parse(idStr)
	if err != nil {
		respondError(w, h.logger, http.StatusBadRequest, "Invalid ID format")
		return
	}

	item, err := h.service.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			respondError(w, h.logger, h.cfg.NotFoundStatus, "Record not found")
			return
		}

		h.logger.ErrorContext(ctx, "failed to get record",
			slog.String("id", idStr),
			slog.String("error", err.Error()))
		h.internalError(w)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, item)
}

// PatchCollection handles PATCH /api/{kind}/{collectionPath}. The body is a
// JSON-Patch document over the whole collection.
func (h *CollectionHandler[E]) PatchCollection(w http.ResponseWriter, r *http.Request) {
	ctx := h.withCollection(r)

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.cfg.MaxPatchBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, h.logger, http.StatusRequestEntityTooLarge, "Patch document too large")
			return
		}
		respondError(w, h.logger, http.StatusBadRequest, "Failed to read request body")
		return
	}

	doc, err := patch.Decode(bytes.NewReader(raw))
	if err != nil {
		h.logger.WarnContext(ctx, "rejected patch document",
			slog.String("error", err.Error()))
		respondError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.PatchCollection(ctx, doc)
	if err != nil {
		if errors.Is(err, services.ErrMalformedPatch) {
			h.logger.WarnContext(ctx, "rejected patch document",
				slog.String("error", err.Error()))
			respondError(w, h.logger, http.StatusBadRequest, err.Error())
			return
		}

		h.logger.ErrorContext(ctx, "failed to patch collection",
			slog.String("error", err.Error()))
		h.internalError(w)
		return
	}

	h.logger.InfoContext(ctx, "collection patched",
		slog.Int("inserted", len(result.Inserted)),
		slog.Int("updated", len(result.Updated)),
		slog.Int("removed", len(result.Removed)))

	w.WriteHeader(http.StatusNoContent)
}

// ExportExcel handles GET /api/{kind}/export
func (h *CollectionHandler[E]) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := h.withCollection(r)

	items, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load collection for export",
			slog.String("error", err.Error()))
		h.internalError(w)
		return
	}

	data, err := h.generateExcelFile(items)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate Excel file",
			slog.String("error", err.Error()))
		h.internalError(w)
		return
	}

	filename := fmt.Sprintf("%s_export_%s.xlsx", h.service.Kind(), time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write Excel response",
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "Excel export completed",
		slog.Int("total_rows", len(items)),
		slog.String("filename", filename))
}

func (h *CollectionHandler[E]) generateExcelFile(items []E) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(h.service.Kind())
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range h.cfg.SheetColumns {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, item := range items {
		row := sheet.AddRow()
		for _, value := range item.SheetValues() {
			row.AddCell().SetValue(value)
		}
	}

	for i := range h.cfg.SheetColumns {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	var buffer bytes.Buffer
	if err := file.Write(&buffer); err != nil {
		return nil, fmt.Errorf("failed to write Excel file to buffer: %w", err)
	}

	return buffer.Bytes(), nil
}

// internalError writes the opaque plain-text 500 used for unexpected and
// commit-stage failures
func (h *CollectionHandler[E]) internalError(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *CollectionHandler[E]) withCollection(r *http.Request) context.Context {
	return logger.WithValue(r.Context(), logger.ContextKeyCollection, h.service.Kind())
}
