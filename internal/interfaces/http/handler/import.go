package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	bulkapp "github.com/morabaat/backend/internal/application/bulk"
	directoryapp "github.com/morabaat/backend/internal/application/directory"
	"github.com/morabaat/backend/internal/domain/bulk"
	"github.com/morabaat/backend/internal/domain/shared"
)

// ImportHandler serves the CSV import back office: upload, live session
// control, persisted history and the data export endpoints.
type ImportHandler struct {
	BaseHandler
	imports *bulkapp.Service
	exports *directoryapp.ExportService
}

// NewImportHandler creates an ImportHandler
func NewImportHandler(imports *bulkapp.Service, exports *directoryapp.ExportService) *ImportHandler {
	return &ImportHandler{imports: imports, exports: exports}
}

// RegisterAdminRoutes mounts the import and export endpoints
func (h *ImportHandler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	imp := rg.Group("/import")
	imp.POST("/companies", h.StartCompanyImport)
	imp.GET("/sessions", h.ListSessions)
	imp.GET("/sessions/:id", h.SessionStatus)
	imp.POST("/sessions/:id/pause", h.PauseSession)
	imp.POST("/sessions/:id/resume", h.ResumeSession)
	imp.POST("/sessions/:id/cancel", h.CancelSession)
	imp.GET("/history", h.History)

	exp := rg.Group("/export")
	exp.GET("/companies", h.ExportCompanies)
	exp.GET("/reviews", h.ExportReviews)
}

// StartCompanyImport accepts a multipart CSV upload and kicks off a
// background import session.
func (h *ImportHandler) StartCompanyImport(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable file upload")
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		h.BadRequest(c, "Unreadable file upload")
		return
	}
	session, err := h.imports.Start(c.Request.Context(), bulkActor(c), bulkapp.StartInput{
		FileName:     fileHeader.Filename,
		Data:         data,
		ConflictMode: c.PostForm("conflict_mode"),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// ListSessions returns the live sessions, newest first
func (h *ImportHandler) ListSessions(c *gin.Context) {
	sessions, err := h.imports.List(bulkActor(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sessions)
}

// SessionStatus returns a snapshot of one live session
func (h *ImportHandler) SessionStatus(c *gin.Context) {
	session, err := h.imports.Status(bulkActor(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// PauseSession pauses a running session
func (h *ImportHandler) PauseSession(c *gin.Context) {
	h.transition(c, h.imports.Pause)
}

// ResumeSession resumes a paused session
func (h *ImportHandler) ResumeSession(c *gin.Context) {
	h.transition(c, h.imports.Resume)
}

// CancelSession cancels a running or paused session
func (h *ImportHandler) CancelSession(c *gin.Context) {
	h.transition(c, h.imports.Cancel)
}

// importRecordView is the API shape of a persisted import audit row
type importRecordView struct {
	ID           uuid.UUID       `json:"id"`
	SessionID    string          `json:"session_id"`
	FileName     string          `json:"file_name"`
	FileSize     int64           `json:"file_size"`
	ConflictMode string          `json:"conflict_mode"`
	Status       string          `json:"status"`
	TotalRows    int             `json:"total_rows"`
	SuccessRows  int             `json:"success_rows"`
	ErrorRows    int             `json:"error_rows"`
	SkippedRows  int             `json:"skipped_rows"`
	ErrorDetails []bulk.RowError `json:"error_details,omitempty"`
	ImportedBy   uuid.UUID       `json:"imported_by"`
	StartedAt    time.Time       `json:"started_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

func newImportRecordView(r *bulk.Record) importRecordView {
	return importRecordView{
		ID:           r.ID,
		SessionID:    r.SessionID,
		FileName:     r.FileName,
		FileSize:     r.FileSize,
		ConflictMode: string(r.ConflictMode),
		Status:       string(r.Status),
		TotalRows:    r.TotalRows,
		SuccessRows:  r.SuccessRows,
		ErrorRows:    r.ErrorRows,
		SkippedRows:  r.SkippedRows,
		ErrorDetails: r.ErrorDetails,
		ImportedBy:   r.ImportedBy,
		StartedAt:    r.StartedAt,
		CompletedAt:  r.CompletedAt,
	}
}

// History pages the persisted import records
func (h *ImportHandler) History(c *gin.Context) {
	filter, ok := h.bindFilter(c)
	if !ok {
		return
	}
	page, err := h.imports.History(c.Request.Context(), bulkActor(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	views := make([]importRecordView, 0, len(page.Items))
	for i := range page.Items {
		views = append(views, newImportRecordView(&page.Items[i]))
	}
	h.SuccessWithMeta(c, views, page.Total, page.Page, page.PageSize)
}

// ExportCompanies streams the company table as an attachment. The format
// query selects csv (default) or json.
func (h *ImportHandler) ExportCompanies(c *gin.Context) {
	h.export(c, "companies", func(w io.Writer, format string) error {
		if format == "json" {
			return h.exports.ExportCompaniesJSON(c.Request.Context(), directoryActor(c), w)
		}
		return h.exports.ExportCompanies(c.Request.Context(), directoryActor(c), w)
	})
}

// ExportReviews streams the review table as an attachment
func (h *ImportHandler) ExportReviews(c *gin.Context) {
	h.export(c, "reviews", func(w io.Writer, format string) error {
		if format == "json" {
			return h.exports.ExportReviewsJSON(c.Request.Context(), directoryActor(c), w)
		}
		return h.exports.ExportReviewsCSV(c.Request.Context(), directoryActor(c), w)
	})
}

func (h *ImportHandler) transition(c *gin.Context, op func(ctx context.Context, actor bulkapp.Actor, sessionID string) (*bulk.Session, error)) {
	session, err := op(c.Request.Context(), bulkActor(c), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

func (h *ImportHandler) export(c *gin.Context, name string, write func(w io.Writer, format string) error) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "json" {
		h.BadRequest(c, "Format must be csv or json")
		return
	}
	contentType := "text/csv; charset=utf-8"
	if format == "json" {
		contentType = "application/json; charset=utf-8"
	}
	fileName := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Header("Content-Type", contentType)
	if err := write(c.Writer, format); err != nil {
		// a proper error envelope is only possible before the first byte
		var domainErr *shared.DomainError
		if c.Writer.Size() <= 0 && errors.As(err, &domainErr) {
			h.HandleError(c, err)
			return
		}
		_ = c.Error(err)
	}
}
