package documents

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/extract"
	"docvault-backend/internal/shared/server/middleware"
	"docvault-backend/internal/shared/server/respond"
)

type saveRequest struct {
	Data json.RawMessage `json:"data"`
}

// Handler wires HTTP handlers to the documents service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload", h.upload)
	rg.GET("/", h.list)
	rg.GET("/download/:id", h.download)
	rg.GET("/details/:id", h.details)
	rg.POST("/save/:id", h.save)
}

func (h *Handler) upload(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), userID, fileHeader.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "Unsupported file type")
		case errors.Is(err, ErrExtractFailed):
			kind := strings.ToUpper(extract.FileType(fileHeader.Filename))
			respond.Error(c, http.StatusBadRequest, "Failed to extract data from "+kind)
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to upload file")
		}
		return
	}

	respond.JSON(c, http.StatusCreated, toDetails(doc, doc.FileType))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	docs, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "Failed to list documents")
		return
	}

	out := make([]ListItemResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toListItem(doc))
	}
	respond.OK(c, out)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	doc, rc, err := h.Svc.OpenFile(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrFileMissing):
			respond.Error(c, http.StatusNotFound, "File not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to download file")
		}
		return
	}
	defer rc.Close()

	contentType := extract.MimeType(doc.FileType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `inline; filename="`+path.Base(doc.FileURL)+`"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) details(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	doc, fileType, err := h.Svc.Details(c.Request.Context(), userID, documentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrFileMissing):
			respond.Error(c, http.StatusNotFound, "File not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to load document")
		}
		return
	}

	respond.OK(c, toDetails(doc, fileType))
}

func (h *Handler) save(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	documentID := c.Param("id")

	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid data payload")
		return
	}

	stored, err := h.Svc.SaveData(c.Request.Context(), userID, documentID, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "Invalid data payload")
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "File not found")
		default:
			respond.Error(c, http.StatusInternalServerError, "Failed to save data")
		}
		return
	}

	respond.OK(c, gin.H{
		"message": "Data saved successfully.",
		"data":    json.RawMessage(stored),
	})
}
