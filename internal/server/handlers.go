package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"xqr/document"
	"xqr/editor"
	"xqr/internal/server/respond"
)

// Handler exposes the editing API over a registry of loaded files.
type Handler struct {
	Registry *Registry
}

// NewHandler constructs a Handler.
func NewHandler(reg *Registry) *Handler {
	return &Handler{Registry: reg}
}

// RegisterRoutes attaches the editing routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files", h.listFiles)
	rg.GET("/file/*path", h.fileInfo)
	rg.POST("/load", h.load)
	rg.POST("/query", h.query)
	rg.POST("/update", h.update)
	rg.POST("/save", h.save)
}

type fileInfoResponse struct {
	Path          string            `json:"path"`
	FileType      document.FileType `json:"file_type"`
	ElementsCount int               `json:"elements_count"`
}

func elementCount(ed *editor.Editor) int {
	nodes, err := ed.Find("//*")
	if err != nil {
		return 0
	}
	return len(nodes)
}

type loadRequest struct {
	FilePath string `json:"file_path"`
}

func (h *Handler) load(c *gin.Context) {
	var req loadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file_path is required", nil)
		return
	}

	ed, err := h.Registry.Load(req.FilePath)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "load_failed", err.Error(), nil)
		return
	}
	respond.OK(c, gin.H{
		"message":        "file loaded: " + req.FilePath,
		"file_type":      ed.Type(),
		"elements_count": elementCount(ed),
	})
}

type queryRequest struct {
	Query string `json:"query"`
	Type  string `json:"type"`
}

type cssMatch struct {
	Tag        string            `json:"tag"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
}

func (h *Handler) query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ed, ok := h.Registry.Current()
	if !ok {
		respond.Error(c, http.StatusBadRequest, "no_file_loaded", "no files loaded", nil)
		return
	}

	switch req.Type {
	case "", "xpath":
		infos, err := ed.ListElements(req.Query)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "query_failed", err.Error(), nil)
			return
		}
		respond.OK(c, gin.H{"elements": infos, "count": len(infos)})
	case "css":
		nodes, err := ed.FindCSS(req.Query)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "query_failed", err.Error(), nil)
			return
		}
		matches := make([]cssMatch, 0, len(nodes))
		for _, n := range nodes {
			attrs := make(map[string]string, len(n.Attrs()))
			for _, a := range n.Attrs() {
				attrs[a.Name] = a.Value
			}
			matches = append(matches, cssMatch{
				Tag:        n.Tag(),
				Text:       strings.TrimSpace(n.Text()),
				Attributes: attrs,
			})
		}
		respond.OK(c, gin.H{"elements": matches, "count": len(matches)})
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown query type: "+req.Type, nil)
	}
}

type updateRequest struct {
	XPath     string `json:"xpath"`
	Type      string `json:"type"`
	Value     string `json:"value"`
	Attribute string `json:"attribute"`
}

func (h *Handler) update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ed, ok := h.Registry.Current()
	if !ok {
		respond.Error(c, http.StatusBadRequest, "no_file_loaded", "no files loaded", nil)
		return
	}

	var updated bool
	var err error
	switch req.Type {
	case "text":
		updated, err = ed.SetText(req.XPath, req.Value)
	case "attribute":
		if req.Attribute == "" {
			respond.Error(c, http.StatusBadRequest, "validation_error", "attribute is required for attribute updates", nil)
			return
		}
		updated, err = ed.SetAttribute(req.XPath, req.Attribute, req.Value)
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown update type: "+req.Type, nil)
		return
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "update_failed", err.Error(), nil)
		return
	}
	if !updated {
		respond.Error(c, http.StatusNotFound, "not_found", "element not found", nil)
		return
	}
	respond.OK(c, gin.H{"message": "element updated"})
}

type saveRequest struct {
	OutputPath string `json:"output_path"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	ed, ok := h.Registry.Current()
	if !ok {
		respond.Error(c, http.StatusBadRequest, "no_file_loaded", "no files loaded", nil)
		return
	}

	if err := ed.Save(req.OutputPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, "save_failed", err.Error(), nil)
		return
	}
	target := req.OutputPath
	if target == "" {
		target = ed.Path()
	}
	respond.OK(c, gin.H{"message": "file saved to " + target})
}

func (h *Handler) listFiles(c *gin.Context) {
	paths := h.Registry.Paths()
	files := make([]fileInfoResponse, 0, len(paths))
	for _, path := range paths {
		ed, ok := h.Registry.Get(path)
		if !ok {
			continue
		}
		files = append(files, fileInfoResponse{
			Path:          path,
			FileType:      ed.Type(),
			ElementsCount: elementCount(ed),
		})
	}
	respond.OK(c, gin.H{"files": files, "count": len(files)})
}

func (h *Handler) fileInfo(c *gin.Context) {
	raw := c.Param("path")
	path := strings.TrimPrefix(raw, "/")
	ed, ok := h.Registry.Get(path)
	if !ok {
		ed, ok = h.Registry.Get(raw)
		path = raw
	}
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "file not loaded: "+strings.TrimPrefix(raw, "/"), nil)
		return
	}
	respond.OK(c, fileInfoResponse{
		Path:          path,
		FileType:      ed.Type(),
		ElementsCount: elementCount(ed),
	})
}
