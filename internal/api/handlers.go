package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medextract/internal/models"
	"medextract/internal/service/agent"
	"medextract/internal/session"
)

const (
	serviceName   = "Medical Information Extraction API"
	maxAudioBytes = 25 << 20 // 25 MB

	downloadTimeout = 30 * time.Second
)

// Router runs one supervised conversation turn for a thread.
type Router interface {
	Chat(ctx context.Context, threadID, message string) (*agent.ChatResult, error)
}

// MedicalService exposes the direct extraction and diagnosis calls that
// bypass the agent router.
type MedicalService interface {
	Extract(ctx context.Context, text string) models.MedicalExtraction
	Diagnose(ctx context.Context, extraction models.MedicalExtraction) models.DiagnosisResponse
}

// Transcriber turns a local audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

var uploadExtensions = []string{"mp3", "wav", "m4a", "ogg", "flac"}

// URL downloads additionally accept aac; the extension only has to appear
// somewhere in the URL path.
var urlExtensions = []string{"mp3", "wav", "m4a", "ogg", "flac", "aac"}

var endpoints = []string{
	"/health",
	"/api/chat",
	"/api/extract",
	"/api/diagnose",
	"/api/transcribe",
	"/api/transcribe-url",
	"/api/sessions",
	"/api/status",
}

// Handler wires HTTP routes to the agent router, the direct medical
// services, the transcription adapter and the session registry.
type Handler struct {
	router      Router
	medical     MedicalService
	transcriber Transcriber
	sessions    *session.Registry
	modelName   string
	httpClient  *http.Client
}

// NewHandler constructs a Handler instance.
func NewHandler(router Router, medical MedicalService, transcriber Transcriber, sessions *session.Registry, modelName string) *Handler {
	return &Handler{
		router:      router,
		medical:     medical,
		transcriber: transcriber,
		sessions:    sessions,
		modelName:   modelName,
		httpClient:  &http.Client{Timeout: downloadTimeout},
	}
}

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(gin.CustomRecovery(h.recovered))
	router.GET("/health", h.health)
	api := router.Group("/api")
	api.POST("/chat", h.chat)
	api.POST("/extract", h.extract)
	api.POST("/diagnose", h.diagnose)
	api.GET("/sessions", h.listSessions)
	api.DELETE("/sessions/:session_id", h.deleteSession)
	api.POST("/transcribe", h.transcribe)
	api.POST("/transcribe-url", h.transcribeURL)
	api.GET("/status", h.status)
	router.NoRoute(h.notFound)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": nowISO(),
		"service":   serviceName,
	})
}

type chatRequest struct {
	Message   *string `json:"message"`
	SessionID string  `json:"session_id"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Message == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: message"})
		return
	}
	message := strings.TrimSpace(*req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message cannot be empty"})
		return
	}

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	result, err := h.router.Chat(c.Request.Context(), sessionID, message)
	if err != nil {
		if errors.Is(err, agent.ErrNoResponse) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No response received from medical system"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	now := time.Now().UTC()
	h.sessions.Put(sessionID, models.Session{
		LastActivity: now,
		MessageCount: result.MessageCount,
		AgentUsed:    result.AgentUsed,
	})

	c.JSON(http.StatusOK, gin.H{
		"response":      result.Response,
		"session_id":    sessionID,
		"agent_used":    result.AgentUsed,
		"timestamp":     now.Format(time.RFC3339),
		"message_count": result.MessageCount,
	})
}

type extractRequest struct {
	Text *string `json:"text"`
}

func (h *Handler) extract(c *gin.Context) {
	var req extractRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Text == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: text"})
		return
	}
	text := strings.TrimSpace(*req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Text cannot be empty"})
		return
	}

	extracted := h.medical.Extract(c.Request.Context(), text)
	c.JSON(http.StatusOK, gin.H{
		"extracted_info": extracted,
		"timestamp":      nowISO(),
	})
}

type diagnoseRequest struct {
	StructuredInfo *models.MedicalExtraction `json:"structured_info"`
}

func (h *Handler) diagnose(c *gin.Context) {
	var req diagnoseRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.StructuredInfo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: structured_info"})
		return
	}

	diagnosis := h.medical.Diagnose(c.Request.Context(), *req.StructuredInfo)
	c.JSON(http.StatusOK, gin.H{
		"diagnosis": diagnosis,
		"timestamp": nowISO(),
	})
}

func (h *Handler) listSessions(c *gin.Context) {
	snapshot := h.sessions.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"active_sessions": len(snapshot),
		"sessions":        snapshot,
	})
}

func (h *Handler) deleteSession(c *gin.Context) {
	sessionID := c.Param("session_id")
	if !h.sessions.Delete(sessionID) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Session %s not found", sessionID)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Session %s deleted successfully", sessionID)})
}

func (h *Handler) transcribe(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file provided"})
		return
	}
	filename := filepath.Base(file.Filename)
	if filename == "" || filename == "." || filename == string(filepath.Separator) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio file selected"})
		return
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !extAllowed(ext, uploadExtensions) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid file type. Supported formats: %s", strings.Join(uploadExtensions, ", ")),
		})
		return
	}
	if file.Size > maxAudioBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large. Maximum size is 25MB"})
		return
	}

	tmpPath, err := newTempAudioFile(ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temporary file"})
		return
	}
	defer os.Remove(tmpPath)

	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save audio file"})
		return
	}

	transcription, err := h.transcriber.Transcribe(c.Request.Context(), tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to transcribe audio",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": transcription,
		"timestamp":     nowISO(),
		"filename":      filename,
	})
}

type transcribeURLRequest struct {
	AudioURL string `json:"audio_url"`
}

func (h *Handler) transcribeURL(c *gin.Context) {
	var req transcribeURLRequest
	if !bindJSON(c, &req) {
		return
	}
	audioURL := strings.TrimSpace(req.AudioURL)
	if audioURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No audio URL provided"})
		return
	}

	parsed, err := url.Parse(audioURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format"})
		return
	}

	urlPath := strings.ToLower(parsed.Path)
	var ext string
	for _, candidate := range urlExtensions {
		if strings.Contains(urlPath, "."+candidate) {
			ext = candidate
			break
		}
	}
	if ext == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Invalid file type. Supported formats: %s", strings.Join(urlExtensions, ", ")),
		})
		return
	}

	httpReq, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, audioURL, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid URL format"})
		return
	}
	resp, err := h.httpClient.Do(httpReq)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to download audio file: %v", err)})
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to download audio file: %s", resp.Status)})
		return
	}
	if resp.ContentLength > maxAudioBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file too large. Maximum size is 25MB"})
		return
	}

	tmpPath, err := newTempAudioFile(ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create temporary file"})
		return
	}
	defer os.Remove(tmpPath)

	if err := writeStream(tmpPath, resp.Body); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save audio file"})
		return
	}

	transcription, err := h.transcriber.Transcribe(c.Request.Context(), tmpPath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to transcribe audio from URL",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transcription": transcription,
		"timestamp":     nowISO(),
		"source_url":    audioURL,
	})
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":          "running",
		"model":           h.modelName,
		"active_sessions": h.sessions.Count(),
		"endpoints":       endpoints,
		"timestamp":       nowISO(),
	})
}

func (h *Handler) notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":               "Endpoint not found",
		"available_endpoints": endpoints,
	})
}

// recovered answers an unhandled panic with the generic JSON error body so
// even crashed handlers keep the error contract.
func (h *Handler) recovered(c *gin.Context, _ any) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// bindJSON decodes the request body into out, rejecting non-JSON content
// types and malformed bodies with distinct 400 responses. Returns false when
// the request was already answered.
func bindJSON(c *gin.Context, out any) bool {
	if c.ContentType() != "application/json" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
		return false
	}
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return false
	}
	return true
}

func extAllowed(ext string, allowed []string) bool {
	for _, candidate := range allowed {
		if ext == candidate {
			return true
		}
	}
	return false
}

// newTempAudioFile creates an empty scoped temp file for one transcription
// request. Callers must remove it on every exit path.
func newTempAudioFile(ext string) (string, error) {
	tmp, err := os.CreateTemp("", "medextract-*."+ext)
	if err != nil {
		return "", err
	}
	path := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

func writeStream(path string, src io.Reader) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
