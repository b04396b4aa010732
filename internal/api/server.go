// Package api exposes the rendering and sharing pipeline over HTTP
package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/billshare/bill-engine/internal/billtext"
	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/internal/qrgen"
	"github.com/billshare/bill-engine/internal/renderer"
	"github.com/billshare/bill-engine/internal/share"
	"github.com/billshare/bill-engine/internal/sharelink"
	"github.com/billshare/bill-engine/pkg/billformat"
)

// Server is the API server
type Server struct {
	router    *gin.Engine
	renderer  *renderer.Renderer
	formatter *billtext.Formatter
	clock     clock.Clock
	log       zerolog.Logger
	origin    string
	upgrader  websocket.Upgrader

	clients   map[*wsClient]bool
	clientsMu sync.RWMutex
}

// NewServer creates a new API server
func NewServer(rend *renderer.Renderer, formatter *billtext.Formatter, clk clock.Clock, log zerolog.Logger, origin string) *Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	server := &Server{
		router:    router,
		renderer:  rend,
		formatter: formatter,
		clock:     clk,
		log:       log,
		origin:    origin,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins
			},
		},
		clients: make(map[*wsClient]bool),
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.router.POST("/render", s.handleRender)
	s.router.POST("/render/text", s.handleRenderText)
	s.router.POST("/share", s.handleShare)
	s.router.GET("/bill/:token", s.handleViewBill)
	s.router.GET("/bill/:token/qr", s.handleBillQR)

	// WebSocket
	s.router.GET("/ws", s.handleWebSocket)

	// Health check
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}

// handleRender renders a bill summary to a receipt PNG
func (s *Server) handleRender(c *gin.Context) {
	summary, ok := s.bindSummary(c)
	if !ok {
		return
	}

	rendered, err := s.renderer.Render(summary)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to render receipt: %v", err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Bill_%s.png"`, summary.BillNumber))
	c.Data(200, "image/png", rendered.PNG)
}

// handleRenderText returns the plain-text representation of a bill
func (s *Server) handleRenderText(c *gin.Context) {
	summary, ok := s.bindSummary(c)
	if !ok {
		return
	}

	c.String(200, s.formatter.Text(summary))
}

// handleShare executes one share action and returns its outcome plus the
// platform artifacts the client must apply (download, deep link,
// clipboard text). The chat delay is dropped here: the response carries
// the download and the deep link together, already ordered.
func (s *Server) handleShare(c *gin.Context) {
	var req struct {
		Action string          `json:"action" binding:"required"`
		Bill   json.RawMessage `json:"bill" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "action and bill are required"})
		return
	}

	summary, err := billformat.Parse(req.Bill)
	if err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid bill: %v", err)})
		return
	}

	recorder := &recorderPlatform{}
	dispatcher := share.NewDispatcher(s.renderer, s.formatter, recorder, s.clock, s.log, s.origin)
	dispatcher.ChatDelay = 0

	var outcome *share.Outcome
	switch share.Action(req.Action) {
	case share.ActionShareChatImage:
		outcome = dispatcher.ShareChatImage(c.Request.Context(), summary)
	case share.ActionShareSystem:
		outcome = dispatcher.ShareSystem(c.Request.Context(), summary)
	case share.ActionGenerateQR:
		outcome = dispatcher.GenerateQR(c.Request.Context(), summary)
	case share.ActionDownload:
		outcome = dispatcher.Download(c.Request.Context(), summary)
	case share.ActionCopyLink:
		outcome = dispatcher.CopyLink(c.Request.Context(), summary)
	default:
		c.JSON(400, gin.H{"error": fmt.Sprintf("unknown action: %s", req.Action)})
		return
	}

	response := gin.H{"outcome": outcome}
	if recorder.downloadName != "" {
		response["download"] = gin.H{
			"filename": recorder.downloadName,
			"data":     base64.StdEncoding.EncodeToString(recorder.downloadData),
		}
	}
	if recorder.openedURL != "" {
		response["open_url"] = recorder.openedURL
	}
	if recorder.clipboard != "" {
		response["clipboard_text"] = recorder.clipboard
	}
	if len(outcome.Image) > 0 {
		response["qr_png"] = base64.StdEncoding.EncodeToString(outcome.Image)
	}

	s.broadcastOutcome(outcome)

	c.JSON(200, response)
}

// handleViewBill decodes a viewer token back into the reduced summary
func (s *Server) handleViewBill(c *gin.Context) {
	reduced, err := sharelink.Decode(c.Param("token"))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid or corrupted link"})
		return
	}

	c.JSON(200, gin.H{
		"bill_number":   reduced.BillNumber,
		"customer_name": reduced.CustomerName,
		"grand_total":   reduced.Total,
		"date":          reduced.Date,
	})
}

// handleBillQR returns the display QR for an existing viewer token
func (s *Server) handleBillQR(c *gin.Context) {
	token := c.Param("token")

	reduced, err := sharelink.Decode(token)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid or corrupted link"})
		return
	}

	data, err := qrgen.DisplayPNG(s.origin+"/bill/"+token, 512)
	if err != nil {
		c.JSON(500, gin.H{"error": fmt.Sprintf("failed to generate QR: %v", err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="Bill_%s_QR.png"`, reduced.BillNumber))
	c.Data(200, "image/png", data)
}

func (s *Server) bindSummary(c *gin.Context) (*billformat.BillSummary, bool) {
	var summary billformat.BillSummary
	if err := c.ShouldBindJSON(&summary); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return nil, false
	}

	if err := billformat.Validate(&summary); err != nil {
		c.JSON(400, gin.H{"error": fmt.Sprintf("invalid bill: %v", err)})
		return nil, false
	}

	return &summary, true
}

// Run starts the API server
func (s *Server) Run(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
