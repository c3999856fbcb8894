package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"narrative-observer/src/analysis"
	"narrative-observer/src/export"
	"narrative-observer/src/helpers"
	"narrative-observer/src/interfaces"
	"narrative-observer/src/logger"
	"narrative-observer/src/models"
	"narrative-observer/src/utils"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config   *models.MConfig
	Logger   *logger.Logger
	engine   *gin.Engine
	Dataset  interfaces.IDataset
	Analyzer *analysis.AnalysisFacade
	DB       interfaces.IDatabase
	AuditBuf *utils.AuditBuffer

	// WebSocket clients
	clients    map[*Client]struct{}
	broadcast  chan *models.MLiveUpdate // Strongly typed and Buffered Queue
	register   chan *Client
	unregister chan *Client
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(
	cfg *models.MConfig,
	ds interfaces.IDataset,
	analyzer *analysis.AnalysisFacade,
	db interfaces.IDatabase,
	log *logger.Logger,
) *APIServer {
	// Set Gin mode
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config:   cfg,
		Logger:   log,
		engine:   gin.Default(),
		Dataset:  ds,
		Analyzer: analyzer,
		DB:       db,
		AuditBuf: utils.NewAuditBuffer(cfg.Audit.BufferSize),
		clients:  make(map[*Client]struct{}),
		// Buffered channel to prevent lock/blocking
		// Queue size of 256 ensures we can handle bursts of updates
		broadcast:  make(chan *models.MLiveUpdate, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}

	// Add CORS Middleware
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// setup web routes
	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/config", s.getConfig)

	s.engine.GET("/instruments", s.getInstruments)
	s.engine.GET("/ticker/:ticker/series", s.getPriceSeries)
	s.engine.GET("/ticker/:ticker/events", s.getEvents)
	s.engine.GET("/ticker/:ticker/event/:event_id", s.getEventDetail)
	s.engine.GET("/ticker/:ticker/topic-map", s.getTopicMap)
	s.engine.GET("/ticker/:ticker/topic-trends", s.getTopicTrends)
	s.engine.GET("/ticker/:ticker/sessions", s.getSessions)

	s.engine.POST("/export", s.postExport)
	s.engine.POST("/audit", s.postAudit)

	// WebSocket endpoint
	s.engine.GET("/ws", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *APIServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)

	go s.handleWebsockets()

	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop() error {
	// Clean shutdown
	close(s.broadcast)
	close(s.register)
	close(s.unregister)
	return nil
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *APIServer) getHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":          "ok",
		"connections":     len(s.clients),
		"dataset_version": s.Dataset.Version(),
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getConfig(c *gin.Context) {
	c.JSON(200, gin.H{
		"name":                 s.Config.Name,
		"baseline_window_days": s.Config.Dataset.BaselineWindowDays,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getInstruments(c *gin.Context) {
	c.JSON(200, s.Dataset.Instruments())
}

// -----------------------------------------------------------------------------

func (s *APIServer) getPriceSeries(c *gin.Context) {
	ticker := c.Param("ticker")

	start, end, err := parseWindowQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"detail": err.Error()})
		return
	}

	series, err := s.Dataset.PriceSeries(ticker, start, end)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if len(series) == 0 {
		c.JSON(404, gin.H{"detail": fmt.Sprintf("No price data found for ticker %s", ticker)})
		return
	}

	c.JSON(200, series)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getEvents(c *gin.Context) {
	ticker := c.Param("ticker")

	events, err := s.Dataset.Events(ticker)
	if err != nil {
		s.renderError(c, err)
		return
	}
	if len(events) == 0 {
		c.JSON(404, gin.H{"detail": fmt.Sprintf("No events found for ticker %s", ticker)})
		return
	}

	c.JSON(200, events)
}

// -----------------------------------------------------------------------------

func (s *APIServer) getEventDetail(c *gin.Context) {
	ticker := c.Param("ticker")
	eventID := c.Param("event_id")

	event, err := s.Dataset.EventByID(ticker, eventID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	topics := s.Dataset.TopicsForEvent(ticker, eventID)
	posts := s.Dataset.PostsForEvent(ticker, eventID)

	if c.Query("reweight") == "1" {
		topics = s.Analyzer.ReweightByEngagement(topics, posts)
	}

	confidence := s.Analyzer.ConfidenceFor(event, topics, posts, len(s.Dataset.AllPosts()), time.Now())

	if c.Query("client_safe") == "1" {
		posts = redactPosts(posts)
	}

	c.JSON(200, models.MEventDetail{
		Event:      event,
		Topics:     topics,
		Posts:      posts,
		Confidence: confidence,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) getTopicMap(c *gin.Context) {
	ticker := c.Param("ticker")

	events, err := s.Dataset.Events(ticker)
	if err != nil {
		s.renderError(c, err)
		return
	}

	topicsByEvent := make(map[string][]models.MTopic, len(events))
	for _, ev := range events {
		topicsByEvent[ev.ID] = s.Dataset.TopicsForEvent(ticker, ev.ID)
	}

	c.JSON(200, s.Analyzer.TopicMap(events, topicsByEvent))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getTopicTrends(c *gin.Context) {
	ticker := c.Param("ticker")
	topN := parseIntQuery(c, "top_n", 10)

	events, err := s.Dataset.Events(ticker)
	if err != nil {
		s.renderError(c, err)
		return
	}

	var topics []models.MTopic
	var posts []models.MPost
	seen := make(map[string]bool)

	for _, ev := range events {
		topics = append(topics, s.Dataset.TopicsForEvent(ticker, ev.ID)...)
		for _, p := range s.Dataset.PostsForEvent(ticker, ev.ID) {
			if !seen[p.ID] {
				seen[p.ID] = true
				posts = append(posts, p)
			}
		}
	}

	c.JSON(200, s.Analyzer.TopicTrends(topics, posts, topN))
}

// -----------------------------------------------------------------------------

func (s *APIServer) getSessions(c *gin.Context) {
	ticker := c.Param("ticker")

	start, end, err := parseWindowQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"detail": err.Error()})
		return
	}
	if start == 0 || end == 0 {
		c.JSON(400, gin.H{"detail": "start and end are required"})
		return
	}
	if start > end {
		c.JSON(400, gin.H{"detail": (&helpers.InvalidRangeError{Start: start, End: end}).Error()})
		return
	}

	cal := utils.GetCalendar(ticker)
	loc := cal.Timezone
	if loc == nil {
		loc = time.UTC
	}

	day := time.Unix(start, 0).In(loc)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	last := time.Unix(end, 0).In(loc)

	summary := models.MSessionSummary{Ticker: ticker}
	for !day.After(last) {
		trading := cal.IsTradingDay(day)
		summary.Days = append(summary.Days, models.MSessionDay{
			Date:       day.Format("2006-01-02"),
			TradingDay: trading,
		})
		if trading {
			summary.TradingDays++
		}
		day = day.AddDate(0, 0, 1)
	}

	c.JSON(200, summary)
}

// -----------------------------------------------------------------------------

func (s *APIServer) postExport(c *gin.Context) {
	var req models.MExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"detail": err.Error()})
		return
	}

	event, err := s.Dataset.EventByID(req.Ticker, req.EventID)
	if err != nil {
		s.renderError(c, err)
		return
	}

	topics := s.Dataset.TopicsForEvent(req.Ticker, req.EventID)
	if len(req.SelectedTopics) > 0 {
		topics = filterTopics(topics, req.SelectedTopics)
	}

	posts := s.Dataset.PostsForEvent(req.Ticker, req.EventID)
	confidence := s.Analyzer.ConfidenceFor(event, topics, posts, len(s.Dataset.AllPosts()), time.Now())

	now := time.Now()
	markdown := export.RenderMemo(event, topics, confidence, s.Dataset.Version(), req.CountersIncluded(), now)
	filename := export.BuildFilename(req.Ticker, req.EventID, now)

	record := export.NewExportRecord(req.Ticker, req.EventID, filename, now)
	if err := s.DB.SaveExportRecord(record); err != nil {
		s.Logger.Error("Failed to save export record: %v", err)
	}

	s.recordAudit(models.MAuditEntry{
		ID:        record.ID,
		Timestamp: now.Unix(),
		Action:    utils.ActionExportMemo,
		Ticker:    req.Ticker,
		EventID:   req.EventID,
		Detail:    filename,
	})

	c.JSON(200, models.MExportResponse{
		Markdown: markdown,
		Filename: filename,
	})
}

// -----------------------------------------------------------------------------

func (s *APIServer) postAudit(c *gin.Context) {
	var entry models.MAuditEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(400, gin.H{"detail": err.Error()})
		return
	}
	if entry.Action == "" {
		c.JSON(400, gin.H{"detail": "action is required"})
		return
	}

	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp == 0 {
		entry.Timestamp = time.Now().Unix()
	}

	s.recordAudit(entry)
	c.JSON(200, gin.H{"status": "recorded", "id": entry.ID})
}

// -----------------------------------------------------------------------------

// recordAudit buffers, persists and broadcasts one audit entry.
func (s *APIServer) recordAudit(entry models.MAuditEntry) {
	s.AuditBuf.Append(entry)

	if err := s.DB.SaveAuditEntriesBulk([]models.MAuditEntry{entry}); err != nil {
		s.Logger.Error("Failed to persist audit entry: %v", err)
	}

	s.BroadcastAudit(entry)
}

// -----------------------------------------------------------------------------

// renderError maps domain errors to HTTP status codes.
func (s *APIServer) renderError(c *gin.Context, err error) {
	switch {
	case helpers.IsNotFound(err):
		c.JSON(404, gin.H{"detail": err.Error()})
	case helpers.IsInvalidRange(err):
		c.JSON(400, gin.H{"detail": err.Error()})
	default:
		s.Logger.Error("Request failed: %v", err)
		c.JSON(500, gin.H{"detail": "internal error"})
	}
}
