package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/ferhatural/paint-assistant/internal/assistant"
	"github.com/ferhatural/paint-assistant/internal/ui"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

// PainterLister is the slice of the painters collaborator the server
// exposes.
type PainterLister interface {
	ListPainters(ctx context.Context, city string) ([]models.Painter, error)
}

// Server hosts the assistant's action surface over HTTP. One server owns
// one chat session: the conversation plus the presentation state machine
// that mirrors what the client is showing.
type Server struct {
	echo     *echo.Echo
	port     int
	service  *assistant.Service
	display  *ui.StateMachine
	painters PainterLister
}

// NewServer creates the API server.
func NewServer(port int, service *assistant.Service, display *ui.StateMachine, painters PainterLister) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	server := &Server{
		echo:     e,
		port:     port,
		service:  service,
		display:  display,
		painters: painters,
	}

	server.setupRoutes()

	return server
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	v1 := s.echo.Group("/api/v1")

	v1.POST("/chat/messages", s.handleChatMessage)
	v1.POST("/chat/project-detail", s.handleProjectDetail)
	v1.GET("/chat/display", s.handleDisplay)
	v1.GET("/chat/history", s.handleHistory)
	v1.GET("/painters", s.handlePainters)
}

// Start begins the API server and blocks until SIGINT, then shuts down
// gracefully.
func (s *Server) Start() error {
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.port)); err != nil && err != http.ErrServerClosed {
			s.echo.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

// Handler exposes the echo handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

type chatMessageRequest struct {
	Message     string `json:"message"`
	CurrentTool string `json:"currentTool,omitempty"`
}

type chatMessageResponse struct {
	Result  models.DispatchResult `json:"result"`
	Display ui.DisplayState       `json:"display"`
}

func (s *Server) handleChatMessage(c echo.Context) error {
	var req chatMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	turn, ok := s.display.BeginTurn()
	if !ok {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "a turn is already in flight"})
	}

	currentTool := req.CurrentTool
	if currentTool == "" {
		currentTool = s.display.CurrentToolType()
	}

	result, err := s.runTurn(c.Request().Context(), req.Message, currentTool)
	s.display.FinishTurn(turn, result, err)

	if err != nil {
		log.Error().Err(err).Msg("turn failed")
		return c.JSON(http.StatusOK, chatMessageResponse{
			Result:  result,
			Display: s.display.Snapshot(),
		})
	}

	return c.JSON(http.StatusOK, chatMessageResponse{
		Result:  result,
		Display: s.display.Snapshot(),
	})
}

// runTurn executes the pipeline and converts any panic into an error so
// the processing flag always clears and the client gets the apology
// overlay instead of a hung session.
func (s *Server) runTurn(ctx context.Context, message, currentTool string) (result models.DispatchResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("turn panicked: %v", r)
		}
	}()

	result = s.service.SendMessageWithContext(ctx, message, currentTool)
	return result, nil
}

type projectDetailRequest struct {
	ProjectID string `json:"projectId"`
}

func (s *Server) handleProjectDetail(c echo.Context) error {
	var req projectDetailRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.ProjectID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "projectId is required"})
	}

	result := s.service.ShowProjectDetail(c.Request().Context(), req.ProjectID)
	s.display.ShowProjectDetail(req.ProjectID)

	return c.JSON(http.StatusOK, chatMessageResponse{
		Result:  result,
		Display: s.display.Snapshot(),
	})
}

func (s *Server) handleDisplay(c echo.Context) error {
	return c.JSON(http.StatusOK, s.display.Snapshot())
}

func (s *Server) handleHistory(c echo.Context) error {
	conv := s.service.Conversation()
	return c.JSON(http.StatusOK, map[string]interface{}{
		"chatId":   conv.ChatID,
		"messages": conv.Messages(),
	})
}

func (s *Server) handlePainters(c echo.Context) error {
	city := c.QueryParam("city")

	painters, err := s.painters.ListPainters(c.Request().Context(), city)
	if err != nil {
		log.Warn().Err(err).Str("city", city).Msg("painters fetch failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "painters service unavailable"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"painters": painters})
}
