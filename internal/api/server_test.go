package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferhatural/paint-assistant/internal/assistant"
	"github.com/ferhatural/paint-assistant/internal/llm"
	"github.com/ferhatural/paint-assistant/internal/ui"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

type stubModel struct {
	decideReply string
}

func (s *stubModel) Propose(ctx context.Context, req llm.ProposeRequest) (string, error) {
	if strings.Contains(req.System, "query router") {
		return `{"needsProjects": false, "needsColors": false, "needsBlog": false}`, nil
	}
	return s.decideReply, nil
}

func (s *stubModel) Name() string { return "stub" }

type stubProjects struct{}

func (stubProjects) List(ctx context.Context) ([]models.Project, error) { return nil, nil }

type stubBlog struct{}

func (stubBlog) ListPosts(ctx context.Context) []models.BlogPost { return nil }

type stubPainters struct {
	painters []models.Painter
	err      error
}

func (s *stubPainters) ListPainters(ctx context.Context, city string) ([]models.Painter, error) {
	return s.painters, s.err
}

func newTestServer(t *testing.T, model *stubModel, painters PainterLister) (*Server, *ui.ManualClock) {
	t.Helper()

	classifier := assistant.NewClassifier(model)
	assembler := assistant.NewAssembler(classifier, stubProjects{}, stubBlog{})
	engine := assistant.NewEngine(model, 0.1)
	dispatcher := assistant.NewDispatcher(stubBlog{}, models.HubState{})
	service := assistant.NewService(assembler, engine, dispatcher, nil)

	clock := ui.NewManualClock(time.Unix(1700000000, 0))
	display := ui.NewStateMachine(clock, ui.DefaultConfig())

	return NewServer(0, service, display, painters), clock
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestChatMessage_ToolTurn(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{
		decideReply: `{"action": "show_tool", "tool": "projects", "response": "Here are the projects from our portfolio"}`,
	}, &stubPainters{})

	body := strings.NewReader(`{"message": "show projects"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result  models.DispatchResult `json:"result"`
		Display ui.DisplayState       `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, models.ResultTool, resp.Result.Type)
	assert.Equal(t, "projects", resp.Result.ToolName)
	assert.Equal(t, "projects", resp.Display.CurrentToolType)
	assert.False(t, resp.Display.Processing)
}

func TestChatMessage_EmptyMessageRejected(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message": ""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatMessage_MalformedBodyRejected(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{{{`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectDetail(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/project-detail", strings.NewReader(`{"projectId": "20"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Result  models.DispatchResult `json:"result"`
		Display ui.DisplayState       `json:"display"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, models.ResultProjectDetail, resp.Result.Type)
	assert.Equal(t, "20", resp.Result.ProjectID)
	require.NotNil(t, resp.Display.CurrentTool)
	assert.Equal(t, models.PanelProjectDetail, resp.Display.CurrentTool.Kind)
}

func TestProjectDetail_MissingIDRejected(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/project-detail", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistory(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{
		decideReply: `{"action": "text_only", "response": "Hello!"}`,
	}, &stubPainters{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/messages", strings.NewReader(`{"message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Handler().ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chat/history", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ChatID   string              `json:"chatId"`
		Messages []models.ChatMessage `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ChatID)
	require.Len(t, resp.Messages, 2)
	assert.Equal(t, "hi", resp.Messages[0].Content)
}

func TestDisplayEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/chat/display", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var display ui.DisplayState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &display))
	assert.Nil(t, display.CurrentTool)
	assert.False(t, display.Processing)
}

func TestPainters(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{
		painters: []models.Painter{{Name: "Ayse", SurName: "Demir", ExperienceYear: 12}},
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/painters?city=Istanbul", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Ayse")
}

func TestPainters_UpstreamFailure(t *testing.T) {
	srv, _ := newTestServer(t, &stubModel{}, &stubPainters{err: errors.New("down")})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/painters", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
