package ui

import (
	"sync"
	"time"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// apologyText is shown when a turn fails for any reason.
const apologyText = "Sorry, something went wrong. Please try again."

// Overlay is one transient text message floating over the current panel.
// Identity is the id; dequeue must match by id, never by position.
type Overlay struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
}

// Config holds the fixed overlay timings.
type Config struct {
	ToolOverlayDelay  time.Duration
	ToolOverlayTTL    time.Duration
	TextOverlayDelay  time.Duration
	TextOverlayTTL    time.Duration
	ErrorOverlayTTL   time.Duration
	LoadingOverlayTTL time.Duration
}

// DefaultConfig returns the reference timings.
func DefaultConfig() Config {
	return Config{
		ToolOverlayDelay:  300 * time.Millisecond,
		ToolOverlayTTL:    5 * time.Second,
		TextOverlayDelay:  10 * time.Millisecond,
		TextOverlayTTL:    6 * time.Second,
		ErrorOverlayTTL:   6 * time.Second,
		LoadingOverlayTTL: 2 * time.Second,
	}
}

// DisplayState is a point-in-time snapshot of the presentation state.
type DisplayState struct {
	CurrentTool     *models.Panel  `json:"currentTool"`
	CurrentToolType string         `json:"currentToolType,omitempty"`
	Overlays        []Overlay      `json:"overlays"`
	Messages        []models.Panel `json:"messages"`
	Processing      bool           `json:"isProcessing"`
}

// StateMachine owns the client display state: the current tool panel, the
// overlay queue, and the visible message log. All mutation goes through
// its methods; timers fire back into it through the injected Clock.
type StateMachine struct {
	clock Clock
	cfg   Config

	mu              sync.Mutex
	currentTool     *models.Panel
	currentToolType string
	overlays        []Overlay
	messages        []models.Panel
	processing      bool
	turnSeq         int64
	lastOverlayID   int64
}

// NewStateMachine creates a state machine in the Idle state.
func NewStateMachine(clock Clock, cfg Config) *StateMachine {
	if clock == nil {
		clock = RealClock()
	}
	return &StateMachine{clock: clock, cfg: cfg}
}

// BeginTurn starts a user-initiated turn. It returns the turn's sequence
// number, or ok=false while another turn is still in flight (the send
// affordance is disabled then).
func (m *StateMachine) BeginTurn() (turn int64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.processing {
		return 0, false
	}
	m.processing = true
	m.turnSeq++
	return m.turnSeq, true
}

// FinishTurn completes a turn with its dispatch result or error. A turn
// that is no longer the latest releases the processing flag it still owns
// but does not touch display state, so a slow turn cannot overwrite a
// newer one.
func (m *StateMachine) FinishTurn(turn int64, result models.DispatchResult, turnErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if turn == m.turnSeq {
		m.processing = false
	}

	if turnErr != nil {
		m.overlays = nil
		m.addOverlayLocked(apologyText, m.cfg.ErrorOverlayTTL)
		return
	}

	if turn != m.turnSeq {
		return
	}

	switch result.Type {
	case models.ResultProjectDetail:
		m.overlays = nil
		panel := result.Panel
		m.currentTool = &panel
		m.currentToolType = string(models.ToolProjectDetail)
		// Detail views are not chat messages; the log is untouched.

	case models.ResultTool:
		m.overlays = nil
		panel := result.Panel
		m.currentTool = &panel
		m.currentToolType = result.ToolName
		m.messages = append(m.messages, result.Panel)
		m.scheduleOverlayLocked(m.cfg.ToolOverlayDelay, result.Response, m.cfg.ToolOverlayTTL)

	case models.ResultText:
		m.overlays = nil
		m.messages = append(m.messages, result.Panel)
		m.scheduleOverlayLocked(m.cfg.TextOverlayDelay, result.Response, m.cfg.TextOverlayTTL)

	default:
		m.overlays = nil
		m.addOverlayLocked(apologyText, m.cfg.ErrorOverlayTTL)
	}
}

// ShowProjectDetail handles a direct project click: swap in the detail
// panel and flash a short loading overlay.
func (m *StateMachine) ShowProjectDetail(projectID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.overlays = nil
	m.currentTool = &models.Panel{Kind: models.PanelProjectDetail, ProjectID: projectID}
	m.currentToolType = string(models.ToolProjectDetail)
	m.addOverlayLocked("Loading project details...", m.cfg.LoadingOverlayTTL)
}

// BackToProjects returns from a detail view to the projects panel.
func (m *StateMachine) BackToProjects() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentTool = &models.Panel{Kind: models.PanelTool, Tool: models.ToolProjects}
	m.currentToolType = string(models.ToolProjects)
}

// Snapshot returns a copy of the display state.
func (m *StateMachine) Snapshot() DisplayState {
	m.mu.Lock()
	defer m.mu.Unlock()

	overlays := make([]Overlay, len(m.overlays))
	copy(overlays, m.overlays)
	messages := make([]models.Panel, len(m.messages))
	copy(messages, m.messages)

	return DisplayState{
		CurrentTool:     m.currentTool,
		CurrentToolType: m.currentToolType,
		Overlays:        overlays,
		Messages:        messages,
		Processing:      m.processing,
	}
}

// Processing reports whether a turn is in flight.
func (m *StateMachine) Processing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.processing
}

// CurrentToolType returns the currently shown tool name, or "".
func (m *StateMachine) CurrentToolType() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentToolType
}

// scheduleOverlayLocked enqueues an overlay after delay and auto-dequeues
// it after ttl. Caller holds the lock. A zero delay enqueues immediately.
func (m *StateMachine) scheduleOverlayLocked(delay time.Duration, content string, ttl time.Duration) {
	if delay <= 0 {
		m.addOverlayLocked(content, ttl)
		return
	}
	m.clock.AfterFunc(delay, func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.addOverlayLocked(content, ttl)
	})
}

// addOverlayLocked appends an overlay and arms its expiry timer. Caller
// holds the lock. Ids are strictly increasing even when two overlays are
// created within the clock's resolution, so an expiry timer can only ever
// remove its own overlay.
func (m *StateMachine) addOverlayLocked(content string, ttl time.Duration) {
	id := m.clock.Now().UnixNano()
	if id <= m.lastOverlayID {
		id = m.lastOverlayID + 1
	}
	m.lastOverlayID = id

	m.overlays = append(m.overlays, Overlay{ID: id, Content: content})

	m.clock.AfterFunc(ttl, func() {
		m.removeOverlay(id)
	})
}

// removeOverlay drops the overlay with the given id, if still present.
func (m *StateMachine) removeOverlay(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.overlays[:0]
	for _, o := range m.overlays {
		if o.ID != id {
			kept = append(kept, o)
		}
	}
	m.overlays = kept
}
