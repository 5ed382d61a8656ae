package models

// Tool identifies one of the fixed UI panels the assistant can surface.
type Tool string

const (
	ToolCameras         Tool = "cameras"
	ToolColors          Tool = "colors"
	ToolProducts        Tool = "products"
	ToolHub             Tool = "hub"
	ToolUsage           Tool = "usage"
	ToolContacts        Tool = "contacts"
	ToolProjects        Tool = "projects"
	ToolBlog            Tool = "blog"
	ToolPainterServices Tool = "painter-services"
	ToolProjectDetail   Tool = "project_detail"
)

// KnownTool reports whether name maps to one of the fixed panels that
// the dispatcher can build directly. The project detail panel is excluded
// because it is only reachable through show_project_detail.
func KnownTool(name string) bool {
	switch Tool(name) {
	case ToolCameras, ToolColors, ToolProducts, ToolHub, ToolUsage,
		ToolContacts, ToolProjects, ToolBlog, ToolPainterServices:
		return true
	}
	return false
}

// ActionKind is the closed set of decisions the engine can return.
type ActionKind string

const (
	ActionShowTool            ActionKind = "show_tool"
	ActionSameTool            ActionKind = "same_tool"
	ActionTextOnly            ActionKind = "text_only"
	ActionShowProjectDetail   ActionKind = "show_project_detail"
	ActionShowRelatedProjects ActionKind = "show_related_projects"
)

// ActionDescriptor is the structured decision produced by the decision
// engine and consumed exactly once by the dispatcher.
//
// Field presence follows the action kind: Tool is set only for show_tool,
// ProjectID only for show_project_detail, RelatedProjectIDs only for
// show_related_projects. Project ids are strings end to end so they match
// the model output without numeric coercion.
type ActionDescriptor struct {
	Action            ActionKind `json:"action"`
	Tool              string     `json:"tool,omitempty"`
	ProjectID         string     `json:"projectId,omitempty"`
	RelatedProjectIDs []string   `json:"relatedProjectIds,omitempty"`
	Response          string     `json:"response"`
}

// IntentFlags is the coarse relevance result of the intent classifier.
// Each flag independently gates one context fetch.
type IntentFlags struct {
	NeedsProjects bool `json:"needsProjects"`
	NeedsColors   bool `json:"needsColors"`
	NeedsBlog     bool `json:"needsBlog"`
}

// ContextBlocks holds the serialized data excerpts injected into the
// decision prompt. Empty blocks are omitted from the prompt.
type ContextBlocks struct {
	Projects string
	Colors   string
	Blog     string
}

// Role tags a conversation message author.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is one entry in the rolling conversation log.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Project is sourced from the projects collaborator and is read-only to
// the core. Identity is the string id.
type Project struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Client      string  `json:"client"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
	Category    string  `json:"category"`
}

// BlogPost mirrors the blog collaborator's list/detail payloads.
type BlogPost struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Alias     string `json:"alias"`
	ShortDesc string `json:"short_desc"`
	MainImage string `json:"main_image"`
	Content   string `json:"content,omitempty"`
}

// Painter mirrors the painters collaborator payload. ProfilePhotoLink is
// rewritten to an absolute URL by the client before it reaches the core.
type Painter struct {
	Name             string `json:"Name"`
	SurName          string `json:"SurName"`
	ProfilePhotoLink string `json:"ProfilePhotoLink"`
	ExperienceYear   int    `json:"ExperienceYear"`
	City             string `json:"City,omitempty"`
}

// Color is one entry of the in-process static color catalog.
type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// HubState describes the smart-home hub panel contents. It is passed into
// the dispatcher explicitly instead of living as ambient global state.
type HubState struct {
	Climate struct {
		Low  int `json:"low"`
		High int `json:"high"`
	} `json:"climate"`
	Lights []HubLight `json:"lights"`
	Locks  []HubLock  `json:"locks"`
}

type HubLight struct {
	Name   string `json:"name"`
	Status bool   `json:"status"`
}

type HubLock struct {
	Name     string `json:"name"`
	IsLocked bool   `json:"isLocked"`
}

// PanelKind distinguishes the renderable payload variants.
type PanelKind string

const (
	PanelTool          PanelKind = "tool"
	PanelText          PanelKind = "text"
	PanelProjectDetail PanelKind = "project_detail"
)

// Panel is the renderable descriptor handed to the presentation layer.
// Rendering is presentation detail; the core only decides which panel to
// show and with what data.
type Panel struct {
	Kind              PanelKind  `json:"kind"`
	Tool              Tool       `json:"tool,omitempty"`
	Text              string     `json:"text,omitempty"`
	ProjectID         string     `json:"projectId,omitempty"`
	RelatedProjectIDs []string   `json:"relatedProjectIds,omitempty"`
	Posts             []BlogPost `json:"posts,omitempty"`
	Hub               *HubState  `json:"hub,omitempty"`
}

// ResultType classifies a dispatch result for the presentation layer.
type ResultType string

const (
	ResultTool          ResultType = "tool"
	ResultText          ResultType = "text"
	ResultProjectDetail ResultType = "project_detail"
)

// DispatchResult is the normalized outcome of one turn.
type DispatchResult struct {
	Type              ResultType `json:"type"`
	ToolName          string     `json:"tool,omitempty"`
	Panel             Panel      `json:"panel"`
	Response          string     `json:"response"`
	ProjectID         string     `json:"projectId,omitempty"`
	RelatedProjectIDs []string   `json:"relatedProjectIds,omitempty"`
}
