package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// genericResponse covers descriptors that arrive without any response
// text to show.
const genericResponse = "How can I help you?"

// Dispatcher maps an action descriptor to a concrete UI payload and keeps
// the conversation history faithful to what was actually shown. It never
// returns an error: malformed descriptors degrade to a plain-text panel.
type Dispatcher struct {
	blog BlogLister
	hub  models.HubState
}

// NewDispatcher creates a dispatcher. The hub state is passed in
// explicitly; the dispatcher holds no ambient globals.
func NewDispatcher(blog BlogLister, hub models.HubState) *Dispatcher {
	return &Dispatcher{blog: blog, hub: hub}
}

// Dispatch executes one decision. The user's raw message is appended to
// the history before acting and exactly one assistant message after,
// describing the action taken.
func (d *Dispatcher) Dispatch(ctx context.Context, userMessage string, desc models.ActionDescriptor, conv *Conversation) models.DispatchResult {
	conv.Append(models.RoleUser, userMessage)

	switch desc.Action {
	case models.ActionShowProjectDetail:
		conv.Append(models.RoleAssistant,
			fmt.Sprintf("Showing project detail for ID %s: %s", desc.ProjectID, desc.Response))
		return models.DispatchResult{
			Type:      models.ResultProjectDetail,
			ProjectID: desc.ProjectID,
			Panel: models.Panel{
				Kind:      models.PanelProjectDetail,
				ProjectID: desc.ProjectID,
			},
			Response: desc.Response,
		}

	case models.ActionShowTool:
		panel := d.buildToolPanel(ctx, desc)
		conv.Append(models.RoleAssistant,
			fmt.Sprintf("Showing %s tool: %s", desc.Tool, desc.Response))
		return models.DispatchResult{
			Type:     models.ResultTool,
			ToolName: desc.Tool,
			Panel:    panel,
			Response: desc.Response,
		}

	case models.ActionShowRelatedProjects:
		conv.Append(models.RoleAssistant,
			fmt.Sprintf("Showing related projects for IDs: %s", strings.Join(desc.RelatedProjectIDs, ", ")))
		return models.DispatchResult{
			Type:              models.ResultTool,
			ToolName:          string(models.ToolProjects),
			RelatedProjectIDs: desc.RelatedProjectIDs,
			Panel: models.Panel{
				Kind:              models.PanelTool,
				Tool:              models.ToolProjects,
				RelatedProjectIDs: desc.RelatedProjectIDs,
			},
			Response: desc.Response,
		}

	case models.ActionSameTool, models.ActionTextOnly:
		conv.Append(models.RoleAssistant, desc.Response)
		return models.DispatchResult{
			Type:     models.ResultText,
			Panel:    textPanel(desc.Response),
			Response: desc.Response,
		}

	default:
		// Unrecognized action kind: fall back to plain text with whatever
		// response is present.
		log.Warn().Str("action", string(desc.Action)).Msg("unrecognized action kind, falling back to text")
		response := desc.Response
		if response == "" {
			response = genericResponse
		}
		conv.Append(models.RoleAssistant, response)
		return models.DispatchResult{
			Type:     models.ResultText,
			Panel:    textPanel(response),
			Response: response,
		}
	}
}

// buildToolPanel resolves a tool name to its panel payload. An unknown
// tool name degrades to a plain-text panel carrying the response.
func (d *Dispatcher) buildToolPanel(ctx context.Context, desc models.ActionDescriptor) models.Panel {
	tool := models.Tool(desc.Tool)

	if !models.KnownTool(desc.Tool) {
		return textPanel(desc.Response)
	}

	panel := models.Panel{Kind: models.PanelTool, Tool: tool}

	switch tool {
	case models.ToolBlog:
		// The blog panel needs the actual posts, fetched fresh rather
		// than reused from the prompt context.
		panel.Posts = d.blog.ListPosts(ctx)
	case models.ToolHub:
		hub := d.hub
		panel.Hub = &hub
	}

	return panel
}

func textPanel(text string) models.Panel {
	return models.Panel{Kind: models.PanelText, Text: text}
}
