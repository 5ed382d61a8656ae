package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

func TestDecide_ShowProjectDetail(t *testing.T) {
	model := &fakeModel{decideReply: `{"action": "show_project_detail", "tool": null, "projectId": "20", "relatedProjectIds": null, "response": "Here are the details for project 20"}`}
	e := NewEngine(model, 0.1)

	desc := e.Decide(context.Background(), "show project 20", "", models.ContextBlocks{})

	assert.Equal(t, models.ActionShowProjectDetail, desc.Action)
	assert.Equal(t, "20", desc.ProjectID)
}

func TestDecide_NumericProjectIDCoercedToString(t *testing.T) {
	model := &fakeModel{decideReply: `{"action": "show_project_detail", "projectId": 20, "response": "Project 20"}`}
	e := NewEngine(model, 0.1)

	desc := e.Decide(context.Background(), "project 20", "", models.ContextBlocks{})

	assert.Equal(t, models.ActionShowProjectDetail, desc.Action)
	assert.Equal(t, "20", desc.ProjectID)
}

func TestDecide_RelatedProjects(t *testing.T) {
	model := &fakeModel{decideReply: `{"action": "show_related_projects", "relatedProjectIds": ["16", "9"], "response": "Here are the e-commerce projects"}`}
	e := NewEngine(model, 0.1)

	desc := e.Decide(context.Background(), "show me e-commerce projects", "", models.ContextBlocks{})

	assert.Equal(t, models.ActionShowRelatedProjects, desc.Action)
	assert.Equal(t, []string{"16", "9"}, desc.RelatedProjectIDs)
}

func TestDecide_MalformedReplyFallsBackToTextOnly(t *testing.T) {
	replies := []string{
		"I would suggest looking at our colors page.",
		"",
		"null",
	}

	for _, reply := range replies {
		model := &fakeModel{decideReply: reply}
		e := NewEngine(model, 0.1)

		desc := e.Decide(context.Background(), "anything", "", models.ContextBlocks{})

		assert.Equal(t, models.ActionTextOnly, desc.Action, "reply %q", reply)
		assert.Equal(t, reply, desc.Response, "fallback must carry the raw model text")
		assert.Empty(t, desc.Tool)
		assert.Empty(t, desc.ProjectID)
		assert.Nil(t, desc.RelatedProjectIDs)
	}
}

func TestDecide_ModelErrorFallsBackToTextOnly(t *testing.T) {
	model := &fakeModel{decideErr: errors.New("timeout")}
	e := NewEngine(model, 0.1)

	desc := e.Decide(context.Background(), "show colors", "", models.ContextBlocks{})

	assert.Equal(t, models.ActionTextOnly, desc.Action)
	assert.NotEmpty(t, desc.Response)
}

func TestDecide_FencedReplyStillParses(t *testing.T) {
	model := &fakeModel{decideReply: "```json\n{\"action\": \"show_tool\", \"tool\": \"colors\", \"response\": \"Here are our colors\"}\n```"}
	e := NewEngine(model, 0.1)

	desc := e.Decide(context.Background(), "show colors", "", models.ContextBlocks{})

	assert.Equal(t, models.ActionShowTool, desc.Action)
	assert.Equal(t, "colors", desc.Tool)
}

func TestBuildDecisionPrompt_EmbedsStateAndContext(t *testing.T) {
	blocks := models.ContextBlocks{
		Projects: "ID: 20, Title: \"Seaside Hotel\"\n",
		Colors:   "Kaktüs 90 (Code: rgb(96,145,103))\n",
	}

	prompt := buildDecisionPrompt("cameras", blocks)

	assert.Contains(t, prompt, "Currently displaying: cameras")
	assert.Contains(t, prompt, "AVAILABLE PROJECTS DATA:")
	assert.Contains(t, prompt, "Seaside Hotel")
	assert.Contains(t, prompt, "AVAILABLE COLORS:")
	assert.NotContains(t, prompt, "AVAILABLE BLOG POSTS:", "empty blocks stay out of the prompt")
	assert.Contains(t, prompt, "Always respond with valid JSON only.")
}

func TestBuildDecisionPrompt_NoToolState(t *testing.T) {
	prompt := buildDecisionPrompt("", models.ContextBlocks{})

	assert.Contains(t, prompt, "No tool currently displayed")
	assert.True(t, strings.Contains(prompt, `"show_related_projects"`))
}
