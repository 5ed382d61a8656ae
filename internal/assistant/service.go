package assistant

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ferhatural/paint-assistant/pkg/models"
)

// Service is the assistant's action surface. Exactly three entry points
// mutate conversation state; there is no other mutation path.
type Service struct {
	assembler  *Assembler
	engine     *Engine
	dispatcher *Dispatcher
	conv       *Conversation
	store      Store
}

// NewService wires the turn pipeline over a fresh conversation.
func NewService(assembler *Assembler, engine *Engine, dispatcher *Dispatcher, store Store) *Service {
	if store == nil {
		store = NoopStore{}
	}
	return &Service{
		assembler:  assembler,
		engine:     engine,
		dispatcher: dispatcher,
		conv:       NewConversation(),
		store:      store,
	}
}

// SendMessage runs one turn with no current-tool state.
func (s *Service) SendMessage(ctx context.Context, text string) models.DispatchResult {
	return s.SendMessageWithContext(ctx, text, "")
}

// SendMessageWithContext runs one full turn: assemble context, decide,
// dispatch. The pipeline recovers from every upstream failure before it
// reaches here, so the result is always well formed.
func (s *Service) SendMessageWithContext(ctx context.Context, text, currentTool string) models.DispatchResult {
	log.Debug().Str("current_tool", currentTool).Msg("processing message")

	blocks := s.assembler.Assemble(ctx, text)
	desc := s.engine.Decide(ctx, text, currentTool, blocks)

	log.Debug().
		Str("action", string(desc.Action)).
		Str("tool", desc.Tool).
		Str("project_id", desc.ProjectID).
		Msg("decision made")

	result := s.dispatcher.Dispatch(ctx, text, desc, s.conv)

	if err := s.store.Save(ctx, s.conv); err != nil {
		log.Warn().Err(err).Msg("conversation save failed")
	}

	return result
}

// ShowProjectDetail jumps straight to a project's detail panel, bypassing
// the decision engine. Used when the user clicks a project in the list.
func (s *Service) ShowProjectDetail(ctx context.Context, projectID string) models.DispatchResult {
	s.conv.Append(models.RoleAssistant, fmt.Sprintf("Showing project detail for ID %s", projectID))

	if err := s.store.Save(ctx, s.conv); err != nil {
		log.Warn().Err(err).Msg("conversation save failed")
	}

	return models.DispatchResult{
		Type:      models.ResultProjectDetail,
		ProjectID: projectID,
		Panel: models.Panel{
			Kind:      models.PanelProjectDetail,
			ProjectID: projectID,
		},
		Response: fmt.Sprintf("Here are the details for project %s", projectID),
	}
}

// Conversation exposes the session log, mainly for the HTTP layer and
// tests.
func (s *Service) Conversation() *Conversation {
	return s.conv
}
