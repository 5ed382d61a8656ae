package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ferhatural/paint-assistant/internal/catalog"
	"github.com/ferhatural/paint-assistant/internal/llm"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

// fallbackResponse is used when the model call itself fails and there is
// no raw reply to surface.
const fallbackResponse = "Sorry, I could not process that right now. Please try again."

// Engine turns a query plus the current UI state and assembled context
// into one structured action. Each call is independent; the engine keeps
// no state between turns.
type Engine struct {
	llm         llm.Client
	temperature float64
}

// NewEngine creates a decision engine. The temperature is low but nonzero
// so the response text stays natural while the action choice stays stable.
func NewEngine(client llm.Client, temperature float64) *Engine {
	return &Engine{llm: client, temperature: temperature}
}

// Decide issues one model call and returns a structurally valid action
// descriptor. Any failure degrades to a text_only descriptor; Decide never
// returns an error.
func (e *Engine) Decide(ctx context.Context, query, currentTool string, blocks models.ContextBlocks) models.ActionDescriptor {
	system := buildDecisionPrompt(currentTool, blocks)

	reply, err := e.llm.Propose(ctx, llm.ProposeRequest{
		System:      system,
		User:        fmt.Sprintf("User query: %q", query),
		Temperature: e.temperature,
	})
	if err != nil {
		log.Warn().Err(err).Msg("decision model call failed")
		return models.ActionDescriptor{Action: models.ActionTextOnly, Response: fallbackResponse}
	}

	var wire wireDecision
	if _, err := llm.DecodeInto(reply, &wire); err != nil {
		// Total fallback: surface whatever the model said as plain text.
		log.Warn().Err(err).Msg("decision reply violated the output contract")
		return models.ActionDescriptor{Action: models.ActionTextOnly, Response: reply}
	}

	return wire.toDescriptor()
}

// wireDecision is the tolerant decode target for the model's JSON. The
// model occasionally emits project ids as numbers; jsonID accepts both so
// a type slip does not discard an otherwise good decision.
type wireDecision struct {
	Action            string   `json:"action"`
	Tool              string   `json:"tool"`
	ProjectID         jsonID   `json:"projectId"`
	RelatedProjectIDs []jsonID `json:"relatedProjectIds"`
	Response          string   `json:"response"`
}

func (w wireDecision) toDescriptor() models.ActionDescriptor {
	desc := models.ActionDescriptor{
		Action:    models.ActionKind(w.Action),
		Tool:      w.Tool,
		ProjectID: string(w.ProjectID),
		Response:  w.Response,
	}
	for _, id := range w.RelatedProjectIDs {
		desc.RelatedProjectIDs = append(desc.RelatedProjectIDs, string(id))
	}
	return desc
}

// jsonID is a string id that also accepts a JSON number or null.
type jsonID string

func (id *jsonID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*id = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*id = jsonID(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*id = jsonID(num.String())
	return nil
}

// buildDecisionPrompt assembles the system prompt: tool catalog, current
// state, context blocks, and the decision rules with worked examples. The
// rules are the behavioral contract of the whole system.
func buildDecisionPrompt(currentTool string, blocks models.ContextBlocks) string {
	var b strings.Builder

	b.WriteString("You are an AI assistant for the Filli Boya paint retailer web site. ")
	b.WriteString("You help users navigate tools and projects.\n\n")

	b.WriteString("AVAILABLE TOOLS:\n")
	b.WriteString("1. colors - All the colors on offer. Contains color names, codes, and images.\n")
	b.WriteString("2. products - All the paint products on offer. Contains product names, descriptions, images, and categories.\n")
	b.WriteString("3. blog - Ideas and inspiration for using the products. Contains blog titles and content.\n")
	b.WriteString("4. projects - The reference portfolio of completed projects.\n")
	b.WriteString("5. contacts - Contact information: email, phone number, and address.\n")
	b.WriteString("6. painter-services - Registered painters offering application services.\n")
	b.WriteString("7. hub - Smart home controls: climate, lights, and locks.\n")
	b.WriteString("8. cameras - Security camera feeds.\n")
	b.WriteString("9. usage - Utility usage charts.\n\n")

	if currentTool != "" {
		fmt.Fprintf(&b, "CURRENT STATE: Currently displaying: %s\n", currentTool)
	} else {
		b.WriteString("CURRENT STATE: No tool currently displayed\n")
	}

	if blocks.Projects != "" {
		b.WriteString("\nAVAILABLE PROJECTS DATA:\n")
		b.WriteString(blocks.Projects)
	}
	if blocks.Colors != "" {
		b.WriteString("\nAVAILABLE COLORS:\n")
		b.WriteString(blocks.Colors)
	}
	if blocks.Blog != "" {
		b.WriteString("\nAVAILABLE BLOG POSTS:\n")
		b.WriteString(blocks.Blog)
	}

	b.WriteString("\nYOUR JOB: Analyze the user query and decide what action to take. Return a JSON object with:\n")
	b.WriteString(`{
  "action": "show_tool" | "same_tool" | "text_only" | "show_project_detail" | "show_related_projects",
  "tool": "colors" | "products" | "blog" | "projects" | "contacts" | "painter-services" | "hub" | "cameras" | "usage" | null,
  "projectId": "string" | null,
  "relatedProjectIds": "string[]" | null,
  "response": "your response text here"
}
`)

	b.WriteString("\nDECISION RULES:\n")
	b.WriteString("- If query asks for a tool that's NOT currently displayed -> action: \"show_tool\", tool: \"toolname\"\n")
	b.WriteString("- If query asks for a tool that IS currently displayed -> action: \"same_tool\", tool: null\n")
	b.WriteString("- If query asks for a specific project by ID (e.g., \"show project 20\", \"project 15\") -> action: \"show_project_detail\", projectId: \"20\"\n")
	b.WriteString("- If query mentions projects by name/client/category and you can find related projects -> action: \"show_related_projects\", relatedProjectIds: [\"id1\", \"id2\"]\n")
	b.WriteString("- If query asks for inspiration or decoration ideas -> action: \"show_tool\", tool: \"blog\"\n")
	b.WriteString("- If query is general/conversational (not tool-related) -> action: \"text_only\", tool: null\n\n")

	b.WriteString("If the user asks for a paint product, try to find out which type of paint they are looking for (e.g., interior, exterior) before returning the relevant products.\n\n")

	b.WriteString("Colors of the Year 2025:\n")
	for _, name := range catalog.ColorsOfTheYear {
		b.WriteString(name)
		b.WriteString("\n")
	}

	b.WriteString("\nIMPORTANT: When finding related projects, look at the AVAILABLE PROJECTS DATA above and return the actual project IDs that match the user's query. Do NOT invent IDs.\n\n")

	b.WriteString("EXAMPLES:\n")
	b.WriteString(`Query: "show cameras" + Current: null -> {"action": "show_tool", "tool": "cameras", "projectId": null, "relatedProjectIds": null, "response": "Here are your security camera feeds"}
Query: "show projects" + Current: null -> {"action": "show_tool", "tool": "projects", "projectId": null, "relatedProjectIds": null, "response": "Here are the projects from our portfolio"}
Query: "show project 20" + Current: null -> {"action": "show_project_detail", "tool": null, "projectId": "20", "relatedProjectIds": null, "response": "Here are the details for project 20"}
Query: "tell me about Filli Boya projects" + Current: null -> {"action": "show_related_projects", "tool": null, "projectId": null, "relatedProjectIds": ["19"], "response": "Here are the Filli Boya projects from our portfolio"}
Query: "give me decoration ideas" + Current: null -> {"action": "show_tool", "tool": "blog", "projectId": null, "relatedProjectIds": null, "response": "Here are some ideas to inspire you"}
Query: "what is your email" + Current: null -> {"action": "show_tool", "tool": "contacts", "projectId": null, "relatedProjectIds": null, "response": "You can find our contact information here"}
Query: "show cameras" + Current: "cameras" -> {"action": "same_tool", "tool": null, "projectId": null, "relatedProjectIds": null, "response": "The security cameras are already displayed"}
Query: "what is AI" + Current: "cameras" -> {"action": "text_only", "tool": null, "projectId": null, "relatedProjectIds": null, "response": "AI stands for Artificial Intelligence..."}
`)

	b.WriteString("\nAlways respond with valid JSON only. No other text.\n")

	return b.String()
}
