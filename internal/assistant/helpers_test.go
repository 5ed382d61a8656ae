package assistant

import (
	"context"
	"strings"

	"github.com/ferhatural/paint-assistant/internal/llm"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

// fakeModel is a deterministic model double. It routes on the system
// prompt: classifier calls get intentReply, decision calls get
// decideReply.
type fakeModel struct {
	intentReply string
	intentErr   error
	decideReply string
	decideErr   error

	intentCalls int
	decideCalls int
}

func (f *fakeModel) Propose(ctx context.Context, req llm.ProposeRequest) (string, error) {
	if strings.Contains(req.System, "query router") {
		f.intentCalls++
		return f.intentReply, f.intentErr
	}
	f.decideCalls++
	return f.decideReply, f.decideErr
}

func (f *fakeModel) Name() string { return "fake" }

type fakeProjects struct {
	projects []models.Project
	err      error
	calls    int
}

func (f *fakeProjects) List(ctx context.Context) ([]models.Project, error) {
	f.calls++
	return f.projects, f.err
}

type fakeBlog struct {
	posts []models.BlogPost
	calls int
}

func (f *fakeBlog) ListPosts(ctx context.Context) []models.BlogPost {
	f.calls++
	return f.posts
}

func sampleProjects() []models.Project {
	return []models.Project{
		{ID: "16", Title: "Online Store Revamp", Client: "ShopCo", Category: "e-commerce", Description: "Full refresh of the storefront"},
		{ID: "19", Title: "Headquarters Repaint", Client: "Filli Boya", Category: "corporate", Description: "Interior and exterior repaint of the HQ"},
		{ID: "20", Title: "Seaside Hotel", Client: "Azure Resorts", Category: "hospitality", Description: "Weather-resistant exterior system"},
	}
}

func newTestService(model *fakeModel, projects *fakeProjects, blog *fakeBlog) *Service {
	classifier := NewClassifier(model)
	assembler := NewAssembler(classifier, projects, blog)
	engine := NewEngine(model, 0.1)
	dispatcher := NewDispatcher(blog, models.HubState{})
	return NewService(assembler, engine, dispatcher, nil)
}
