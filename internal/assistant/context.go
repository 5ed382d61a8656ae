package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/ferhatural/paint-assistant/internal/catalog"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

const (
	// descriptionExcerptLen bounds how much of a description is inlined
	// into the prompt per item.
	descriptionExcerptLen = 100

	// maxBlogPostsInContext bounds the blog block to the freshest posts.
	maxBlogPostsInContext = 5
)

// ProjectLister is the slice of the projects collaborator the assembler
// needs.
type ProjectLister interface {
	List(ctx context.Context) ([]models.Project, error)
}

// BlogLister is the slice of the blog collaborator the assembler and the
// dispatcher need. It fails soft: an empty slice on any error.
type BlogLister interface {
	ListPosts(ctx context.Context) []models.BlogPost
}

// Assembler decides which datasets a query needs and serializes them into
// prompt-sized text blocks. It is stateless and re-run every turn.
type Assembler struct {
	classifier *Classifier
	projects   ProjectLister
	blog       BlogLister
}

// NewAssembler creates a context assembler.
func NewAssembler(classifier *Classifier, projects ProjectLister, blog BlogLister) *Assembler {
	return &Assembler{classifier: classifier, projects: projects, blog: blog}
}

// Assemble classifies the query and fetches the relevant datasets. Fetch
// failures degrade to empty blocks; the turn always proceeds. The two
// network fetches are independent reads and run in parallel.
func (a *Assembler) Assemble(ctx context.Context, query string) models.ContextBlocks {
	flags := a.classifier.Classify(ctx, query)

	var blocks models.ContextBlocks

	if flags.NeedsColors {
		blocks.Colors = formatColorsBlock(catalog.AllColors)
	}

	g, gctx := errgroup.WithContext(ctx)

	if flags.NeedsProjects {
		g.Go(func() error {
			projects, err := a.projects.List(gctx)
			if err != nil {
				log.Warn().Err(err).Msg("projects fetch failed, continuing with empty block")
				return nil
			}
			blocks.Projects = formatProjectsBlock(projects)
			return nil
		})
	}

	if flags.NeedsBlog {
		g.Go(func() error {
			posts := a.blog.ListPosts(gctx)
			blocks.Blog = formatBlogBlock(posts)
			return nil
		})
	}

	g.Wait()

	return blocks
}

func formatProjectsBlock(projects []models.Project) string {
	if len(projects) == 0 {
		return ""
	}

	var b strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&b, "ID: %s, Title: %q, Client: %q, Category: %q, Description: %q\n",
			p.ID, p.Title, p.Client, p.Category, excerpt(p.Description, descriptionExcerptLen))
	}
	return b.String()
}

func formatColorsBlock(colors []models.Color) string {
	var b strings.Builder
	for _, c := range colors {
		fmt.Fprintf(&b, "%s (Code: %s)\n", c.Name, c.Code)
	}
	return b.String()
}

func formatBlogBlock(posts []models.BlogPost) string {
	if len(posts) == 0 {
		return ""
	}
	if len(posts) > maxBlogPostsInContext {
		posts = posts[:maxBlogPostsInContext]
	}

	var b strings.Builder
	for _, p := range posts {
		fmt.Fprintf(&b, "Title: %q, Desc: %q\n", p.Title, excerpt(p.ShortDesc, descriptionExcerptLen))
	}
	return b.String()
}

// excerpt truncates s to at most n runes, appending "..." when cut.
func excerpt(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
