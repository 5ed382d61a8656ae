package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/ferhatural/paint-assistant/internal/api"
	"github.com/ferhatural/paint-assistant/internal/assistant"
	"github.com/ferhatural/paint-assistant/internal/config"
	"github.com/ferhatural/paint-assistant/internal/llm"
	"github.com/ferhatural/paint-assistant/internal/logging"
	"github.com/ferhatural/paint-assistant/internal/providers/blog"
	"github.com/ferhatural/paint-assistant/internal/providers/painters"
	"github.com/ferhatural/paint-assistant/internal/providers/projects"
	"github.com/ferhatural/paint-assistant/internal/ui"
	"github.com/ferhatural/paint-assistant/pkg/models"
)

// ServeCommand returns the CLI command for starting the API server
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the assistant API server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port for the API server (overrides config)",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig(c.String("config"))
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			logging.Setup(cfg.Server.LogLevel, true)

			port := cfg.Server.Port
			if c.Int("port") > 0 {
				port = c.Int("port")
			}

			server, err := buildServer(c.Context, cfg, port)
			if err != nil {
				return err
			}

			log.Info().Int("port", port).Msg("starting assistant API server")
			return server.Start()
		},
	}
}

func buildServer(ctx context.Context, cfg *config.Config, port int) (*api.Server, error) {
	connector, err := llm.NewConnector(ctx, llm.ConnectorOptions{
		Provider:          llm.Provider(cfg.AI.Provider),
		APIKey:            cfg.AI.APIKey,
		BaseURL:           cfg.AI.BaseURL,
		Model:             cfg.AI.Model,
		RequestsPerSecond: cfg.AI.RequestsPerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing model connector: %w", err)
	}

	client := llm.NewResilientClientWithDefaults(connector)

	projectsClient := projects.NewClient(cfg.Collaborators.ProjectsBaseURL)
	blogClient := blog.NewClient(cfg.Collaborators.BlogBaseURL)
	paintersClient := painters.NewClient(cfg.Collaborators.PaintersBaseURL)

	classifier := assistant.NewClassifier(client)
	assembler := assistant.NewAssembler(classifier, projectsClient, blogClient)
	engine := assistant.NewEngine(client, cfg.AI.DecisionTemperature)
	dispatcher := assistant.NewDispatcher(blogClient, defaultHub())
	service := assistant.NewService(assembler, engine, dispatcher, nil)

	display := ui.NewStateMachine(ui.RealClock(), ui.Config{
		ToolOverlayDelay:  cfg.UI.ToolOverlayDelay,
		ToolOverlayTTL:    cfg.UI.ToolOverlayTTL,
		TextOverlayDelay:  cfg.UI.TextOverlayDelay,
		TextOverlayTTL:    cfg.UI.TextOverlayTTL,
		ErrorOverlayTTL:   cfg.UI.ErrorOverlayTTL,
		LoadingOverlayTTL: cfg.UI.LoadingOverlayTTL,
	})

	return api.NewServer(port, service, display, paintersClient), nil
}

// defaultHub seeds the smart-home hub panel.
func defaultHub() models.HubState {
	var hub models.HubState
	hub.Climate.Low = 23
	hub.Climate.High = 25
	hub.Lights = []models.HubLight{
		{Name: "patio", Status: true},
		{Name: "kitchen", Status: false},
		{Name: "garage", Status: true},
	}
	hub.Locks = []models.HubLock{
		{Name: "back door", IsLocked: true},
	}
	return hub
}
