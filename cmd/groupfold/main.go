package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"groupfold/internal/config"
	"groupfold/internal/eventbus"
	"groupfold/internal/groups"
	"groupfold/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		logPath    string
		collapse   []string
		dump       bool
	)
	pflag.StringVarP(&configPath, "config", "c", config.FileName, "Config file with groups and UI settings")
	pflag.StringVar(&logPath, "log", "groupfold.log", "Log file (the terminal belongs to the UI)")
	pflag.StringSliceVar(&collapse, "collapse", nil, "Group titles to start collapsed (repeatable)")
	pflag.BoolVar(&dump, "dump", false, "Print the grouped list and exit")
	pflag.Parse()

	// Set up logging
	logger := zerolog.Nop()
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
	} else {
		defer logFile.Close()
		logger = zerolog.New(logFile).With().Timestamp().Logger()
	}

	// Cancel the program on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bus := eventbus.New(logger)
	defer bus.Close()
	subscribeLogging(bus, logger)

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, err := loadOrCreateConfig(configSvc, configPath, logger)
	if err != nil {
		return err
	}

	source, err := groups.NewSource(cfg.GroupSpecs(), groups.WithBus(bus), groups.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to build groups from %s: %w", configPath, err)
	}
	for _, title := range collapse {
		if err := source.Toggle(title); err != nil {
			return err
		}
	}

	if dump {
		return ui.Dump(os.Stdout, source)
	}

	model := ui.NewModel(source, ui.Options{
		Settings:        cfg.UISettings,
		Logger:          logger,
		ShowReadyMarker: os.Getenv("GROUPFOLD_E2E_TEST") == "1",
	})

	logger.Info().Msg("starting UI")
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", err)
	}
	logger.Info().Msg("UI exited normally")

	return nil
}

// loadOrCreateConfig loads the config at path, writing the default config
// there first when the file does not exist.
func loadOrCreateConfig(configSvc config.ConfigService, path string, logger zerolog.Logger) (*config.Config, error) {
	cfg, err := configSvc.LoadFromPath(path)
	if err == nil {
		logger.Info().Str("path", path).Msg("loaded config")
		return cfg, nil
	}
	if !errors.Is(err, config.ErrNotFound) {
		return nil, err
	}

	logger.Info().Str("path", path).Msg("creating default config")
	cfg = config.DefaultConfig()
	if err := configSvc.SaveToPath(cfg, path); err != nil {
		// Still usable without a file on disk
		logger.Warn().Err(err).Msg("failed to save config")
	}
	return cfg, nil
}

// subscribeLogging records domain events in the log file
func subscribeLogging(bus eventbus.EventBus, logger zerolog.Logger) {
	bus.Subscribe(eventbus.EventGroupToggled, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.GroupToggledEvent); ok {
			logger.Info().
				Str("group", event.Title).
				Bool("collapsed", event.Collapsed).
				Int("visible", event.Visible).
				Msg("group toggled")
		}
	})

	bus.Subscribe(eventbus.EventSourceLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.SourceLoadedEvent); ok {
			logger.Info().
				Int("groups", event.Groups).
				Int("members", event.Members).
				Msg("groups loaded")
		}
	})

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			logger.Debug().Str("path", event.Path).Int("groups", event.Groups).Msg("config loaded")
		}
	})

	bus.Subscribe(eventbus.EventConfigSaved, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigSavedEvent); ok {
			logger.Info().Str("path", event.Path).Msg("config saved")
		}
	})
}
