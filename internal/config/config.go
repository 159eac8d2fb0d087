package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"groupfold/internal/domain"
	"groupfold/internal/eventbus"
)

// FileName is the default config file name
const FileName = ".groupfold.toml"

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version    int           `toml:"version"`
	Groups     []GroupConfig `toml:"groups"`
	UISettings UISettings    `toml:"ui"`
}

// GroupConfig is one titled group and its ordered member codes
type GroupConfig struct {
	Title   string   `toml:"title"`
	Members []string `toml:"members"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowCounts        bool `toml:"show_counts"`
	ShowNotifications bool `toml:"show_notifications"`
}

// ConfigService handles configuration management
type ConfigService interface {
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus eventbus.EventBus
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	return &configService{}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus}
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, Groups: len(cfg.Groups)})
	}

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}

	return nil
}

// GroupSpecs converts the configured groups into construction input, keeping
// group and member order.
func (c *Config) GroupSpecs() []domain.GroupSpec {
	specs := make([]domain.GroupSpec, 0, len(c.Groups))
	for _, g := range c.Groups {
		members := make([]domain.Patient, 0, len(g.Members))
		for _, code := range g.Members {
			members = append(members, domain.Patient{Code: code})
		}
		specs = append(specs, domain.GroupSpec{Title: g.Title, Members: members})
	}
	return specs
}

// DefaultGroups returns groups titled "0".."groups-1", each holding
// perGroup members coded "{group}-{member}".
func DefaultGroups(groups, perGroup int) []GroupConfig {
	result := make([]GroupConfig, 0, groups)
	for i := 0; i < groups; i++ {
		members := make([]string, 0, perGroup)
		for j := 0; j < perGroup; j++ {
			members = append(members, fmt.Sprintf("%d-%d", i, j))
		}
		result = append(result, GroupConfig{Title: strconv.Itoa(i), Members: members})
	}
	return result
}

// DefaultConfig returns the default configuration: five groups of five patients
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Groups:  DefaultGroups(5, 5),
		UISettings: UISettings{
			ShowCounts:        true,
			ShowNotifications: true,
		},
	}
}
