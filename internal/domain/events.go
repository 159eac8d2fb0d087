package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventGroupToggled EventType = "GroupToggled"
	EventSourceLoaded EventType = "SourceLoaded"
	EventConfigLoaded EventType = "ConfigLoaded"
	EventConfigSaved  EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// GroupToggledEvent is emitted after a group flipped between expanded and collapsed
type GroupToggledEvent struct {
	Title     string
	Collapsed bool
	Visible   int // visible member count after the toggle
}

func (e GroupToggledEvent) Type() EventType { return EventGroupToggled }

// SourceLoadedEvent is emitted once the grouped list source has been built
type SourceLoadedEvent struct {
	Groups  int
	Members int
}

func (e SourceLoadedEvent) Type() EventType { return EventSourceLoaded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string
	Groups int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
