package groups

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"groupfold/internal/domain"
	"groupfold/internal/eventbus"
)

var (
	// ErrGroupNotFound is returned when no group has the requested title
	ErrGroupNotFound = errors.New("group not found")
	// ErrInvalidGroup is returned for a blank or duplicate group title
	ErrInvalidGroup = errors.New("invalid group")
)

// Source is the ordered list of groups handed to a consumer. Groups are fixed
// once the source is built.
type Source struct {
	groups  []*Group
	byTitle map[string]*Group
	bus     eventbus.EventBus
	logger  zerolog.Logger
}

// SourceOption configures a Source
type SourceOption func(*Source)

// WithBus publishes a GroupToggledEvent on bus after every toggle
func WithBus(bus eventbus.EventBus) SourceOption {
	return func(s *Source) {
		s.bus = bus
	}
}

// WithLogger sets the logger used for toggle tracing
func WithLogger(logger zerolog.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logger
	}
}

// NewSource builds one group per spec, in order
func NewSource(specs []domain.GroupSpec, opts ...SourceOption) (*Source, error) {
	s := &Source{
		groups:  make([]*Group, 0, len(specs)),
		byTitle: make(map[string]*Group, len(specs)),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	members := 0
	for i, spec := range specs {
		if strings.TrimSpace(spec.Title) == "" {
			return nil, fmt.Errorf("group %d: blank title: %w", i, ErrInvalidGroup)
		}
		if _, exists := s.byTitle[spec.Title]; exists {
			return nil, fmt.Errorf("group %q: duplicate title: %w", spec.Title, ErrInvalidGroup)
		}

		g := New(spec.Title, spec.Members)
		g.onToggle = s.toggled
		s.groups = append(s.groups, g)
		s.byTitle[spec.Title] = g
		members += len(spec.Members)
	}

	if s.bus != nil {
		s.bus.Publish(eventbus.SourceLoadedEvent{Groups: len(s.groups), Members: members})
	}

	return s, nil
}

// Groups returns the groups in construction order
func (s *Source) Groups() []*Group {
	groups := make([]*Group, len(s.groups))
	copy(groups, s.groups)
	return groups
}

// Len returns the number of groups
func (s *Source) Len() int {
	return len(s.groups)
}

// Group looks a group up by title
func (s *Source) Group(title string) (*Group, bool) {
	g, ok := s.byTitle[title]
	return g, ok
}

// Toggle toggles the group with the given title
func (s *Source) Toggle(title string) error {
	g, ok := s.byTitle[title]
	if !ok {
		return fmt.Errorf("toggle %q: %w", title, ErrGroupNotFound)
	}
	g.Toggle()
	return nil
}

// ExpandAll expands every collapsed group. Groups that are already expanded
// are left alone and emit nothing.
func (s *Source) ExpandAll() {
	for _, g := range s.groups {
		if g.Collapsed() {
			g.Toggle()
		}
	}
}

// CollapseAll collapses every expanded group
func (s *Source) CollapseAll() {
	for _, g := range s.groups {
		if !g.Collapsed() {
			g.Toggle()
		}
	}
}

// VisibleCount returns the number of visible members across all groups
func (s *Source) VisibleCount() int {
	count := 0
	for _, g := range s.groups {
		count += g.Visible().Len()
	}
	return count
}

// toggled is installed as the toggle hook of every group in the source
func (s *Source) toggled(g *Group) {
	s.logger.Debug().
		Str("group", g.Title()).
		Stringer("state", g.State()).
		Int("visible", g.Visible().Len()).
		Msg("group toggled")

	if s.bus != nil {
		s.bus.Publish(eventbus.GroupToggledEvent{
			Title:     g.Title(),
			Collapsed: g.Collapsed(),
			Visible:   g.Visible().Len(),
		})
	}
}
