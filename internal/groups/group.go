package groups

import (
	"fmt"

	"groupfold/internal/collection"
	"groupfold/internal/domain"
)

// State is the visibility state of a group
type State int

const (
	Expanded State = iota
	Collapsed
)

func (s State) String() string {
	if s == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

// Group is a titled, collapsible list of patients. Its master list is fixed
// at construction; Visible projects it as either the full list or nothing.
//
// Every transition replaces the visible items as one batch, so observers of
// Visible see exactly one Reset per Toggle.
type Group struct {
	title     string
	collapsed bool
	members   []domain.Patient
	visible   *collection.Batched[domain.Patient]
	onToggle  func(*Group)
}

// New creates an expanded group whose visible list already holds members
func New(title string, members []domain.Patient) *Group {
	g := &Group{
		title:   title,
		members: make([]domain.Patient, len(members)),
		visible: collection.New[domain.Patient](),
	}
	copy(g.members, members)

	g.update()
	return g
}

// Title returns the group title
func (g *Group) Title() string {
	return g.title
}

// Collapsed reports whether the group is collapsed
func (g *Group) Collapsed() bool {
	return g.collapsed
}

// State returns Expanded or Collapsed
func (g *Group) State() State {
	if g.collapsed {
		return Collapsed
	}
	return Expanded
}

// Members returns a copy of the master list
func (g *Group) Members() []domain.Patient {
	members := make([]domain.Patient, len(g.members))
	copy(members, g.members)
	return members
}

// Visible returns the observed sequence. Consumers subscribe to it and must
// not mutate it.
func (g *Group) Visible() *collection.Batched[domain.Patient] {
	return g.visible
}

// Toggle flips the group between expanded and collapsed
func (g *Group) Toggle() {
	g.collapsed = !g.collapsed
	g.update()

	if g.onToggle != nil {
		g.onToggle(g)
	}
}

func (g *Group) update() {
	if g.collapsed {
		g.visible.Clear()
		return
	}
	// Members never returns nil
	if err := g.visible.AppendRange(g.Members()); err != nil {
		panic(fmt.Sprintf("group %q: %v", g.title, err))
	}
}
