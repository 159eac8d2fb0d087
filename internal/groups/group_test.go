package groups

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupfold/internal/collection"
	"groupfold/internal/domain"
)

func patients(codes ...string) []domain.Patient {
	members := make([]domain.Patient, len(codes))
	for i, code := range codes {
		members[i] = domain.Patient{Code: code}
	}
	return members
}

// countChanges subscribes to the visible list of g and counts notifications by kind
func countChanges(g *Group) map[collection.ChangeKind]int {
	counts := make(map[collection.ChangeKind]int)
	g.Visible().Subscribe(func(c collection.Change[domain.Patient]) {
		counts[c.Kind]++
	})
	return counts
}

func TestNewGroupStartsExpanded(t *testing.T) {
	members := patients("a", "b", "c")
	g := New("title", members)

	assert.Equal(t, "title", g.Title())
	assert.False(t, g.Collapsed())
	assert.Equal(t, Expanded, g.State())
	assert.Equal(t, members, g.Visible().Items())
	assert.Equal(t, members, g.Members())
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	members := patients("a", "b", "c")
	g := New("g", members)
	counts := countChanges(g)

	g.Toggle()
	assert.True(t, g.Collapsed())
	assert.Equal(t, Collapsed, g.State())
	assert.Empty(t, g.Visible().Items())

	g.Toggle()
	assert.False(t, g.Collapsed())
	assert.Equal(t, members, g.Visible().Items())

	assert.Equal(t, 2, counts[collection.Reset], "one Reset per toggle")
	assert.Zero(t, counts[collection.Insert], "toggle must never announce single inserts")
}

func TestCollapseEmptiesRegardlessOfSize(t *testing.T) {
	for _, size := range []int{0, 1, 5, 100} {
		t.Run(fmt.Sprintf("%d members", size), func(t *testing.T) {
			codes := make([]string, size)
			for i := range codes {
				codes[i] = fmt.Sprintf("m-%d", i)
			}
			g := New("g", patients(codes...))
			require.Equal(t, size, g.Visible().Len())

			g.Toggle()
			assert.Empty(t, g.Visible().Items())

			g.Toggle()
			assert.Equal(t, size, g.Visible().Len())
			g.Toggle()
			assert.Empty(t, g.Visible().Items())
		})
	}
}

func TestExpandPreservesOrder(t *testing.T) {
	g := New("g", patients("c", "a", "b"))

	g.Toggle()
	g.Toggle()

	assert.Equal(t, []string{"c", "a", "b"}, domain.PatientCodes(g.Visible().Items()))
}

func TestResetSeesCompleteContents(t *testing.T) {
	g := New("g", patients("a", "b", "c", "d"))
	g.Toggle()

	var seen [][]string
	g.Visible().Subscribe(func(c collection.Change[domain.Patient]) {
		seen = append(seen, domain.PatientCodes(g.Visible().Items()))
	})

	g.Toggle()

	require.Len(t, seen, 1)
	assert.Equal(t, []string{"a", "b", "c", "d"}, seen[0])
}

func TestMasterListIsCopied(t *testing.T) {
	members := patients("a", "b")
	g := New("g", members)

	members[0].Code = "changed"
	got := g.Members()
	got[1].Code = "changed too"

	g.Toggle()
	g.Toggle()
	assert.Equal(t, []string{"a", "b"}, domain.PatientCodes(g.Visible().Items()))
}

func TestNilMembersBehaveAsEmpty(t *testing.T) {
	g := New("empty", nil)
	counts := countChanges(g)

	require.NotPanics(t, g.Toggle)
	require.NotPanics(t, g.Toggle, "expanding an empty group is a valid batch")

	assert.Empty(t, g.Visible().Items())
	assert.NotNil(t, g.Members())
	assert.Equal(t, 2, counts[collection.Reset])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "expanded", Expanded.String())
	assert.Equal(t, "collapsed", Collapsed.String())
}
