package ui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"groupfold/internal/collection"
	"groupfold/internal/domain"
	"groupfold/internal/groups"
)

// maxLogEntries bounds the notification log kept for the pager
const maxLogEntries = 5000

// groupView is the consumer-side cache of one group's rows. It learns about
// the group's visible list only through change notifications: a Reset
// re-reads the list in full, an Insert splices a single row.
type groupView struct {
	group   *groups.Group
	members []domain.Patient
	resets  int
	inserts int
}

func newGroupView(g *groups.Group, log *notificationLog) *groupView {
	v := &groupView{
		group:   g,
		members: g.Visible().Items(),
	}
	g.Visible().Subscribe(func(c collection.Change[domain.Patient]) {
		v.apply(c)
		log.add(g.Title(), c)
	})
	return v
}

func (v *groupView) apply(c collection.Change[domain.Patient]) {
	switch c.Kind {
	case collection.Reset:
		v.resets++
		v.members = v.group.Visible().Items()
	case collection.Insert:
		v.inserts++
		v.members = slices.Insert(v.members, c.Index, c.Item)
	}
}

type rowKind int

const (
	headerRow rowKind = iota
	memberRow
)

// row is one line of the list. Header rows carry the group they toggle.
type row struct {
	kind   rowKind
	view   *groupView
	member domain.Patient
}

// buildRows flattens the cached group views into display rows
func buildRows(views []*groupView) []row {
	rows := make([]row, 0, len(views))
	for _, v := range views {
		rows = append(rows, row{kind: headerRow, view: v})
		for _, m := range v.members {
			rows = append(rows, row{kind: memberRow, view: v, member: m})
		}
	}
	return rows
}

// headerIndex returns the row index of the header of v
func headerIndex(rows []row, v *groupView) int {
	for i, r := range rows {
		if r.kind == headerRow && r.view == v {
			return i
		}
	}
	return 0
}

// notification is one change received by the consumer
type notification struct {
	at     time.Time
	group  string
	change string
}

// notificationLog keeps the most recent notifications for display
type notificationLog struct {
	entries []notification
	now     func() time.Time
}

func newNotificationLog() *notificationLog {
	return &notificationLog{now: time.Now}
}

func (l *notificationLog) add(group string, c collection.Change[domain.Patient]) {
	change := c.Kind.String() + "()"
	if c.Kind == collection.Insert {
		change = fmt.Sprintf("Insert(%d, %s)", c.Index, c.Item.Code)
	}
	l.entries = append(l.entries, notification{at: l.now(), group: group, change: change})
	if len(l.entries) > maxLogEntries {
		l.entries = slices.Delete(l.entries, 0, len(l.entries)-maxLogEntries)
	}
}

func (l *notificationLog) Len() int {
	return len(l.entries)
}

func (l *notificationLog) String() string {
	var b strings.Builder
	if len(l.entries) == 0 {
		b.WriteString("No notifications received yet.\n")
		return b.String()
	}
	for _, e := range l.entries {
		fmt.Fprintf(&b, "%s  group %-10s %s\n", e.at.Format("15:04:05.000"), e.group, e.change)
	}
	return b.String()
}
