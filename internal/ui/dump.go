package ui

import (
	"fmt"
	"io"

	"groupfold/internal/groups"
)

// Dump writes the grouped list as plain text: one header per group followed
// by its visible members, indented.
func Dump(w io.Writer, source *groups.Source) error {
	for _, g := range source.Groups() {
		arrow := "▼"
		if g.Collapsed() {
			arrow = "▶"
		}
		if _, err := fmt.Fprintf(w, "%s %s (%d)\n", arrow, g.Title(), len(g.Members())); err != nil {
			return err
		}
		for _, p := range g.Visible().Items() {
			if _, err := fmt.Fprintf(w, "    %s\n", p.Code); err != nil {
				return err
			}
		}
	}
	return nil
}
