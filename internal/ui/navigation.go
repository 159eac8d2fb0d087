package ui

// navigator tracks the cursor and keeps it inside a scrolling window
type navigator struct {
	cursor int
	offset int
	height int // rows available for the list; <= 0 shows everything
}

// newNavigator shows every row until the terminal height is known
func newNavigator() *navigator {
	return &navigator{}
}

func (n *navigator) setHeight(height int, total int) {
	n.height = height
	n.clamp(total)
}

func (n *navigator) move(delta int, total int) {
	n.cursor += delta
	n.clamp(total)
}

func (n *navigator) jump(index int, total int) {
	n.cursor = index
	n.clamp(total)
}

// clamp keeps the cursor within [0, total) and scrolls so that it stays visible
func (n *navigator) clamp(total int) {
	if n.cursor >= total {
		n.cursor = total - 1
	}
	if n.cursor < 0 {
		n.cursor = 0
	}

	if n.height <= 0 {
		n.offset = 0
		return
	}
	if n.cursor < n.offset {
		n.offset = n.cursor
	}
	if n.cursor >= n.offset+n.height {
		n.offset = n.cursor - n.height + 1
	}
	// Don't leave empty space at the bottom when rows disappear
	if maxOffset := total - n.height; n.offset > maxOffset {
		n.offset = max(maxOffset, 0)
	}
}

// window returns the half-open range of rows to render
func (n *navigator) window(total int) (int, int) {
	if n.height <= 0 {
		return 0, total
	}
	start := min(n.offset, total)
	end := min(start+n.height, total)
	return start, end
}
