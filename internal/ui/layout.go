package ui

// Terminal size thresholds.
const (
	// LayoutCompactWidth is the width below which the header drops the
	// typewriter line.
	LayoutCompactWidth = 80

	// MinContentHeight keeps panels drawable in very short terminals.
	MinContentHeight = 5
)
