package calendar

// Display labels for relative days.
const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"
)

// DefaultDisplayLayout is used for days that are neither today nor yesterday.
const DefaultDisplayLayout = "Mon, Jan 2 2006"

// Label resolves the display label of d relative to today: "Today",
// "Yesterday", or d formatted with layout.
func Label(d, today Day, layout string) string {
	switch d {
	case today:
		return LabelToday
	case today.AddDays(-1):
		return LabelYesterday
	}

	if layout == "" {
		layout = DefaultDisplayLayout
	}

	return d.Format(layout)
}
