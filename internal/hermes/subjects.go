package hermes

const (
	SubjectChartPrefix = "valuecharts.chart."
	// SubjectAllChartEvents matches every chart event from every instance.
	SubjectAllChartEvents = "valuecharts.chart.*.event.>"
	SubjectHubStats       = "valuecharts.hub.stats"

	StreamName   = "VALUECHARTS_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectUserAdded(chartID string) string   { return SubjectChartPrefix + chartID + ".event.user.added" }
func SubjectUserChanged(chartID string) string { return SubjectChartPrefix + chartID + ".event.user.changed" }
func SubjectUserRemoved(chartID string) string { return SubjectChartPrefix + chartID + ".event.user.removed" }
func SubjectStructureChanged(chartID string) string {
	return SubjectChartPrefix + chartID + ".event.structure.changed"
}

// Rendered is published after a structural recompute; it is informational
// and not replayed into other instances.
func SubjectChartRendered(chartID string) string { return SubjectChartPrefix + chartID + ".rendered" }

// SubjectFor returns the subject an event of type t is published on.
func SubjectFor(t EventType, chartID string) string {
	switch t {
	case UserAdded:
		return SubjectUserAdded(chartID)
	case UserChanged:
		return SubjectUserChanged(chartID)
	case UserRemoved:
		return SubjectUserRemoved(chartID)
	case StructureChanged:
		return SubjectStructureChanged(chartID)
	default:
		return SubjectChartPrefix + chartID + ".event.unknown"
	}
}
