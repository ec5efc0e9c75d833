// Package changedetect decides, after every external mutation, whether the
// aggregation engine has to run again or only the presentation changed.
package changedetect

import (
	"slices"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

// Detector keeps one baseline per tracked input. Each Detect call compares
// the live input with its baseline and then replaces the baseline with a copy
// of the live input, so consecutive calls diff against the latest state.
// An input that was never baselined reports a change.
//
// A Detector is not safe for concurrent use.
type Detector struct {
	chart     *model.ValueChart
	displayed []string
	chartSeen bool

	view     view.Config
	viewSeen bool

	interaction     view.InteractionConfig
	interactionSeen bool

	size     view.Size
	sizeSeen bool
}

// Inputs is everything a Detector tracks.
type Inputs struct {
	Chart          *model.ValueChart
	DisplayedUsers []string
	View           view.Config
	Interaction    view.InteractionConfig
	Size           view.Size
	// Force requests a structural re-render regardless of the chart diff.
	Force bool
}

func New() *Detector { return &Detector{} }

// Start baselines every input.
func (d *Detector) Start(in Inputs) {
	d.baselineChart(in.Chart, in.DisplayedUsers)
	d.view, d.viewSeen = in.View, true
	d.interaction, d.interactionSeen = in.Interaction, true
	d.size, d.sizeSeen = in.Size, true
}

// DetectChartChange reports any deep difference in the chart, a different
// displayed user list, or force.
func (d *Detector) DetectChartChange(c *model.ValueChart, displayed []string, force bool) bool {
	changed := force || !d.chartSeen ||
		!d.chart.Equal(c) ||
		!slices.Equal(d.displayed, displayed)
	d.baselineChart(c, displayed)
	return changed
}

func (d *Detector) baselineChart(c *model.ValueChart, displayed []string) {
	if c != nil {
		d.chart = c.Clone()
	} else {
		d.chart = nil
	}
	d.displayed = slices.Clone(displayed)
	d.chartSeen = true
}

func (d *Detector) DetectViewConfigChange(v view.Config) bool {
	changed := !d.viewSeen || d.view != v
	d.view, d.viewSeen = v, true
	return changed
}

func (d *Detector) DetectInteractionConfigChange(ic view.InteractionConfig) bool {
	changed := !d.interactionSeen || d.interaction != ic
	d.interaction, d.interactionSeen = ic, true
	return changed
}

// DetectSizeChange reports a new width or height. A size change only needs
// the layout rescaled, not the rows rebuilt.
func (d *Detector) DetectSizeChange(s view.Size) bool {
	changed := !d.sizeSeen || d.size != s
	d.size, d.sizeSeen = s, true
	return changed
}
