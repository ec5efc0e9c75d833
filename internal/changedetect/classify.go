package changedetect

// Class is the recomputation a mutation requires.
type Class string

const (
	// Structural means the aggregation engine must run again.
	Structural Class = "structural"
	// Cosmetic means only presentation settings or the drawing area changed.
	Cosmetic Class = "cosmetic"
	None     Class = "none"
)

// Classification is the outcome of running every detector once.
type Classification struct {
	Class       Class `json:"class"`
	Chart       bool  `json:"chart"`
	View        bool  `json:"view"`
	Interaction bool  `json:"interaction"`
	Size        bool  `json:"size"`
}

// Classify runs all four detectors against in and combines their results.
// Every baseline is replaced, whatever the outcome.
func (d *Detector) Classify(in Inputs) Classification {
	c := Classification{
		Chart:       d.DetectChartChange(in.Chart, in.DisplayedUsers, in.Force),
		View:        d.DetectViewConfigChange(in.View),
		Interaction: d.DetectInteractionConfigChange(in.Interaction),
		Size:        d.DetectSizeChange(in.Size),
	}
	switch {
	case c.Chart:
		c.Class = Structural
	case c.View || c.Interaction || c.Size:
		c.Class = Cosmetic
	default:
		c.Class = None
	}
	return c
}
