package aggregation

import (
	"math"

	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// LabelData mirrors one objective in the label tree.
type LabelData struct {
	Objective *model.Objective `json:"-"`
	Name      string           `json:"objective"`
	// Weight is the maximum weight for a primitive, or the sum of the
	// children's weights for an abstract objective.
	Weight       float64      `json:"weight"`
	SubLabelData []*LabelData `json:"sub_label_data,omitempty"`
	Depth        int          `json:"depth"`
	// DepthOfChildren is 0 for a leaf and 1 + the deepest child otherwise.
	DepthOfChildren int `json:"depth_of_children"`
}

// LabelData returns the label tree for the chart's objective forest. The
// tree is rebuilt when there is none cached or the chart's structure changed;
// otherwise the cached tree's weights are refreshed in place and the same
// tree is returned.
func (e *Engine) LabelData(c *model.ValueChart) []*LabelData {
	weights := e.MaximumWeightMap(c)
	if e.labels == nil || e.labelsChart != c || e.labelsStructure != c.StructureVersion() {
		e.labels = make([]*LabelData, len(c.Objectives))
		for i, root := range c.Objectives {
			e.labels[i] = buildLabel(root, weights, 0)
		}
		e.labelsChart = c
		e.labelsStructure = c.StructureVersion()
		e.logger.Debug("rebuilt label tree", "chart_id", c.ID, "roots", len(e.labels))
		return e.labels
	}
	for _, l := range e.labels {
		refreshWeights(l, weights)
	}
	return e.labels
}

func buildLabel(o *model.Objective, weights *scoring.WeightMap, depth int) *LabelData {
	l := &LabelData{Objective: o, Name: o.Name, Depth: depth}
	if o.IsPrimitive() {
		l.Weight = primitiveWeight(weights, o.Name)
		return l
	}
	l.SubLabelData = make([]*LabelData, len(o.Children))
	for i, child := range o.Children {
		sub := buildLabel(child, weights, depth+1)
		l.SubLabelData[i] = sub
		l.Weight += sub.Weight
		if sub.DepthOfChildren+1 > l.DepthOfChildren {
			l.DepthOfChildren = sub.DepthOfChildren + 1
		}
	}
	return l
}

func refreshWeights(l *LabelData, weights *scoring.WeightMap) float64 {
	if l.Objective.IsPrimitive() {
		l.Weight = primitiveWeight(weights, l.Name)
		return l.Weight
	}
	l.Weight = 0
	for _, sub := range l.SubLabelData {
		l.Weight += refreshWeights(sub, weights)
	}
	return l.Weight
}

func primitiveWeight(weights *scoring.WeightMap, name string) float64 {
	w, ok := weights.Weight(name)
	if !ok {
		return math.NaN()
	}
	return w
}

// Find returns the label for an objective anywhere in the tree.
func Find(labels []*LabelData, name string) *LabelData {
	for _, l := range labels {
		if l.Name == name {
			return l
		}
		if found := Find(l.SubLabelData, name); found != nil {
			return found
		}
	}
	return nil
}
