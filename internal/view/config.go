// Package view holds the presentation settings a chart is rendered with.
// Both types are comparable values so change detection can diff them with ==.
package view

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every validation failure in this package.
var ErrInvalidConfig = errors.New("invalid view configuration")

type Orientation string

const (
	Vertical   Orientation = "vertical"
	Horizontal Orientation = "horizontal"
)

// Config controls what the renderer draws.
type Config struct {
	Orientation            Orientation `json:"orientation" yaml:"orientation"`
	ScaleAlternatives      bool        `json:"scale_alternatives" yaml:"scale_alternatives"`
	DisplayScoreFunctions  bool        `json:"display_score_functions" yaml:"display_score_functions"`
	DisplayWeights         bool        `json:"display_weights" yaml:"display_weights"`
	DisplayTotalScores     bool        `json:"display_total_scores" yaml:"display_total_scores"`
	DisplayScales          bool        `json:"display_scales" yaml:"display_scales"`
	DisplayDomainValues    bool        `json:"display_domain_values" yaml:"display_domain_values"`
	DisplayScoreLabels     bool        `json:"display_score_labels" yaml:"display_score_labels"`
	DisplayAverageScores   bool        `json:"display_average_scores" yaml:"display_average_scores"`
	DisplayUserColorLegend bool        `json:"display_user_color_legend" yaml:"display_user_color_legend"`
}

// DefaultConfig is the view a chart opens with.
func DefaultConfig() Config {
	return Config{
		Orientation:           Vertical,
		ScaleAlternatives:     true,
		DisplayScoreFunctions: true,
		DisplayWeights:        true,
		DisplayTotalScores:    true,
		DisplayScales:         false,
		DisplayDomainValues:   false,
		DisplayScoreLabels:    false,
	}
}

func (c Config) Validate() error {
	switch c.Orientation {
	case Vertical, Horizontal:
		return nil
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidConfig, c.Orientation)
	}
}

// WeightResize selects how dragging a label boundary redistributes weight.
type WeightResize string

const (
	ResizeNone      WeightResize = "none"
	ResizeNeighbors WeightResize = "neighbors"
	ResizeSiblings  WeightResize = "siblings"
)

// Pump selects whether clicking a label increases or decreases its weight.
type Pump string

const (
	PumpOff      Pump = "off"
	PumpIncrease Pump = "increase"
	PumpDecrease Pump = "decrease"
)

// SortMode selects which alternative sort gesture is active.
type SortMode string

const (
	SortNone         SortMode = "none"
	SortObjectives   SortMode = "objectives"
	SortAlphabetical SortMode = "alphabetical"
	SortManual       SortMode = "manual"
	SortReset        SortMode = "reset"
)

// InteractionConfig controls which gestures the renderer enables.
type InteractionConfig struct {
	WeightResize         WeightResize `json:"weight_resize" yaml:"weight_resize"`
	LockedWeights        bool         `json:"locked_weights" yaml:"locked_weights"`
	Pump                 Pump         `json:"pump" yaml:"pump"`
	SortAlternatives     SortMode     `json:"sort_alternatives" yaml:"sort_alternatives"`
	ReorderObjectives    bool         `json:"reorder_objectives" yaml:"reorder_objectives"`
	ExpandScoreFunctions bool         `json:"expand_score_functions" yaml:"expand_score_functions"`
	AdjustScoreFunctions bool         `json:"adjust_score_functions" yaml:"adjust_score_functions"`
	SetObjectiveColors   bool         `json:"set_objective_colors" yaml:"set_objective_colors"`
}

func DefaultInteractionConfig() InteractionConfig {
	return InteractionConfig{
		WeightResize:         ResizeNeighbors,
		Pump:                 PumpOff,
		SortAlternatives:     SortNone,
		ExpandScoreFunctions: true,
		AdjustScoreFunctions: true,
	}
}

func (c InteractionConfig) Validate() error {
	switch c.WeightResize {
	case ResizeNone, ResizeNeighbors, ResizeSiblings:
	default:
		return fmt.Errorf("%w: weight_resize %q", ErrInvalidConfig, c.WeightResize)
	}
	switch c.Pump {
	case PumpOff, PumpIncrease, PumpDecrease:
	default:
		return fmt.Errorf("%w: pump %q", ErrInvalidConfig, c.Pump)
	}
	switch c.SortAlternatives {
	case SortNone, SortObjectives, SortAlphabetical, SortManual, SortReset:
	default:
		return fmt.Errorf("%w: sort_alternatives %q", ErrInvalidConfig, c.SortAlternatives)
	}
	return nil
}

// Size is the renderer's drawing area in pixels.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (s Size) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, s.Width, s.Height)
	}
	return nil
}
