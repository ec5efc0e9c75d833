package session

import (
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/aggregation"
	"github.com/MikeSquared-Agency/ValueCharts/internal/changedetect"
	"github.com/MikeSquared-Agency/ValueCharts/internal/hermes"
	"github.com/MikeSquared-Agency/ValueCharts/internal/model"
	"github.com/MikeSquared-Agency/ValueCharts/internal/ordering"
	"github.com/MikeSquared-Agency/ValueCharts/internal/view"
)

// Session is one hosted chart with its engines and derived projections. It
// is only ever touched by the hub's writer goroutine.
type Session struct {
	Chart *model.ValueChart

	// Displayed lists the users shown; nil shows every user.
	Displayed   []string
	View        view.Config
	Interaction view.InteractionConfig
	Size        view.Size

	aggregation *aggregation.Engine
	ordering    *ordering.Engine
	journal     *ordering.Journal
	detector    *changedetect.Detector

	rows   []aggregation.RowData
	labels []*aggregation.LabelData
	last   changedetect.Classification

	logger        *slog.Logger
	lastUsed      time.Time
	rescaleOnEdit bool
	forceRender   bool
	dirty         bool
	outbox        []hermes.ChartEvent
}

func newSession(c *model.ValueChart, defaults Defaults, logger *slog.Logger) *Session {
	s := &Session{
		Chart:         c,
		View:          defaults.View,
		Interaction:   defaults.Interaction,
		Size:          defaults.Size,
		aggregation:   aggregation.NewEngine(logger.With("chart_id", c.ID)),
		ordering:      ordering.NewEngine(c),
		journal:       ordering.NewJournal(defaults.JournalLimit),
		detector:      changedetect.New(),
		rescaleOnEdit: defaults.RescaleOnEdit,
		logger:        logger,
	}
	s.detector.Start(s.inputs())
	s.recompute()
	return s
}

// Defaults seed every new session.
type Defaults struct {
	View          view.Config
	Interaction   view.InteractionConfig
	Size          view.Size
	JournalLimit  int
	RescaleOnEdit bool
}

func (s *Session) ID() uuid.UUID { return s.Chart.ID }

// DisplayedUsers returns the shown users in chart order.
func (s *Session) DisplayedUsers() []*model.User {
	if s.Displayed == nil {
		return s.Chart.Users
	}
	out := make([]*model.User, 0, len(s.Displayed))
	for _, u := range s.Chart.Users {
		if slices.Contains(s.Displayed, u.Name) {
			out = append(out, u)
		}
	}
	return out
}

func (s *Session) displayedNames() []string {
	users := s.DisplayedUsers()
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Name
	}
	return names
}

func (s *Session) inputs() changedetect.Inputs {
	return changedetect.Inputs{
		Chart:          s.Chart,
		DisplayedUsers: s.displayedNames(),
		View:           s.View,
		Interaction:    s.Interaction,
		Size:           s.Size,
		Force:          s.forceRender,
	}
}

// ForceRender makes the next refresh structural regardless of the diff.
func (s *Session) ForceRender() { s.forceRender = true }

// Emit queues an event to publish once the current operation succeeds.
func (s *Session) Emit(evt hermes.ChartEvent) {
	s.outbox = append(s.outbox, evt)
}

// refresh classifies what changed since the last refresh and rebuilds the
// projections when the change is structural.
func (s *Session) refresh() (changedetect.Classification, time.Duration) {
	s.last = s.detector.Classify(s.inputs())
	s.forceRender = false
	if s.last.Chart {
		s.dirty = true
	}
	if s.last.Class != changedetect.Structural {
		return s.last, 0
	}
	return s.last, s.recompute()
}

func (s *Session) recompute() time.Duration {
	start := time.Now()
	s.rows = s.aggregation.RowData(s.Chart, s.DisplayedUsers())
	s.labels = s.aggregation.LabelData(s.Chart)
	return time.Since(start)
}

// Render is a self-contained copy of everything a renderer needs. It shares
// nothing with the session.
type Render struct {
	ChartID        uuid.UUID                   `json:"chart_id"`
	Name           string                      `json:"name"`
	Type           model.ChartType             `json:"type"`
	Alternatives   []string                    `json:"alternatives"`
	Users          []string                    `json:"users"`
	Rows           []aggregation.RowData       `json:"rows"`
	Labels         []*aggregation.LabelData    `json:"labels"`
	MaximumWeights map[string]float64          `json:"maximum_weights"`
	View           view.Config                 `json:"view"`
	Interaction    view.InteractionConfig      `json:"interaction"`
	Size           view.Size                   `json:"size"`
	Classification changedetect.Classification `json:"classification"`
	CanUndo        bool                        `json:"can_undo"`
	CanRedo        bool                        `json:"can_redo"`
}

// Snapshot copies the current projections into a Render.
func (s *Session) Snapshot() Render {
	return Render{
		ChartID:        s.Chart.ID,
		Name:           s.Chart.Name,
		Type:           s.Chart.Type(),
		Alternatives:   s.Chart.AlternativeNames(),
		Users:          s.displayedNames(),
		Rows:           copyRows(s.rows),
		Labels:         copyLabels(s.labels),
		MaximumWeights: s.aggregation.MaximumWeightMap(s.Chart).ToMap(),
		View:           s.View,
		Interaction:    s.Interaction,
		Size:           s.Size,
		Classification: s.last,
		CanUndo:        s.journal.CanUndo(),
		CanRedo:        s.journal.CanRedo(),
	}
}

// copyRows drops the model pointers so the copy can outlive the writer's turn.
func copyRows(rows []aggregation.RowData) []aggregation.RowData {
	out := make([]aggregation.RowData, len(rows))
	for i, row := range rows {
		r := aggregation.RowData{Name: row.Name, WeightOffset: row.WeightOffset}
		r.Cells = make([]aggregation.CellData, len(row.Cells))
		for j, cell := range row.Cells {
			c := aggregation.CellData{Name: cell.Name, Value: cell.Value}
			c.UserScores = make([]aggregation.UserScore, len(cell.UserScores))
			for k, us := range cell.UserScores {
				c.UserScores[k] = aggregation.UserScore{
					Name:   us.Name,
					Score:  us.Score,
					Weight: us.Weight,
					Offset: us.Offset,
				}
			}
			r.Cells[j] = c
		}
		out[i] = r
	}
	return out
}

func copyLabels(labels []*aggregation.LabelData) []*aggregation.LabelData {
	if labels == nil {
		return nil
	}
	out := make([]*aggregation.LabelData, len(labels))
	for i, l := range labels {
		out[i] = &aggregation.LabelData{
			Name:            l.Name,
			Weight:          l.Weight,
			Depth:           l.Depth,
			DepthOfChildren: l.DepthOfChildren,
			SubLabelData:    copyLabels(l.SubLabelData),
		}
	}
	return out
}
