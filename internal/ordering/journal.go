package ordering

import (
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/ValueCharts/internal/scoring"
)

// Kind says what a Record reorders.
type Kind string

const (
	KindAlternatives Kind = "alternatives"
	KindObjectives   Kind = "objectives"
	KindWeights      Kind = "weights"
)

// Record describes one state change: the order (or weight map) before it
// and after it. Records are plain values; the engine never journals them
// itself.
type Record struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Strategy  string    `json:"strategy,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	// Parent is the objective whose children were reordered; empty for the
	// root list. Only set for KindObjectives.
	Parent string `json:"parent,omitempty"`
	// User owns the weights. Only set for KindWeights.
	User string `json:"user,omitempty"`

	Before []string `json:"before,omitempty"`
	After  []string `json:"after,omitempty"`

	BeforeWeights *scoring.WeightMap `json:"before_weights,omitempty"`
	AfterWeights  *scoring.WeightMap `json:"after_weights,omitempty"`
}

func newRecord(kind Kind, strategy string) Record {
	return Record{
		ID:        uuid.New(),
		Kind:      kind,
		Strategy:  strategy,
		CreatedAt: time.Now().UTC(),
	}
}

// Journal is a bounded undo/redo stack of Records.
type Journal struct {
	undo  []Record
	redo  []Record
	limit int
}

// NewJournal creates a journal keeping at most limit undo entries; limit <= 0
// means unbounded.
func NewJournal(limit int) *Journal {
	return &Journal{limit: limit}
}

// Push records a new change and clears the redo stack.
func (j *Journal) Push(r Record) {
	j.undo = append(j.undo, r)
	if j.limit > 0 && len(j.undo) > j.limit {
		j.undo = j.undo[len(j.undo)-j.limit:]
	}
	j.redo = nil
}

// Undo pops the most recent change and moves it to the redo stack. The
// caller reverts it with Engine.Revert.
func (j *Journal) Undo() (Record, bool) {
	if len(j.undo) == 0 {
		return Record{}, false
	}
	r := j.undo[len(j.undo)-1]
	j.undo = j.undo[:len(j.undo)-1]
	j.redo = append(j.redo, r)
	return r, true
}

// Redo pops the most recently undone change and moves it back to the undo
// stack. The caller reapplies it with Engine.Reapply.
func (j *Journal) Redo() (Record, bool) {
	if len(j.redo) == 0 {
		return Record{}, false
	}
	r := j.redo[len(j.redo)-1]
	j.redo = j.redo[:len(j.redo)-1]
	j.undo = append(j.undo, r)
	return r, true
}

func (j *Journal) CanUndo() bool { return len(j.undo) > 0 }

func (j *Journal) CanRedo() bool { return len(j.redo) > 0 }

// Clear drops all history, for instance after the chart structure was
// replaced wholesale.
func (j *Journal) Clear() {
	j.undo = nil
	j.redo = nil
}
