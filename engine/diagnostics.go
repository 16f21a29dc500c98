package engine

import (
	"fmt"

	"github.com/lixenwraith/inputflow/action"
	"github.com/lixenwraith/inputflow/core"
)

// Diagnostics counts non-fatal anomalies observed during evaluation.
// The hot path never fails; stale references and dimension mismatches
// degrade gracefully and are tallied here for the host to inspect.
type Diagnostics struct {
	// MissingActions counts lookups of despawned or unknown action handles
	// by conditions or modifiers
	MissingActions uint64
	// DimMismatches counts values coerced to an action's declared dimension
	DimMismatches uint64
	// UnknownSchedules counts ticks requested for unregistered schedules
	UnknownSchedules uint64

	// LastMessage describes the most recent anomaly
	LastMessage string
}

func (d *Diagnostics) missingAction(e core.Entity) {
	d.MissingActions++
	d.LastMessage = fmt.Sprintf("lookup of missing action %d", e)
}

func (d *Diagnostics) dimMismatch(got, want action.Dim) {
	d.DimMismatches++
	d.LastMessage = fmt.Sprintf("value dimension %s coerced to %s", got, want)
}

func (d *Diagnostics) unknownSchedule(name string) {
	d.UnknownSchedules++
	d.LastMessage = fmt.Sprintf("tick requested for unknown schedule %q", name)
}
