package executor

import (
	"github.com/arthur-debert/akabei/pkg/types"
)

// Phase names one of the seven apply phases
type Phase string

const (
	PhasePreRemove   Phase = "pre_remove"
	PhaseRemove      Phase = "remove"
	PhaseOrphan      Phase = "orphan"
	PhasePostRemove  Phase = "post_remove"
	PhasePreInstall  Phase = "pre_install"
	PhaseInstall     Phase = "install"
	PhasePostInstall Phase = "post_install"
)

// Phases lists the phases in execution order
var Phases = []Phase{
	PhasePreRemove,
	PhaseRemove,
	PhaseOrphan,
	PhasePostRemove,
	PhasePreInstall,
	PhaseInstall,
	PhasePostInstall,
}

// StepStatus tells whether a step changed anything
type StepStatus string

const (
	// StatusDone means the step was carried out
	StatusDone StepStatus = "done"
	// StatusPlanned means the step would have run but this is a dry run
	StatusPlanned StepStatus = "planned"
	// StatusNoop means there was nothing to do, such as removing a file
	// that is already gone
	StatusNoop StepStatus = "noop"
	// StatusSkipped means an orphan was already removed in the same run
	StatusSkipped StepStatus = "skipped"
	// StatusFailed marks the hook that aborted the run
	StatusFailed StepStatus = "failed"
)

// Step is one executed or planned operation
type Step struct {
	Phase   Phase      `json:"phase"`
	Package string     `json:"package,omitempty"`
	Path    string     `json:"path,omitempty"`
	Mode    types.Mode `json:"mode,omitempty"`
	Command []string   `json:"command,omitempty"`
	Status  StepStatus `json:"status"`
}

// Report is the ordered list of steps of one Apply
type Report struct {
	DryRun bool   `json:"dry_run"`
	Steps  []Step `json:"steps"`
}

func (r *Report) add(s Step) {
	r.Steps = append(r.Steps, s)
}

// InPhase returns the steps of one phase, in order
func (r *Report) InPhase(phase Phase) []Step {
	var steps []Step
	for _, s := range r.Steps {
		if s.Phase == phase {
			steps = append(steps, s)
		}
	}
	return steps
}

// Count returns how many steps ended with status
func (r *Report) Count(status StepStatus) int {
	n := 0
	for _, s := range r.Steps {
		if s.Status == status {
			n++
		}
	}
	return n
}
