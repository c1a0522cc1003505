// Package pipeline drives a full run: extract, research, plan, design,
// generate, deploy. One controller owns all sessions; per-user runs are
// mutually exclusive via abort-and-replace.
package pipeline

// Stage is a pipeline state. Failed is terminal for a run; a session may
// be reset to Idle to start over.
type Stage string

const (
	StageIdle            Stage = "idle"
	StageExtracting      Stage = "extracting_info"
	StageResearching     Stage = "researching"
	StagePlanning        Stage = "planning"
	StageDesigningSystem Stage = "designing_system"
	StageGeneratingCode  Stage = "generating_code"
	StageDeploying       Stage = "deploying"
	StageComplete        Stage = "complete"
	StageFailed          Stage = "failed"
)

// order maps each stage to its successor on the happy path.
var order = map[Stage]Stage{
	StageIdle:            StageExtracting,
	StageExtracting:      StageResearching,
	StageResearching:     StagePlanning,
	StagePlanning:        StageDesigningSystem,
	StageDesigningSystem: StageGeneratingCode,
	StageGeneratingCode:  StageDeploying,
	StageDeploying:       StageComplete,
}

// Next returns the stage after s on the happy path, or Failed if s has
// no successor.
func Next(s Stage) Stage {
	if n, ok := order[s]; ok {
		return n
	}
	return StageFailed
}

// Terminal reports whether no further transitions are possible.
func Terminal(s Stage) bool {
	return s == StageComplete || s == StageFailed
}

// Label is the human-readable progress text for a stage.
func Label(s Stage) string {
	switch s {
	case StageExtracting:
		return "Analyzing your business brief"
	case StageResearching:
		return "Researching your industry and competitors"
	case StagePlanning:
		return "Writing the page plan"
	case StageDesigningSystem:
		return "Creating the design system"
	case StageGeneratingCode:
		return "Generating the website"
	case StageDeploying:
		return "Deploying your site"
	case StageComplete:
		return "Your site is live"
	case StageFailed:
		return "Run failed"
	}
	return string(s)
}
