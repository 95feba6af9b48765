package assistant

import "github.com/cokeastorga/astorgayabogados/internal/entity"

// State is one of Idle, Thinking, Replied, Failed, Fallback, AwaitingFeedback or Summarizing.
// Each variant carries only the data valid while it is current.
type State interface {
	Name() string
	isState()
}

type Idle struct{}

type Thinking struct{}

// Replied is the state after a successful turn.
type Replied struct{}

// Failed is transient: it is reported in logs and immediately replaced by Fallback.
type Failed struct {
	Reason string
}

type Fallback struct {
	Node Node
}

type FeedbackStep int

const (
	StepSatisfaction FeedbackStep = iota
	StepFollowUp
	StepContact
)

func (s FeedbackStep) String() string {
	switch s {
	case StepSatisfaction:
		return "satisfaction"
	case StepFollowUp:
		return "follow_up"
	case StepContact:
		return "contact"
	}
	return "unknown"
}

type AwaitingFeedback struct {
	Step         FeedbackStep
	Satisfaction entity.Satisfaction
	FollowUp     *bool
	Contact      string
}

type Summarizing struct{}

func (Idle) Name() string             { return "IDLE" }
func (Thinking) Name() string         { return "THINKING" }
func (Replied) Name() string          { return "SUCCESS" }
func (Failed) Name() string           { return "ERROR" }
func (Fallback) Name() string         { return "FALLBACK_MODE" }
func (AwaitingFeedback) Name() string { return "AWAITING_FEEDBACK" }
func (Summarizing) Name() string      { return "SUMMARIZING" }

func (Idle) isState()             {}
func (Thinking) isState()         {}
func (Replied) isState()          {}
func (Failed) isState()           {}
func (Fallback) isState()         {}
func (AwaitingFeedback) isState() {}
func (Summarizing) isState()      {}
