package donation

import "sync"

// SubmissionStage indexes the four observable stages of one submission.
type SubmissionStage int

const (
	StagePreprocess SubmissionStage = iota + 1
	StageUpload
	StagePersist
	StageBroadcast
)

func (s SubmissionStage) String() string {
	switch s {
	case StagePreprocess:
		return "preprocessing image"
	case StageUpload:
		return "uploading to cloud storage"
	case StagePersist:
		return "creating donation record"
	case StageBroadcast:
		return "notifying nearby NGOs"
	default:
		return "unknown"
	}
}

// ProgressTracker records the stage sequence of one submission. A stage is
// recorded once it has completed, so a submission that fails mid-flight shows
// only the stages that actually finished. The recorded sequence is the source
// of truth for progress; the optional hook only mirrors it to a live consumer
// (e.g. an upload stepper in the client).
type ProgressTracker struct {
	mu      sync.Mutex
	stages  []SubmissionStage
	onStage func(SubmissionStage)
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{}
}

// OnStage registers a hook invoked as each stage is entered.
func (t *ProgressTracker) OnStage(fn func(SubmissionStage)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onStage = fn
}

func (t *ProgressTracker) enter(stage SubmissionStage) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.stages = append(t.stages, stage)
	hook := t.onStage
	t.mu.Unlock()

	if hook != nil {
		hook(stage)
	}
}

// Stages returns the stages entered so far, in order.
func (t *ProgressTracker) Stages() []SubmissionStage {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]SubmissionStage, len(t.stages))
	copy(out, t.stages)
	return out
}
