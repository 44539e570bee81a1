package core

import (
	"time"
)

// StageTimer records how long each named stage of a run took.
type StageTimer struct {
	now    func() time.Time
	last   time.Time
	stages []StageTime
}

// StageTime is the elapsed wall time of one stage.
type StageTime struct {
	Name    string
	Elapsed time.Duration
}

// NewStageTimer starts timing from the current instant.
func NewStageTimer() *StageTimer {
	t := &StageTimer{now: time.Now}
	t.last = t.now()
	return t
}

// Mark closes the current stage under name and starts the next one.
func (t *StageTimer) Mark(name string) time.Duration {
	now := t.now()
	d := now.Sub(t.last)
	t.last = now
	t.stages = append(t.stages, StageTime{Name: name, Elapsed: d})
	Logger().Debug("stage done", "stage", name, "elapsed", d)
	return d
}

// Stages returns the recorded stages in order.
func (t *StageTimer) Stages() []StageTime {
	return append([]StageTime(nil), t.stages...)
}

// Total sums every recorded stage.
func (t *StageTimer) Total() time.Duration {
	var sum time.Duration
	for _, s := range t.stages {
		sum += s.Elapsed
	}
	return sum
}
