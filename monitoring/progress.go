package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/datagen/gen/hooking"
)

// A ProgressBar is a tracker of the progress
type ProgressBar struct {
	sync.Mutex
	ID         string
	Name       string
	StartTime  time.Time
	Total      uint64
	Finished   uint64
	InProgress uint64
}

type progressBarRsp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (b *ProgressBar) snapshot() progressBarRsp {
	b.Lock()
	defer b.Unlock()

	return progressBarRsp{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// ProgressHook advances a progress bar by one for each generated product.
// Reset starts the bar over.
type ProgressHook struct {
	bar *ProgressBar
}

// NewProgressHook creates a hook that drives bar.
func NewProgressHook(bar *ProgressBar) *ProgressHook {
	return &ProgressHook{bar: bar}
}

// Func updates the bar.
func (h *ProgressHook) Func(ctx hooking.HookCtx) {
	switch ctx.Pos {
	case hooking.HookPosGenerate:
		h.bar.IncrementFinished(1)
	case hooking.HookPosReset:
		h.bar.Lock()
		h.bar.Finished = 0
		h.bar.Unlock()
	}
}
