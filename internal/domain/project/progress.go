package project

// ProgressTier is the qualitative band a completion percentage falls into.
type ProgressTier string

const (
	TierComplete ProgressTier = "complete"
	TierMid      ProgressTier = "mid"
	TierLow      ProgressTier = "low"
)

// CompletedCount returns the number of tasks whose status is completed.
func CompletedCount(tasks []Task) int {
	var n int
	for i := range tasks {
		if tasks[i].IsCompleted() {
			n++
		}
	}
	return n
}

// PercentComplete returns the share of completed tasks as an integer
// percentage in [0,100], rounded half up. An empty list yields 0.
func PercentComplete(tasks []Task) int {
	return Percent(CompletedCount(tasks), len(tasks))
}

// Percent returns round(100*done/total) with halves rounded up.
// A non-positive total yields 0 instead of an undefined result.
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	// floor(100*done/total + 1/2) without leaving integer arithmetic.
	return (200*done + total) / (2 * total)
}

// Tier maps a percentage to its display tier: 100 is complete, above 50 is
// mid, anything else is low.
func Tier(percent int) ProgressTier {
	switch {
	case percent >= 100:
		return TierComplete
	case percent > 50:
		return TierMid
	default:
		return TierLow
	}
}
