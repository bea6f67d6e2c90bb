package progress

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Status constants reported by the course data store.
const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// ZeroPercentage is the percentage shown when no progress can be computed.
const ZeroPercentage = "0%"

// Record holds raw progress counters for one (user, course) pair.
// A nil *Record means the store has no progress for the pair.
type Record struct {
	Completed int
	Total     int
	Status    string
}

// Result is the normalized progress shown in reports.
type Result struct {
	Status     string
	Percentage string
}

// Compute turns a raw progress record into a status and a percentage string.
// PRE: rec may be nil
// POST: Percentage is "<n>%" with n >= 0 (n may exceed 100 when Completed > Total); Status is never empty
// INVARIANT: Percentage = floor(Completed*100/Total) when Total > 0, else "0%"
func Compute(rec *Record) Result {
	if rec == nil {
		return Result{Status: StatusNotStarted, Percentage: ZeroPercentage}
	}

	status := strings.TrimSpace(rec.Status)
	if status == "" {
		status = StatusNotStarted
	}

	if rec.Total <= 0 {
		return Result{Status: status, Percentage: ZeroPercentage}
	}

	completed := rec.Completed
	if completed < 0 {
		completed = 0
	}
	return Result{Status: status, Percentage: floorPercentage(completed, rec.Total)}
}

// floorPercentage renders floor(completed*100/total) without overflowing int.
// PRE: completed >= 0, total > 0
func floorPercentage(completed, total int) string {
	if completed <= math.MaxInt/100 {
		return FormatPercentage(completed * 100 / total)
	}
	pct := new(big.Int).Mul(big.NewInt(int64(completed)), big.NewInt(100))
	pct.Quo(pct, big.NewInt(int64(total)))
	return pct.String() + "%"
}

// FormatPercentage renders an integer percentage with its trailing sign.
func FormatPercentage(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// ParseCount reads a counter from loosely typed store data.
// Malformed, empty or negative values become 0.
func ParseCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
