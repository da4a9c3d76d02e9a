package observability

import (
	"sync"
	"sync/atomic"
)

type StatsSnapshot struct {
	PastesFetched     uint64            `json:"pastes_fetched"`
	PastesMatched     uint64            `json:"pastes_matched"`
	ScanRuns          uint64            `json:"scan_runs"`
	ErrorsTotal       uint64            `json:"errors_total"`
	ScanSecondsAvg    float64           `json:"scan_seconds_avg"`
	ErrorsByType      map[string]uint64 `json:"errors_by_type,omitempty"`
	ErrorsByComponent map[string]uint64 `json:"errors_by_component,omitempty"`
}

var (
	pastesFetched uint64
	pastesMatched uint64
	errorsTotal   uint64

	scanRuns  uint64
	scanNanos uint64

	statsMu           sync.Mutex
	errorsByType      = map[string]uint64{}
	errorsByComponent = map[string]uint64{}
)

func IncPastesFetched() {
	atomic.AddUint64(&pastesFetched, 1)
}

func AddPastesMatched(n uint64) {
	atomic.AddUint64(&pastesMatched, n)
}

func ObserveScanRun(seconds float64) {
	atomic.AddUint64(&scanRuns, 1)
	if seconds > 0 {
		atomic.AddUint64(&scanNanos, uint64(seconds*1e9))
	}
}

func IncError(errType, component string) {
	if errType == "" {
		errType = "unknown"
	}
	if component == "" {
		component = "unknown"
	}
	atomic.AddUint64(&errorsTotal, 1)
	statsMu.Lock()
	errorsByType[errType]++
	errorsByComponent[component]++
	statsMu.Unlock()
}

func Snapshot() StatsSnapshot {
	statsMu.Lock()
	errorsTypeCopy := copyMap(errorsByType)
	errorsComponentCopy := copyMap(errorsByComponent)
	statsMu.Unlock()

	runs := atomic.LoadUint64(&scanRuns)
	avg := 0.0
	if runs > 0 {
		avg = float64(atomic.LoadUint64(&scanNanos)) / float64(runs) / 1e9
	}

	return StatsSnapshot{
		PastesFetched:     atomic.LoadUint64(&pastesFetched),
		PastesMatched:     atomic.LoadUint64(&pastesMatched),
		ScanRuns:          runs,
		ErrorsTotal:       atomic.LoadUint64(&errorsTotal),
		ScanSecondsAvg:    avg,
		ErrorsByType:      errorsTypeCopy,
		ErrorsByComponent: errorsComponentCopy,
	}
}

func copyMap(src map[string]uint64) map[string]uint64 {
	if len(src) == 0 {
		return map[string]uint64{}
	}
	out := make(map[string]uint64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
