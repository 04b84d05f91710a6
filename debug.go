package ripple

import (
	"fmt"
	"io"
	"os"
	"time"
)

// logger writes "[ripple]"-prefixed lines. Debug lines are dropped unless
// debug mode is on; warnings always print.
type logger struct {
	out   io.Writer
	debug bool
}

func newLogger(out io.Writer, debug bool) *logger {
	if out == nil {
		out = os.Stderr
	}
	return &logger{out: out, debug: debug}
}

func (l *logger) debugf(format string, args ...any) {
	if l == nil || !l.debug {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[ripple] "+format+"\n", args...)
}

func (l *logger) warnf(format string, args ...any) {
	if l == nil {
		return
	}
	_, _ = fmt.Fprintf(l.out, "[ripple] warning: "+format+"\n", args...)
}

// frameStats holds per-frame timings. Only populated in debug mode.
type frameStats struct {
	frame       uint64
	animateTime time.Duration
	renderTime  time.Duration
	planeCount  int
	drawnCount  int
}

// debugStatsInterval is how many frames pass between stats lines.
const debugStatsInterval = 120

// logStats prints timing and draw stats every debugStatsInterval frames.
func (l *logger) logStats(stats frameStats) {
	if !l.debug || stats.frame%debugStatsInterval != 0 {
		return
	}
	_, _ = fmt.Fprintf(l.out,
		"[ripple] frame %d | animate: %v | render: %v | planes: %d | drawn: %d\n",
		stats.frame, stats.animateTime, stats.renderTime, stats.planeCount, stats.drawnCount)
}
