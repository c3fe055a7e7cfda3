// Package report collects user-visible operator messages.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/wmcore/internal/logging"
)

// Severity classifies a report.
type Severity uint8

const (
	Debug Severity = iota
	Info
	// Operator reports carry the string form of a finished operator.
	Operator
	Property
	Warning
	Error
	ErrorInvalidInput
	ErrorInvalidContext
	ErrorOutOfMemory
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Operator:
		return "Operator"
	case Property:
		return "Property"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case ErrorInvalidInput:
		return "Invalid Input Error"
	case ErrorInvalidContext:
		return "Invalid Context Error"
	case ErrorOutOfMemory:
		return "Out Of Memory Error"
	default:
		return "Unknown"
	}
}

// IsError reports whether s is one of the error severities.
func (s Severity) IsError() bool {
	return s >= Error
}

// Report is a single message.
type Report struct {
	Severity Severity
	Message  string
	Time     time.Time
}

// String formats the report as "Severity: message".
func (r Report) String() string {
	return r.Severity.String() + ": " + r.Message
}

// Flag controls list ownership.
type Flag uint8

const (
	// FlagFree marks a list owned by its operator for the operator's whole
	// lifetime, e.g. while running modal or sitting in the redo register.
	FlagFree Flag = 1 << iota
	// FlagHold keeps reports on the operator instead of moving them to the
	// global list.
	FlagHold
)

// List is an ordered report list. It is only touched from the main thread.
type List struct {
	Flag Flag
	// PrintLevel is the lowest severity Print writes.
	PrintLevel Severity

	items []Report
	now   func() time.Time
}

// NewList creates an empty list.
func NewList() *List {
	return &List{PrintLevel: Info, now: time.Now}
}

// Add appends a report.
func (l *List) Add(sev Severity, msg string) {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	l.items = append(l.items, Report{Severity: sev, Message: msg, Time: now()})
}

// Addf appends a formatted report.
func (l *List) Addf(sev Severity, format string, args ...any) {
	l.Add(sev, fmt.Sprintf(format, args...))
}

// Len returns the number of reports.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Empty reports whether the list holds no reports.
func (l *List) Empty() bool {
	return l.Len() == 0
}

// Items returns a copy of the reports in order.
func (l *List) Items() []Report {
	out := make([]Report, len(l.items))
	copy(out, l.items)
	return out
}

// Last returns the most recent report.
func (l *List) Last() (Report, bool) {
	if l.Len() == 0 {
		return Report{}, false
	}
	return l.items[len(l.items)-1], true
}

// HasError reports whether any report has an error severity.
func (l *List) HasError() bool {
	for _, r := range l.items {
		if r.Severity.IsError() {
			return true
		}
	}
	return false
}

// Clear removes all reports.
func (l *List) Clear() {
	l.items = nil
}

// MoveTo appends every report to dst and empties l.
func (l *List) MoveTo(dst *List) {
	if l == nil || dst == nil || l == dst {
		return
	}
	dst.items = append(dst.items, l.items...)
	l.items = nil
}

// String joins all reports, one per line.
func (l *List) String() string {
	var b strings.Builder
	for i, r := range l.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.String())
	}
	return b.String()
}

// Print writes every report at or above minLevel to the logger.
func (l *List) Print(log *logging.Logger, minLevel Severity) {
	for _, r := range l.items {
		if r.Severity < minLevel {
			continue
		}
		switch {
		case r.Severity.IsError():
			log.Error("%s", r)
		case r.Severity == Warning:
			log.Warn("%s", r)
		case r.Severity == Debug:
			log.Debug("%s", r)
		default:
			log.Info("%s", r)
		}
	}
}
