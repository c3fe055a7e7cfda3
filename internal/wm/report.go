package wm

import (
	"time"

	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/notifier"
	"github.com/dshills/wmcore/internal/operator"
	"github.com/dshills/wmcore/internal/report"
)

const bannerStep = 50 * time.Millisecond

// Banner returns the report currently shown in the banner.
func (m *Manager) Banner() (report.Report, bool) {
	if m.bannerTimer == nil {
		return report.Report{}, false
	}
	items := m.reports.Items()
	for i := len(items) - 1; i >= 0; i-- {
		if sev := items[i].Severity; sev != report.Debug && sev != report.Operator {
			return items[i], true
		}
	}
	return report.Report{}, false
}

// addReports moves an operator's reports to the global list and shows the
// newest one in the banner. Held lists stay with the operator.
func (m *Manager) addReports(reports *report.List) {
	if reports == nil || reports.Empty() || reports.Flag&report.FlagHold != 0 {
		return
	}
	reports.MoveTo(m.reports)
	m.showBanner()
}

// showBanner restarts the banner expiry timer.
func (m *Manager) showBanner() {
	if m.bannerTimer != nil {
		m.RemoveTimer(nil, m.bannerTimer)
	}
	m.bannerTimer = m.addTimer(nil, event.TimerReport, bannerStep)
}

func (m *Manager) updateBanner(t *Timer, now time.Time) {
	if t != m.bannerTimer {
		m.RemoveTimer(nil, t)
		return
	}
	if now.Sub(t.start) < m.cfg.ReportBannerTime {
		return
	}
	m.RemoveTimer(nil, t)
	m.AddNotifier(nil, notifier.NCSpace|notifier.NDSpaceInfoReport, nil)
}

// operatorReports shows what an operator left behind once it returned.
func (m *Manager) operatorReports(ctx *wmContext, op *operator.Operator, r operator.Result) {
	if r.Has(operator.Finished) {
		m.opLog.Info("finished %s", op.String())
		if !op.CallerOwnsReports() {
			op.Reports.Print(m.opLog, report.Debug)
		}
		if op.Type.Is(operator.FlagRegister) {
			m.reports.Add(report.Operator, op.String())
		}
	} else if r.Has(operator.Cancelled) && !op.Reports.Empty() {
		ctx.AddNotifier(notifier.NCSpace|notifier.NDSpaceInfoReport, nil)
	}
	if !op.CallerOwnsReports() {
		m.addReports(op.Reports)
	}
}
