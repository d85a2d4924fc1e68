package radial

import (
	"fmt"
	"strings"

	"github.com/1siamBot/rts-command/engine/catalog"
	"github.com/1siamBot/rts-command/engine/tween"
)

// Hover grows the item and shows its unit in the info panel
func (m *Menu) Hover(i int) {
	it := m.item(i)
	if it == nil || !it.Visible || m.state == Cancelling || m.state == Closing {
		return
	}
	if it.Unit != nil {
		m.ShowInfo(it.Unit)
	}
	m.scaleTo(it, m.cfg.HoverScale, tween.OutBack)
}

// Unhover shrinks the item back and hides the panel after a short delay
func (m *Menu) Unhover(i int) {
	it := m.item(i)
	if it == nil || !it.Visible || m.state == Cancelling || m.state == Closing {
		return
	}
	m.ScheduleHideInfo()
	m.scaleTo(it, 1, tween.InBack)
}

func (m *Menu) scaleTo(it *Item, to float64, ease tween.Ease) {
	m.tw.Kill(it.hover)
	from := it.Scale
	it.hover = m.tw.Start(tween.Spec{
		Group:    m.session,
		Duration: m.cfg.HoverDuration,
		Ease:     ease,
		Step:     func(k float64) { it.Scale = from + (to-from)*k },
	})
}

// ShowInfo shows u in the info panel and cancels a pending hide
func (m *Menu) ShowInfo(u *catalog.UnitDef) {
	if u == nil {
		return
	}
	m.sched.Cancel(m.hideInfo)
	m.hideInfo = 0
	m.info = InfoPanel{Visible: true, Unit: u, Text: FormatInfo(u)}
}

// ScheduleHideInfo hides the panel after InfoHideDelay unless another hover
// arrives first
func (m *Menu) ScheduleHideInfo() {
	if !m.info.Visible {
		return
	}
	m.sched.Cancel(m.hideInfo)
	m.hideInfo = m.sched.After(m.cfg.InfoHideDelay, func() {
		m.hideInfo = 0
		m.info = InfoPanel{}
	})
}

func (m *Menu) hideInfoNow() {
	m.sched.Cancel(m.hideInfo)
	m.hideInfo = 0
	m.info = InfoPanel{}
}

// FormatInfo renders the info panel text for a unit
func FormatInfo(u *catalog.UnitDef) string {
	var sb strings.Builder
	sb.WriteString(u.Name)
	sb.WriteString("\n\nCost:\n")
	fmt.Fprintf(&sb, "- Metal: %.0f\n", u.Cost.Metal)
	fmt.Fprintf(&sb, "- Stone: %.0f\n", u.Cost.Stone)
	fmt.Fprintf(&sb, "- Wood: %.0f\n", u.Cost.Wood)
	fmt.Fprintf(&sb, "- Gold: %.0f\n", u.Cost.Gold)
	fmt.Fprintf(&sb, "- Food: %.0f", u.Cost.Food)
	if u.Description != "" {
		sb.WriteString("\n\n")
		sb.WriteString(u.Description)
	}
	return sb.String()
}
