package keymap

import (
	"github.com/dshills/wmcore/internal/event"
	"github.com/dshills/wmcore/internal/operator"
)

// ModalTranslate returns the event a modal operator sees for ev.
//
// When an item of km matches (and passes the key-map's modal item poll),
// the result is an EvtModalMap event carrying the item's value in
// ModalValue, with PrevType/PrevValue set to the matched type and value.
// A double click that matches nothing is retried as a press. Modal
// operators never see DoubleClick: it is reported as Press.
//
// ev is not modified. A nil km only applies the double-click rewrite.
func ModalTranslate(km *Keymap, op *operator.Operator, ev *event.Event, prefs MatchPrefs) event.Event {
	out := *ev

	if km != nil {
		match := *ev
		it := modalLookup(km, op, &match, prefs)
		if it == nil && ev.Value == event.DoubleClick {
			match.Value = event.Press
			it = modalLookup(km, op, &match, prefs)
		}
		if it != nil {
			out.PrevType = match.Type
			out.PrevValue = match.Value
			if out.PrevValue == event.DoubleClick {
				out.PrevValue = event.Press
			}
			out.Type = event.EvtModalMap
			out.Value = event.ValueNothing
			out.ModalValue = it.PropValue
			return out
		}
	}

	if out.Value == event.DoubleClick {
		out.Value = event.Press
	}
	return out
}

func modalLookup(km *Keymap, op *operator.Operator, ev *event.Event, prefs MatchPrefs) *Item {
	for _, it := range km.Items {
		if !Match(it, ev, prefs) {
			continue
		}
		if km.PollModalItem == nil || km.PollModalItem(op, it.PropValue) {
			return it
		}
	}
	return nil
}
