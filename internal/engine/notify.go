package engine

// Notifier fans out state-change signals at two granularities, so a
// caller can refresh the life totals on every tap and rebuild the change
// log only when it actually grows. Callbacks run synchronously on the
// caller's event queue.
type Notifier struct {
	lifeFns    []func()
	historyFns []func()
}

// OnLifeChanged registers a callback for life-total and badge changes.
func (n *Notifier) OnLifeChanged(fn func()) {
	if fn != nil {
		n.lifeFns = append(n.lifeFns, fn)
	}
}

// OnHistoryChanged registers a callback for change-log changes.
func (n *Notifier) OnHistoryChanged(fn func()) {
	if fn != nil {
		n.historyFns = append(n.historyFns, fn)
	}
}

func (n *Notifier) lifeChanged() {
	for _, fn := range n.lifeFns {
		fn()
	}
}

func (n *Notifier) historyChanged() {
	for _, fn := range n.historyFns {
		fn()
	}
}
