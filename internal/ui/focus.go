package ui

// FocusManager tracks and rotates focus across the inputs of a form.
// Order may change while the form is open (env rows come and go); SetOrder
// keeps the current focus when it survives the change.
type FocusManager struct {
	Current  string   // ID of the focused input
	Order    []string // Tab order
	OnChange func(from, to string)
}

// Next advances focus to the next input in order, wrapping at the end.
func (f *FocusManager) Next() string {
	return f.step(1)
}

// Prev moves focus to the previous input in order, wrapping at the start.
func (f *FocusManager) Prev() string {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) string {
	if len(f.Order) == 0 {
		return ""
	}
	idx := f.Index()
	var next int
	switch {
	case idx < 0 && delta > 0:
		next = 0
	case idx < 0:
		next = len(f.Order) - 1
	default:
		next = (idx + delta + len(f.Order)) % len(f.Order)
	}
	f.set(f.Order[next])
	return f.Current
}

// Index returns the position of Current in Order, or -1.
func (f *FocusManager) Index() int {
	for i, id := range f.Order {
		if id == f.Current {
			return i
		}
	}
	return -1
}

// SetFocus sets focus to the given ID.
// Returns true if the ID exists in order.
func (f *FocusManager) SetFocus(id string) bool {
	for _, o := range f.Order {
		if o == id {
			f.set(id)
			return true
		}
	}
	return false
}

// SetOrder replaces the tab order. If Current is no longer present, focus
// moves to the input now at the position Current used to occupy (clamped),
// so removing a row lands on its neighbour.
func (f *FocusManager) SetOrder(order []string) {
	oldIdx := f.Index()
	f.Order = order
	if len(order) == 0 {
		f.set("")
		return
	}
	if f.Index() >= 0 {
		return
	}
	if oldIdx < 0 {
		oldIdx = 0
	}
	if oldIdx >= len(order) {
		oldIdx = len(order) - 1
	}
	f.set(order[oldIdx])
}

func (f *FocusManager) set(id string) {
	from := f.Current
	f.Current = id
	if f.OnChange != nil && from != id {
		f.OnChange(from, id)
	}
}
