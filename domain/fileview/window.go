package fileview

// Window is an in-memory Viewport.
type Window struct {
	height    float64
	scrollTop float64
	scrolls   int
}

// NewWindow creates a Window of the given height scrolled to the top.
func NewWindow(height float64) *Window {
	return &Window{height: height}
}

// Height implements Viewport.
func (w *Window) Height() float64 { return w.height }

// ScrollTop implements Viewport.
func (w *Window) ScrollTop() float64 { return w.scrollTop }

// ScrollTo implements Viewport. Negative offsets clamp to the top.
func (w *Window) ScrollTo(top float64) {
	if top < 0 {
		top = 0
	}
	w.scrollTop = top
	w.scrolls++
}

// Scrolls returns how many times ScrollTo was called.
func (w *Window) Scrolls() int { return w.scrolls }

// Offset returns the position of a document offset relative to the top of
// the window.
func (w *Window) Offset(documentTop float64) float64 {
	return documentTop - w.scrollTop
}

var _ Viewport = (*Window)(nil)

// MemoryHistory is an in-memory History that counts navigation entries.
type MemoryHistory struct {
	fragment string
	entries  int
}

// replacingHistory adds in-place replacement to MemoryHistory.
type replacingHistory struct {
	*MemoryHistory
}

// Replace implements Replacer.
func (h replacingHistory) Replace(fragment string) {
	h.MemoryHistory.fragment = fragment
}

// NewMemoryHistory creates a history positioned at fragment. When
// replaceSupported is false the returned History does not implement
// Replacer, modelling runtimes without in-place replacement.
func NewMemoryHistory(fragment string, replaceSupported bool) History {
	h := &MemoryHistory{fragment: fragment, entries: 1}
	if replaceSupported {
		return replacingHistory{MemoryHistory: h}
	}
	return h
}

// Fragment implements History.
func (h *MemoryHistory) Fragment() string { return h.fragment }

// Assign implements History.
func (h *MemoryHistory) Assign(fragment string) {
	h.fragment = fragment
	h.entries++
}

// Entries returns the number of navigation entries, including the initial one.
func (h *MemoryHistory) Entries() int { return h.entries }

// Entries returns the number of navigation entries recorded by a History
// created with NewMemoryHistory, or zero for other implementations.
func Entries(h History) int {
	switch v := h.(type) {
	case *MemoryHistory:
		return v.Entries()
	case replacingHistory:
		return v.Entries()
	default:
		return 0
	}
}
