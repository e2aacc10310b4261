package assignmentlist

// Phase is the presentation phase of a single assignment card.
type Phase int

const (
	// Collapsed shows only the summary line.
	Collapsed Phase = iota

	// ExpandedView shows the full card in read-only mode.
	ExpandedView

	// ExpandedEdit shows the full card with the progress slider live.
	ExpandedEdit
)

// sliderStep is how far one keypress moves the pending progress value.
const sliderStep = 5

// ItemState is the transient, non-authoritative UI state of one
// assignment card. It is owned by the list container's entry for that
// assignment and is reset according to the transition rules below; it
// is never persisted.
//
// The pending value staged while editing is only ever sent to the
// server through the explicit save transition.
type ItemState struct {
	phase   Phase
	pending float64
}

// Expanded reports whether the card body is visible.
func (s *ItemState) Expanded() bool {
	return s.phase != Collapsed
}

// Editing reports whether the slider is live.
func (s *ItemState) Editing() bool {
	return s.phase == ExpandedEdit
}

// Pending returns the staged slider value. Only meaningful while
// editing.
func (s *ItemState) Pending() float64 {
	return s.pending
}

// Toggle flips between collapsed and expanded. Collapsing while in
// edit mode discards the pending value; reopening shows the last
// saved progress.
func (s *ItemState) Toggle() {
	if s.Expanded() {
		s.phase = Collapsed
		s.pending = 0
		return
	}
	s.phase = ExpandedView
}

// StartEdit enters edit mode from the expanded view, capturing the
// current saved progress as the pending-edit baseline. It reports
// whether the transition applied.
func (s *ItemState) StartEdit(current float64) bool {
	if s.phase != ExpandedView {
		return false
	}
	s.phase = ExpandedEdit
	s.pending = current
	return true
}

// Adjust moves the pending value by delta, clamped to [0, 100]. It is
// a local-only change; no network request is involved.
func (s *ItemState) Adjust(delta float64) {
	if s.phase != ExpandedEdit {
		return
	}
	s.pending += delta
	if s.pending < 0 {
		s.pending = 0
	}
	if s.pending > 100 {
		s.pending = 100
	}
}

// Cancel leaves edit mode, discarding the pending value.
func (s *ItemState) Cancel() {
	if s.phase != ExpandedEdit {
		return
	}
	s.phase = ExpandedView
	s.pending = 0
}

// Saved leaves edit mode after the server accepted the pending value.
// Until then the card stays in edit mode, so a failed save keeps the
// staged value on screen.
func (s *ItemState) Saved() {
	if s.phase != ExpandedEdit {
		return
	}
	s.phase = ExpandedView
	s.pending = 0
}
