package wizard

import "errors"

// StepIdentity is the fixed first step where the subject signs in or
// creates the account. It is a one-time gate: once passed, the wizard
// never navigates back to it.
const StepIdentity = 1

var ErrBackUnavailable = errors.New("cannot navigate back from this step")

// Machine drives the wizard flow: identity, then the dynamic pages in
// order, then completion. It is parameterized over the ordered dynamic
// page list so transitions are not tied to literal page numbers.
type Machine struct {
	pages []int
}

// NewMachine builds a state machine over the given ordered dynamic pages.
func NewMachine(pages []int) Machine {
	return Machine{pages: pages}
}

// DefaultMachine derives the page list from the component registry.
func DefaultMachine() Machine {
	return NewMachine(DynamicPages())
}

// Pages returns the ordered dynamic page numbers.
func (m Machine) Pages() []int {
	out := make([]int, len(m.pages))
	copy(out, m.pages)
	return out
}

// FirstDynamicPage is the step entered after the identity gate.
func (m Machine) FirstDynamicPage() int {
	return m.pages[0]
}

// CompletionStep is the terminal step after the last dynamic page.
func (m Machine) CompletionStep() int {
	return m.pages[len(m.pages)-1] + 1
}

// LastFormStep is the highest step a subject works through before
// completion, used for "Step N of X" style progress display.
func (m Machine) LastFormStep() int {
	return m.pages[len(m.pages)-1]
}

// IsDynamicPage reports whether p is one of the configurable pages.
func (m Machine) IsDynamicPage(p int) bool {
	return containsPage(m.pages, p)
}

// NextStep returns the step entered after a successful submit of page p:
// the following dynamic page, or completion after the last one.
func (m Machine) NextStep(p int) int {
	for i, page := range m.pages {
		if page == p && i+1 < len(m.pages) {
			return m.pages[i+1]
		}
	}
	return m.CompletionStep()
}

// BackFrom returns the page reached by the explicit back action. Back is
// only available between dynamic pages; the first dynamic page cannot
// return to the identity gate.
func (m Machine) BackFrom(p int) (int, error) {
	for i, page := range m.pages {
		if page == p {
			if i == 0 {
				return 0, ErrBackUnavailable
			}
			return m.pages[i-1], nil
		}
	}
	return 0, ErrBackUnavailable
}

// ResumeStep maps persisted progress to the step a returning session
// re-enters at: completion when done, otherwise no earlier than the first
// dynamic page.
func (m Machine) ResumeStep(currentStep int, completed bool) int {
	if completed {
		return m.CompletionStep()
	}
	if currentStep < m.FirstDynamicPage() {
		return m.FirstDynamicPage()
	}
	if currentStep > m.CompletionStep() {
		return m.CompletionStep()
	}
	return currentStep
}
