package wizard

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidPage = errors.New("page number is not a dynamic wizard page")

// EmptyPageError reports a proposed configuration that would leave one of
// the dynamic pages without any component.
type EmptyPageError struct {
	Page int
}

func (e *EmptyPageError) Error() string {
	return fmt.Sprintf("page %d must have at least one component", e.Page)
}

// Assignment pairs a component with the page it renders on.
type Assignment struct {
	Component ComponentType `json:"component_type"`
	Page      int           `json:"page_number"`
}

// ConfigSet is an in-memory component-to-page mapping being staged for a
// commit. It is a plain value: nothing is persisted until the caller hands
// the validated set to the configuration store.
type ConfigSet map[ComponentType]int

// DefaultConfig returns the seeded default mapping from the registry.
func DefaultConfig() ConfigSet {
	set := make(ConfigSet, len(registry))
	for _, c := range registry {
		set[c.Type] = c.DefaultPage
	}
	return set
}

// SetPage stages a component onto a page. Fails if the component is not in
// the registry or the page is not one of the dynamic pages.
func (s ConfigSet) SetPage(t ComponentType, page int) error {
	if _, ok := Lookup(t); !ok {
		return fmt.Errorf("unknown component type %q", t)
	}
	if !containsPage(DynamicPages(), page) {
		return fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	s[t] = page
	return nil
}

// Validate checks the full proposed set before any write: every registered
// component must be assigned exactly once, and every dynamic page must keep
// at least one component.
func (s ConfigSet) Validate() error {
	for _, c := range registry {
		page, ok := s[c.Type]
		if !ok {
			return fmt.Errorf("component %q is not assigned to any page", c.Type)
		}
		if !containsPage(DynamicPages(), page) {
			return fmt.Errorf("%w: %d", ErrInvalidPage, page)
		}
	}
	for t := range s {
		if _, ok := Lookup(t); !ok {
			return fmt.Errorf("unknown component type %q", t)
		}
	}
	for _, page := range DynamicPages() {
		empty := true
		for _, assigned := range s {
			if assigned == page {
				empty = false
				break
			}
		}
		if empty {
			return &EmptyPageError{Page: page}
		}
	}
	return nil
}

// Sorted returns the set as assignments in component-identifier order for
// deterministic listing and rendering.
func (s ConfigSet) Sorted() []Assignment {
	out := make([]Assignment, 0, len(s))
	for t, page := range s {
		out = append(out, Assignment{Component: t, Page: page})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Component < out[j].Component })
	return out
}

func containsPage(pages []int, page int) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}
