package wizard

import (
	"fmt"
	"sort"
)

// ComponentType identifies one of the fixed form components that can be
// placed on a dynamic wizard page. The set is closed: adding a component
// means extending this file and the users table schema.
type ComponentType string

const (
	ComponentAboutMe   ComponentType = "about_me"
	ComponentAddress   ComponentType = "address"
	ComponentBirthdate ComponentType = "birthdate"
)

// FieldKind tells the client which input widget to render.
type FieldKind string

const (
	FieldText     FieldKind = "text"
	FieldTextarea FieldKind = "textarea"
	FieldDate     FieldKind = "date"
)

// Field is one input owned by a component. Every field is required when its
// component is resolved for the submitted page.
type Field struct {
	Key             string    `json:"key"`
	Label           string    `json:"label"`
	Kind            FieldKind `json:"kind"`
	RequiredMessage string    `json:"required_message"`
}

// Component describes one placeable field group: its sub-fields, validation
// messages and the page it is assigned to out of the box.
type Component struct {
	Type        ComponentType `json:"type"`
	Label       string        `json:"label"`
	Description string        `json:"description"`
	DefaultPage int           `json:"default_page"`
	Fields      []Field       `json:"fields"`
}

var registry = []Component{
	{
		Type:        ComponentAboutMe,
		Label:       "About Me",
		Description: "Large text area for user biography",
		DefaultPage: 2,
		Fields: []Field{
			{Key: "about_me", Label: "About Me", Kind: FieldTextarea, RequiredMessage: "About me is required"},
		},
	},
	{
		Type:        ComponentAddress,
		Label:       "Address Information",
		Description: "Street address, city, state, and ZIP fields",
		DefaultPage: 2,
		Fields: []Field{
			{Key: "street_address", Label: "Street Address", Kind: FieldText, RequiredMessage: "Street address is required"},
			{Key: "city", Label: "City", Kind: FieldText, RequiredMessage: "City is required"},
			{Key: "state", Label: "State", Kind: FieldText, RequiredMessage: "State is required"},
			{Key: "zip", Label: "ZIP Code", Kind: FieldText, RequiredMessage: "ZIP code is required"},
		},
	},
	{
		Type:        ComponentBirthdate,
		Label:       "Birth Date",
		Description: "Date picker for birth date",
		DefaultPage: 3,
		Fields: []Field{
			{Key: "birthdate", Label: "Birthdate", Kind: FieldDate, RequiredMessage: "Birthdate is required"},
		},
	},
}

// Components returns the full registry in component-identifier order.
func Components() []Component {
	out := make([]Component, len(registry))
	copy(out, registry)
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Lookup returns the registry entry for a component type.
func Lookup(t ComponentType) (Component, bool) {
	for _, c := range registry {
		if c.Type == t {
			return c, true
		}
	}
	return Component{}, false
}

// ParseComponentType validates a raw component identifier from storage or a
// request against the closed set.
func ParseComponentType(s string) (ComponentType, error) {
	switch ComponentType(s) {
	case ComponentAboutMe, ComponentAddress, ComponentBirthdate:
		return ComponentType(s), nil
	}
	return "", fmt.Errorf("unknown component type %q", s)
}

// DynamicPages returns the ordered distinct page numbers the registry's
// components default to. The wizard's dynamic step range is derived from
// this rather than hardcoded.
func DynamicPages() []int {
	seen := map[int]bool{}
	var pages []int
	for _, c := range registry {
		if !seen[c.DefaultPage] {
			seen[c.DefaultPage] = true
			pages = append(pages, c.DefaultPage)
		}
	}
	sort.Ints(pages)
	return pages
}
