package wizard

import (
	"fmt"
	"strings"
)

// Validate applies the required-field rules of exactly the given components
// to the draft. Fields owned by components not in the list are never
// checked, whatever their current values. The returned map is field key to
// message; an empty map means the page may be persisted.
func Validate(components []Component, d Draft) map[string]string {
	fieldErrors := make(map[string]string)
	for _, c := range components {
		for _, f := range c.Fields {
			value := strings.TrimSpace(d.Value(f.Key))
			if value == "" {
				fieldErrors[f.Key] = f.RequiredMessage
				continue
			}
			if f.Kind == FieldDate {
				if _, err := parseDate(value); err != nil {
					fieldErrors[f.Key] = fmt.Sprintf("%s must be a valid date (%s)", f.Label, DateLayout)
				}
			}
		}
	}
	return fieldErrors
}

// BuildUpdate assembles the column updates for a successful page submit:
// only the values owned by the resolved components, plus the step advance.
// current_step never regresses; resubmitting an earlier page after going
// back rewrites the field values but leaves the step where it was.
func BuildUpdate(components []Component, d Draft, page int, currentStep int) map[string]interface{} {
	updates := make(map[string]interface{})
	for _, c := range components {
		switch c.Type {
		case ComponentAboutMe:
			updates["about_me"] = strings.TrimSpace(d.AboutMe)
		case ComponentAddress:
			updates["street_address"] = strings.TrimSpace(d.StreetAddress)
			updates["city"] = strings.TrimSpace(d.City)
			updates["state"] = strings.TrimSpace(d.State)
			updates["zip"] = strings.TrimSpace(d.Zip)
		case ComponentBirthdate:
			if t, err := parseDate(strings.TrimSpace(d.Birthdate)); err == nil {
				updates["birthdate"] = t
			}
		}
	}
	if page > currentStep {
		updates["current_step"] = page
	}
	return updates
}
