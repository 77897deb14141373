package wizard

import (
	"time"

	"github.com/stepforge/onboarding-backend/internal/models"
)

// DateLayout is the wire format for birthdate values.
const DateLayout = "2006-01-02"

// Draft holds the in-progress field values for the dynamic pages. It is
// the wizard's working copy: values live here until the page that owns
// them validates and persists.
type Draft struct {
	AboutMe       string `json:"about_me"`
	StreetAddress string `json:"street_address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Birthdate     string `json:"birthdate"`
}

// Value returns the draft value for a registry field key.
func (d Draft) Value(key string) string {
	switch key {
	case "about_me":
		return d.AboutMe
	case "street_address":
		return d.StreetAddress
	case "city":
		return d.City
	case "state":
		return d.State
	case "zip":
		return d.Zip
	case "birthdate":
		return d.Birthdate
	}
	return ""
}

// DraftFromSubject rebuilds the working draft from a persisted record so a
// resumed session sees its previously saved values.
func DraftFromSubject(s *models.Subject) Draft {
	d := Draft{}
	if s.AboutMe != nil {
		d.AboutMe = *s.AboutMe
	}
	if s.StreetAddress != nil {
		d.StreetAddress = *s.StreetAddress
	}
	if s.City != nil {
		d.City = *s.City
	}
	if s.State != nil {
		d.State = *s.State
	}
	if s.Zip != nil {
		d.Zip = *s.Zip
	}
	if s.Birthdate != nil {
		d.Birthdate = s.Birthdate.Format(DateLayout)
	}
	return d
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
