// Package wizard models the pin registration flow as an explicit,
// serializable state machine with pure reducer-style transitions. Callers
// hold a Wizard value and replace it with the value each transition returns;
// nothing is persisted before Confirm.
package wizard

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/pin"
)

type State string

const (
	StateClosed          State = "closed"
	StateProfileForm     State = "profile_form"
	StateLocationConfirm State = "location_confirm"
)

var ErrInvalidTransition = errors.New("invalid wizard transition")

// Resolver turns the form's city text into map coordinates.
type Resolver interface {
	ResolveCity(city, postalCode string) (core.Point, error)
}

// Committer persists the confirmed pin.
type Committer interface {
	Create(np pin.NewPin) (pin.Pin, string, error)
	Update(id int, secret string, up pin.UpdatePin) (pin.Pin, error)
}

// Form holds the profile fields being edited.
type Form struct {
	FullName   string `json:"full_name"`
	SchoolName string `json:"school_name"`
	City       string `json:"city"`
	// PostalCode is collected for new pins only, to improve geocoding
	// accuracy; it is not stored on the pin.
	PostalCode string `json:"postal_code"`

	BatchYear    int    `json:"batch_year"`
	Profession   string `json:"profession"`
	Company      string `json:"company"`
	Role         string `json:"role"`
	ContactEmail string `json:"contact_email"`
	MobileNumber string `json:"mobile_number"`
	LinkedinURL  string `json:"linkedin_url"`
	InstagramURL string `json:"instagram_url"`
	AvatarURL    string `json:"avatar_url"`
}

// Wizard is the full state of one registration flow.
type Wizard struct {
	State State `json:"state"`
	Form  Form  `json:"form"`

	// EditPinID is the edit target; zero means a new pin is being created.
	EditPinID  int    `json:"edit_pin_id,omitempty"`
	editSecret string // never serialized

	// Point is the candidate pin location shown in LocationConfirm.
	Point *core.Point `json:"point,omitempty"`
}

func New() Wizard {
	return Wizard{State: StateClosed}
}

func (w Wizard) transitionErr(action string) error {
	return errors.Wrap(ErrInvalidTransition, fmt.Sprintf("%s in state %q", action, w.State))
}

// Open starts the flow for a brand-new pin.
func (w Wizard) Open(schoolName string) (Wizard, error) {
	if w.State != StateClosed {
		return w, w.transitionErr("open")
	}
	return Wizard{
		State: StateProfileForm,
		Form:  Form{SchoolName: schoolName},
	}, nil
}

// OpenEdit starts the flow for an owned pin, pre-populating the form and
// retaining the pin's existing location.
func (w Wizard) OpenEdit(p pin.Pin, editSecret string) (Wizard, error) {
	if w.State != StateClosed {
		return w, w.transitionErr("open edit")
	}
	pt := p.Point()
	return Wizard{
		State: StateProfileForm,
		Form: Form{
			FullName:     p.FullName,
			SchoolName:   p.SchoolName,
			City:         p.City,
			BatchYear:    p.BatchYear,
			Profession:   p.Profession,
			Company:      p.Company,
			Role:         p.Role,
			ContactEmail: p.ContactEmail,
			MobileNumber: p.MobileNumber,
			LinkedinURL:  p.LinkedinURL,
			InstagramURL: p.InstagramURL,
			AvatarURL:    p.AvatarURL,
		},
		EditPinID:  p.ID,
		editSecret: editSecret,
		Point:      &pt,
	}, nil
}

// SubmitProfile validates the required fields and pre-places the candidate
// pin at the geocoded city location. In edit mode a failed or skipped
// geocode retains the pin's existing point; for a new pin the user places
// the point manually in LocationConfirm.
func (w Wizard) SubmitProfile(f Form, resolve Resolver) (Wizard, error) {
	if w.State != StateProfileForm {
		return w, w.transitionErr("submit profile")
	}

	f.FullName = core.CleanString(f.FullName)
	f.City = core.CleanString(f.City)
	f.PostalCode = core.CleanString(f.PostalCode)
	if f.SchoolName == "" {
		f.SchoolName = w.Form.SchoolName
	}

	var fldErrs []core.FieldError
	if f.FullName == "" {
		fldErrs = append(fldErrs, core.FieldError{Field: "full_name", Error: "this field is required"})
	}
	if f.City == "" {
		fldErrs = append(fldErrs, core.FieldError{Field: "city", Error: "this field is required"})
	}
	if w.EditPinID == 0 && f.PostalCode == "" {
		fldErrs = append(fldErrs, core.FieldError{Field: "postal_code", Error: "this field is required"})
	}
	if fldErrs != nil {
		return w, core.NewValidationError(errors.New("missing required fields"), fldErrs...)
	}

	next := w
	next.State = StateLocationConfirm
	next.Form = f

	if resolve != nil {
		if pt, err := resolve.ResolveCity(f.City, f.PostalCode); err == nil {
			next.Point = &pt
		}
		// resolution failure is non-fatal: edit mode keeps the existing
		// point, a new pin proceeds without one
	}
	return next, nil
}

// Reposition moves the candidate pin; the user may do this any number of
// times before committing.
func (w Wizard) Reposition(pt core.Point) (Wizard, error) {
	if w.State != StateLocationConfirm {
		return w, w.transitionErr("reposition")
	}
	next := w
	next.Point = &pt
	return next, nil
}

// Back returns to the profile form, discarding the placed point.
func (w Wizard) Back() (Wizard, error) {
	if w.State != StateLocationConfirm {
		return w, w.transitionErr("back")
	}
	next := w
	next.State = StateProfileForm
	next.Point = nil
	return next, nil
}

// Cancel abandons the flow from any state; no partial pin is ever persisted.
func (w Wizard) Cancel() Wizard {
	return New()
}

// Confirm persists the pin and closes the wizard. For a new pin the freshly
// generated edit secret is returned; for an edit the stored secret must
// match or the commit fails with pin.ErrEditForbidden.
func (w Wizard) Confirm(committer Committer) (pin.Pin, string, Wizard, error) {
	if w.State != StateLocationConfirm {
		return pin.Pin{}, "", w, w.transitionErr("confirm")
	}
	if w.Point == nil {
		return pin.Pin{}, "", w, core.NewValidationError(errors.New("location missing"),
			core.FieldError{Field: "point", Error: "place the pin on the map first"})
	}

	if w.EditPinID != 0 {
		up := pin.UpdatePin{
			FullName:     w.Form.FullName,
			City:         w.Form.City,
			Latitude:     &w.Point.Lat,
			Longitude:    &w.Point.Lon,
			BatchYear:    w.Form.BatchYear,
			Profession:   w.Form.Profession,
			Company:      w.Form.Company,
			Role:         w.Form.Role,
			ContactEmail: w.Form.ContactEmail,
			MobileNumber: w.Form.MobileNumber,
			LinkedinURL:  w.Form.LinkedinURL,
			InstagramURL: w.Form.InstagramURL,
			AvatarURL:    w.Form.AvatarURL,
		}
		p, err := committer.Update(w.EditPinID, w.editSecret, up)
		if err != nil {
			return pin.Pin{}, "", w, err
		}
		return p, "", New(), nil
	}

	np := pin.NewPin{
		FullName:     w.Form.FullName,
		SchoolName:   w.Form.SchoolName,
		City:         w.Form.City,
		Latitude:     w.Point.Lat,
		Longitude:    w.Point.Lon,
		BatchYear:    w.Form.BatchYear,
		Profession:   w.Form.Profession,
		Company:      w.Form.Company,
		Role:         w.Form.Role,
		ContactEmail: w.Form.ContactEmail,
		MobileNumber: w.Form.MobileNumber,
		LinkedinURL:  w.Form.LinkedinURL,
		InstagramURL: w.Form.InstagramURL,
		AvatarURL:    w.Form.AvatarURL,
	}
	if err := np.Validate(); err != nil {
		return pin.Pin{}, "", w, err
	}
	p, secret, err := committer.Create(np)
	if err != nil {
		return pin.Pin{}, "", w, err
	}
	return p, secret, New(), nil
}
