package pin

import (
	"strconv"
	"time"

	"github.com/trezcool/letscatchup/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var Roles = []Role{
	{Name: "Student", Value: RoleStudent},
	{Name: "Teacher", Value: RoleTeacher},
}

// Pin is one alumnus's map entry.
type Pin struct {
	ID         int     `json:"id"`
	FullName   string  `json:"full_name"`
	SchoolName string  `json:"school_name"`
	City       string  `json:"city"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`

	BatchYear    int    `json:"batch_year,omitempty"`
	Profession   string `json:"profession,omitempty"`
	Company      string `json:"company,omitempty"`
	Role         string `json:"role"`
	ContactEmail string `json:"contact_email,omitempty"`
	MobileNumber string `json:"mobile_number,omitempty"` // digits only
	LinkedinURL  string `json:"linkedin_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`

	// EditSecret is the capability token authorizing later edits.
	// It is generated once at creation and never serialized with the pin.
	EditSecret string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

func (p Pin) Point() core.Point {
	return core.Point{Lat: p.Latitude, Lon: p.Longitude}
}

// WhatsAppLink builds the messaging deep link from the digits-only mobile number.
func (p Pin) WhatsAppLink() string {
	if p.MobileNumber == "" {
		return ""
	}
	return "https://wa.me/" + p.MobileNumber
}

func (p Pin) batchYearString() string {
	if p.BatchYear == 0 {
		return ""
	}
	return strconv.Itoa(p.BatchYear)
}

// NewPin contains information needed to create a new Pin.
type NewPin struct {
	FullName   string  `json:"full_name" validate:"required"`
	SchoolName string  `json:"school_name" validate:"required"`
	City       string  `json:"city" validate:"required"`
	// absent and zero coordinates are both rejected; a pin must be placed
	// on the map before it can be created
	Latitude  float64 `json:"latitude" validate:"required,latitude"`
	Longitude float64 `json:"longitude" validate:"required,longitude"`

	BatchYear    int    `json:"batch_year" validate:"omitempty,batchyear_"`
	Profession   string `json:"profession"`
	Company      string `json:"company"`
	Role         string `json:"role" validate:"omitempty,oneof=student teacher"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,digits_"`
	LinkedinURL  string `json:"linkedin_url" validate:"omitempty,url"`
	InstagramURL string `json:"instagram_url" validate:"omitempty,url"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
}

func (np *NewPin) Validate() error {
	np.FullName = core.CleanString(np.FullName)
	np.SchoolName = core.CleanString(np.SchoolName)
	np.City = core.CleanString(np.City)
	np.Profession = core.CleanString(np.Profession)
	np.Company = core.CleanString(np.Company)
	np.Role = core.CleanString(np.Role, true /* lower */)
	if np.Role == "" {
		np.Role = RoleStudent
	}
	np.ContactEmail = core.CleanString(np.ContactEmail, true /* lower */)
	np.MobileNumber = core.CleanString(np.MobileNumber)
	return core.Validate.Struct(np)
}

// UpdatePin defines what information may be provided to modify an existing Pin.
// Empty fields keep their original values; coordinates may be relocated.
type UpdatePin struct {
	FullName  string   `json:"full_name"`
	City      string   `json:"city"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`

	BatchYear    int    `json:"batch_year" validate:"omitempty,batchyear_"`
	Profession   string `json:"profession"`
	Company      string `json:"company"`
	Role         string `json:"role" validate:"omitempty,oneof=student teacher"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	MobileNumber string `json:"mobile_number" validate:"omitempty,digits_"`
	LinkedinURL  string `json:"linkedin_url" validate:"omitempty,url"`
	InstagramURL string `json:"instagram_url" validate:"omitempty,url"`
	AvatarURL    string `json:"avatar_url" validate:"omitempty,url"`
}

func (up *UpdatePin) Validate(origPin Pin) error {
	if name := core.CleanString(up.FullName); name != "" {
		up.FullName = name
	} else {
		up.FullName = origPin.FullName
	}

	if city := core.CleanString(up.City); city != "" {
		up.City = city
	} else {
		up.City = origPin.City
	}

	if up.Latitude == nil {
		up.Latitude = &origPin.Latitude
	}
	if up.Longitude == nil {
		up.Longitude = &origPin.Longitude
	}

	up.Profession = core.CleanString(up.Profession)
	up.Company = core.CleanString(up.Company)
	up.Role = core.CleanString(up.Role, true /* lower */)
	if up.Role == "" {
		up.Role = origPin.Role
	}
	up.ContactEmail = core.CleanString(up.ContactEmail, true /* lower */)
	up.MobileNumber = core.CleanString(up.MobileNumber)

	return core.Validate.Struct(up)
}

// QueryFilter is the set of active filter criteria. All active criteria are
// combined with a logical AND; a non-empty School is mandatory.
type QueryFilter struct {
	School     string `query:"school"`
	City       string `query:"city"`
	BatchYear  string `query:"batch_year"`
	Profession string `query:"profession"`
	Company    string `query:"company"`
	Role       string `query:"role"`

	// CityLat/CityLon carry the resolved point of a committed city search;
	// when both are set, the city text criterion is superseded.
	CityLat *float64 `query:"city_lat"`
	CityLon *float64 `query:"city_lon"`

	// MeLat/MeLon carry the device position for "near me" mode.
	MeLat *float64 `query:"me_lat"`
	MeLon *float64 `query:"me_lon"`
}

func (qf *QueryFilter) Clean() {
	qf.School = core.CleanString(qf.School)
	qf.City = core.CleanString(qf.City)
	qf.BatchYear = core.CleanString(qf.BatchYear)
	qf.Profession = core.CleanString(qf.Profession)
	qf.Company = core.CleanString(qf.Company)
	qf.Role = core.CleanString(qf.Role, true /* lower */)
}

// ResolvedPoint returns the committed search location, if any.
func (qf *QueryFilter) ResolvedPoint() *core.Point {
	if qf.CityLat == nil || qf.CityLon == nil {
		return nil
	}
	return &core.Point{Lat: *qf.CityLat, Lon: *qf.CityLon}
}

// NearMePoint returns the device position, if "near me" is active.
func (qf *QueryFilter) NearMePoint() *core.Point {
	if qf.MeLat == nil || qf.MeLon == nil {
		return nil
	}
	return &core.Point{Lat: *qf.MeLat, Lon: *qf.MeLon}
}
