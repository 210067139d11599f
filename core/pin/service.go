package pin

import (
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound = errors.New("pin not found")
	// ErrEditForbidden signals that no stored pin matched both the id and the
	// presented edit secret. It is reported distinctly from ErrNotFound so the
	// caller understands the pin is not editable from this client.
	ErrEditForbidden = errors.New("pin is not editable with the provided edit secret")
)

type (
	Repository interface {
		CreatePin(p Pin) (Pin, error)
		QueryAllPins() ([]Pin, error)
		// QueryRecentPins returns at most `limit` pins, newest first.
		QueryRecentPins(limit int) ([]Pin, error)
		GetPinByID(id int) (Pin, error)
		// UpdatePin persists `p` only where an existing row matches both
		// p.ID and `secret`; zero affected rows yields ErrEditForbidden.
		UpdatePin(p Pin, secret string) (Pin, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create persists a new pin and returns it along with its freshly generated
// edit secret. The secret is not part of the pin's serialized form and is
// never retrievable again.
func (svc *Service) Create(np NewPin) (Pin, string, error) {
	secret, err := makeEditSecret()
	if err != nil {
		return Pin{}, "", err
	}

	now := time.Now().UTC()
	p := Pin{
		FullName:     np.FullName,
		SchoolName:   np.SchoolName,
		City:         np.City,
		Latitude:     np.Latitude,
		Longitude:    np.Longitude,
		BatchYear:    np.BatchYear,
		Profession:   np.Profession,
		Company:      np.Company,
		Role:         np.Role,
		ContactEmail: np.ContactEmail,
		MobileNumber: np.MobileNumber,
		LinkedinURL:  np.LinkedinURL,
		InstagramURL: np.InstagramURL,
		AvatarURL:    np.AvatarURL,
		EditSecret:   secret,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	p, err = svc.repo.CreatePin(p)
	if err != nil {
		return Pin{}, "", err
	}
	return p, secret, nil
}

func (svc *Service) QueryAll() ([]Pin, error) {
	return svc.repo.QueryAllPins()
}

func (svc *Service) Recent(limit int) ([]Pin, error) {
	return svc.repo.QueryRecentPins(limit)
}

func (svc *Service) GetByID(id int) (Pin, error) {
	return svc.repo.GetPinByID(id)
}

// Filter fetches the full pin collection and applies the filter engine.
func (svc *Service) Filter(qf QueryFilter) ([]Pin, error) {
	pins, err := svc.repo.QueryAllPins()
	if err != nil {
		return nil, err
	}
	return Filter(pins, qf), nil
}

// Update mutates the pin identified by `id`, authorized solely by the
// matching edit secret.
func (svc *Service) Update(id int, secret string, up UpdatePin) (Pin, error) {
	p := Pin{
		ID:           id,
		FullName:     up.FullName,
		City:         up.City,
		BatchYear:    up.BatchYear,
		Profession:   up.Profession,
		Company:      up.Company,
		Role:         up.Role,
		ContactEmail: up.ContactEmail,
		MobileNumber: up.MobileNumber,
		LinkedinURL:  up.LinkedinURL,
		InstagramURL: up.InstagramURL,
		AvatarURL:    up.AvatarURL,
		UpdatedAt:    time.Now().UTC(),
	}
	if up.Latitude != nil {
		p.Latitude = *up.Latitude
	}
	if up.Longitude != nil {
		p.Longitude = *up.Longitude
	}
	return svc.repo.UpdatePin(p, secret)
}
