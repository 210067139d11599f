package dummydb

import (
	"sort"

	"github.com/trezcool/letscatchup/core/pin"
)

var pinPKCount int

type pinRepository struct {
	db *pinTable
}

var _ pin.Repository = (*pinRepository)(nil) // interface compliance check

func NewPinRepository(db *DB) pin.Repository {
	return &pinRepository{db: db.pin}
}

func (repo *pinRepository) query() []pin.Pin {
	pins := make([]pin.Pin, 0, len(repo.db.table))
	for _, p := range repo.db.table {
		pins = append(pins, *p)
	}
	sort.Slice(pins, func(i, j int) bool { return pins[i].ID < pins[j].ID })
	return pins
}

func (repo *pinRepository) CreatePin(p pin.Pin) (pin.Pin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	pinPKCount++
	p.ID = pinPKCount
	repo.db.table[p.ID] = &p
	return p, nil
}

func (repo *pinRepository) QueryAllPins() ([]pin.Pin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *pinRepository) QueryRecentPins(limit int) ([]pin.Pin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	pins := repo.query()
	sort.SliceStable(pins, func(i, j int) bool { return pins[i].CreatedAt.After(pins[j].CreatedAt) })
	if len(pins) > limit {
		pins = pins[:limit]
	}
	return pins, nil
}

func (repo *pinRepository) GetPinByID(id int) (pin.Pin, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if p, ok := repo.db.table[id]; ok {
		return *p, nil
	}
	return pin.Pin{}, pin.ErrNotFound
}

func (repo *pinRepository) UpdatePin(p pin.Pin, secret string) (pin.Pin, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	origPin, ok := repo.db.table[p.ID]
	if !ok || !origPin.CheckEditSecret(secret) {
		return pin.Pin{}, pin.ErrEditForbidden
	}

	origPin.FullName = p.FullName
	origPin.City = p.City
	origPin.Latitude = p.Latitude
	origPin.Longitude = p.Longitude
	origPin.BatchYear = p.BatchYear
	origPin.Profession = p.Profession
	origPin.Company = p.Company
	origPin.Role = p.Role
	origPin.ContactEmail = p.ContactEmail
	origPin.MobileNumber = p.MobileNumber
	origPin.LinkedinURL = p.LinkedinURL
	origPin.InstagramURL = p.InstagramURL
	origPin.AvatarURL = p.AvatarURL
	origPin.UpdatedAt = p.UpdatedAt

	repo.db.table[p.ID] = origPin
	return *origPin, nil
}
