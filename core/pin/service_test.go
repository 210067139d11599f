package pin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	pins   map[int]*Pin
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{pins: make(map[int]*Pin)}
}

func (r *fakeRepo) CreatePin(p Pin) (Pin, error) {
	r.nextID++
	p.ID = r.nextID
	r.pins[p.ID] = &p
	return p, nil
}

func (r *fakeRepo) QueryAllPins() ([]Pin, error) {
	pins := make([]Pin, 0, len(r.pins))
	for _, p := range r.pins {
		pins = append(pins, *p)
	}
	return pins, nil
}

func (r *fakeRepo) QueryRecentPins(limit int) ([]Pin, error) {
	pins, _ := r.QueryAllPins()
	if len(pins) > limit {
		pins = pins[:limit]
	}
	return pins, nil
}

func (r *fakeRepo) GetPinByID(id int) (Pin, error) {
	if p, ok := r.pins[id]; ok {
		return *p, nil
	}
	return Pin{}, ErrNotFound
}

func (r *fakeRepo) UpdatePin(p Pin, secret string) (Pin, error) {
	orig, ok := r.pins[p.ID]
	if !ok || !orig.CheckEditSecret(secret) {
		return Pin{}, ErrEditForbidden
	}
	p.SchoolName = orig.SchoolName
	p.EditSecret = orig.EditSecret
	p.CreatedAt = orig.CreatedAt
	r.pins[p.ID] = &p
	return p, nil
}

func validNewPin() NewPin {
	return NewPin{
		FullName:   "Priya Sharma",
		SchoolName: "Sardar Patel Vidyalaya",
		City:       "Mumbai",
		Latitude:   19.076,
		Longitude:  72.8777,
	}
}

func TestServiceCreate(t *testing.T) {
	svc := NewService(newFakeRepo())

	p, secret, err := svc.Create(validNewPin())
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.NotEmpty(t, secret)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	// secrets are unique per pin
	_, secret2, err := svc.Create(validNewPin())
	require.NoError(t, err)
	assert.NotEqual(t, secret, secret2)
}

func TestServiceUpdate(t *testing.T) {
	svc := NewService(newFakeRepo())
	p, secret, err := svc.Create(validNewPin())
	require.NoError(t, err)

	lat, lon := 18.5204, 73.8567
	up := UpdatePin{Company: "Acme Corp", City: "Pune", Latitude: &lat, Longitude: &lon}
	require.NoError(t, up.Validate(p))

	got, err := svc.Update(p.ID, secret, up)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", got.Company)
	assert.Equal(t, "Pune", got.City)
	assert.Equal(t, lat, got.Latitude)
	assert.Equal(t, "Priya Sharma", got.FullName) // fell back to original
	assert.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestServiceUpdateForbidden(t *testing.T) {
	svc := NewService(newFakeRepo())
	p, _, err := svc.Create(validNewPin())
	require.NoError(t, err)

	up := UpdatePin{Company: "Acme Corp"}
	require.NoError(t, up.Validate(p))

	_, err = svc.Update(p.ID, "wrong", up)
	assert.Equal(t, ErrEditForbidden, err)

	// a missing pin is indistinguishable from a wrong secret at this layer
	_, err = svc.Update(999, "wrong", up)
	assert.Equal(t, ErrEditForbidden, err)
}

func TestCheckEditSecret(t *testing.T) {
	p := Pin{EditSecret: "tok3n"}
	assert.True(t, p.CheckEditSecret("tok3n"))
	assert.False(t, p.CheckEditSecret("TOK3N"))
	assert.False(t, p.CheckEditSecret(""))
	assert.False(t, Pin{}.CheckEditSecret("tok3n"))
}

func TestWhatsAppLink(t *testing.T) {
	assert.Equal(t, "https://wa.me/919812345678", Pin{MobileNumber: "919812345678"}.WhatsAppLink())
	assert.Empty(t, Pin{}.WhatsAppLink())
}
