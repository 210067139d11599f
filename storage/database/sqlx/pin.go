package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/letscatchup/core/pin"
)

// pinRow mirrors the pins table; optional columns are nullable.
type pinRow struct {
	ID         int     `db:"id"`
	FullName   string  `db:"full_name"`
	SchoolName string  `db:"school_name"`
	City       string  `db:"city"`
	Latitude   float64 `db:"latitude"`
	Longitude  float64 `db:"longitude"`

	BatchYear    null.Int    `db:"batch_year"`
	Profession   null.String `db:"profession"`
	Company      null.String `db:"company"`
	Role         string      `db:"role"`
	ContactEmail null.String `db:"contact_email"`
	MobileNumber null.String `db:"mobile_number"`
	LinkedinURL  null.String `db:"linkedin_url"`
	InstagramURL null.String `db:"instagram_url"`
	AvatarURL    null.String `db:"avatar_url"`

	EditSecret string    `db:"edit_secret"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r pinRow) toPin() pin.Pin {
	return pin.Pin{
		ID:           r.ID,
		FullName:     r.FullName,
		SchoolName:   r.SchoolName,
		City:         r.City,
		Latitude:     r.Latitude,
		Longitude:    r.Longitude,
		BatchYear:    r.BatchYear.Int,
		Profession:   r.Profession.String,
		Company:      r.Company.String,
		Role:         r.Role,
		ContactEmail: r.ContactEmail.String,
		MobileNumber: r.MobileNumber.String,
		LinkedinURL:  r.LinkedinURL.String,
		InstagramURL: r.InstagramURL.String,
		AvatarURL:    r.AvatarURL.String,
		EditSecret:   r.EditSecret,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
}

func newPinRow(p pin.Pin) pinRow {
	return pinRow{
		ID:           p.ID,
		FullName:     p.FullName,
		SchoolName:   p.SchoolName,
		City:         p.City,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		BatchYear:    null.NewInt(p.BatchYear, p.BatchYear != 0),
		Profession:   null.NewString(p.Profession, p.Profession != ""),
		Company:      null.NewString(p.Company, p.Company != ""),
		Role:         p.Role,
		ContactEmail: null.NewString(p.ContactEmail, p.ContactEmail != ""),
		MobileNumber: null.NewString(p.MobileNumber, p.MobileNumber != ""),
		LinkedinURL:  null.NewString(p.LinkedinURL, p.LinkedinURL != ""),
		InstagramURL: null.NewString(p.InstagramURL, p.InstagramURL != ""),
		AvatarURL:    null.NewString(p.AvatarURL, p.AvatarURL != ""),
		EditSecret:   p.EditSecret,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

type pinRepository struct {
	db *sqlx.DB
}

var _ pin.Repository = (*pinRepository)(nil)

func NewPinRepository(db *sql.DB, driverName string) *pinRepository {
	return &pinRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *pinRepository) CreatePin(p pin.Pin) (pin.Pin, error) {
	const q = `
		INSERT INTO pins (
			full_name, school_name, city, latitude, longitude, batch_year,
			profession, company, role, contact_email, mobile_number,
			linkedin_url, instagram_url, avatar_url, edit_secret, created_at, updated_at
		) VALUES (
			:full_name, :school_name, :city, :latitude, :longitude, :batch_year,
			:profession, :company, :role, :contact_email, :mobile_number,
			:linkedin_url, :instagram_url, :avatar_url, :edit_secret, :created_at, :updated_at
		) RETURNING id`

	rows, err := repo.db.NamedQuery(q, newPinRow(p))
	if err != nil {
		return pin.Pin{}, errors.Wrap(err, "inserting pin")
	}
	defer func() { _ = rows.Close() }()

	if rows.Next() {
		if err = rows.Scan(&p.ID); err != nil {
			return pin.Pin{}, errors.Wrap(err, "inserting pin")
		}
	}
	if err = rows.Err(); err != nil {
		return pin.Pin{}, errors.Wrap(err, "inserting pin")
	}
	return p, nil
}

func (repo *pinRepository) QueryAllPins() ([]pin.Pin, error) {
	var rows []pinRow
	if err := repo.db.Select(&rows, `SELECT * FROM pins ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying pins")
	}

	pins := make([]pin.Pin, 0, len(rows))
	for _, r := range rows {
		pins = append(pins, r.toPin())
	}
	return pins, nil
}

func (repo *pinRepository) QueryRecentPins(limit int) ([]pin.Pin, error) {
	var rows []pinRow
	if err := repo.db.Select(&rows, `SELECT * FROM pins ORDER BY created_at DESC LIMIT $1`, limit); err != nil {
		return nil, errors.Wrap(err, "querying recent pins")
	}

	pins := make([]pin.Pin, 0, len(rows))
	for _, r := range rows {
		pins = append(pins, r.toPin())
	}
	return pins, nil
}

func (repo *pinRepository) GetPinByID(id int) (pin.Pin, error) {
	var row pinRow
	if err := repo.db.Get(&row, `SELECT * FROM pins WHERE id = $1`, id); err != nil {
		if err == sql.ErrNoRows {
			return pin.Pin{}, pin.ErrNotFound
		}
		return pin.Pin{}, errors.Wrap(err, "getting pin")
	}
	return row.toPin(), nil
}

func (repo *pinRepository) UpdatePin(p pin.Pin, secret string) (pin.Pin, error) {
	const q = `
		UPDATE pins SET
			full_name = :full_name, city = :city,
			latitude = :latitude, longitude = :longitude,
			batch_year = :batch_year, profession = :profession, company = :company,
			role = :role, contact_email = :contact_email, mobile_number = :mobile_number,
			linkedin_url = :linkedin_url, instagram_url = :instagram_url,
			avatar_url = :avatar_url, updated_at = :updated_at
		WHERE id = :id AND edit_secret = :edit_secret`

	row := newPinRow(p)
	row.EditSecret = secret
	res, err := repo.db.NamedExec(q, row)
	if err != nil {
		return pin.Pin{}, errors.Wrap(err, "updating pin")
	}

	// zero affected rows means either the pin does not exist or the secret
	// does not match; both look the same to this client
	n, err := res.RowsAffected()
	if err != nil {
		return pin.Pin{}, errors.Wrap(err, "updating pin")
	}
	if n == 0 {
		return pin.Pin{}, pin.ErrEditForbidden
	}
	return repo.GetPinByID(p.ID)
}
