package sqlxrepos

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/letscatchup/core/school"
)

const uniqueViolation = "23505"

type schoolRow struct {
	ID        int         `db:"id"`
	Name      string      `db:"name"`
	Slug      string      `db:"slug"`
	LogoURL   null.String `db:"logo_url"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r schoolRow) toSchool() school.School {
	return school.School{
		ID:        r.ID,
		Name:      r.Name,
		Slug:      r.Slug,
		LogoURL:   r.LogoURL.String,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type schoolRepository struct {
	db *sqlx.DB
}

var _ school.Repository = (*schoolRepository)(nil)

func NewSchoolRepository(db *sql.DB, driverName string) *schoolRepository {
	return &schoolRepository{db: sqlx.NewDb(db, driverName)}
}

func (repo *schoolRepository) CreateSchool(s school.School) (school.School, error) {
	const q = `
		INSERT INTO schools (name, slug, logo_url, created_at)
		VALUES ($1, $2, $3, $4) RETURNING id`

	logo := null.NewString(s.LogoURL, s.LogoURL != "")
	if err := repo.db.QueryRow(q, s.Name, s.Slug, logo, s.CreatedAt).Scan(&s.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return school.School{}, school.ErrSlugExists
		}
		return school.School{}, errors.Wrap(err, "inserting school")
	}
	return s, nil
}

func (repo *schoolRepository) QueryAllSchools() ([]school.School, error) {
	var rows []schoolRow
	if err := repo.db.Select(&rows, `SELECT * FROM schools ORDER BY name`); err != nil {
		return nil, errors.Wrap(err, "querying schools")
	}

	schools := make([]school.School, 0, len(rows))
	for _, r := range rows {
		schools = append(schools, r.toSchool())
	}
	return schools, nil
}

func (repo *schoolRepository) GetSchoolBySlug(slug string) (school.School, error) {
	var row schoolRow
	if err := repo.db.Get(&row, `SELECT * FROM schools WHERE slug = $1`, slug); err != nil {
		if err == sql.ErrNoRows {
			return school.School{}, school.ErrNotFound
		}
		return school.School{}, errors.Wrap(err, "getting school")
	}
	return row.toSchool(), nil
}
