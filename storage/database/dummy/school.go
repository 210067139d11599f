package dummydb

import (
	"sort"

	"github.com/trezcool/letscatchup/core/school"
)

var schoolPKCount int

type schoolRepository struct {
	db *schoolTable
}

var _ school.Repository = (*schoolRepository)(nil) // interface compliance check

func NewSchoolRepository(db *DB) school.Repository {
	return &schoolRepository{db: db.school}
}

func (repo *schoolRepository) query() []school.School {
	schools := make([]school.School, 0, len(repo.db.table))
	for _, s := range repo.db.table {
		schools = append(schools, *s)
	}
	sort.Slice(schools, func(i, j int) bool { return schools[i].Name < schools[j].Name })
	return schools
}

func (repo *schoolRepository) CreateSchool(s school.School) (school.School, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, existing := range repo.db.table {
		if existing.Slug == s.Slug {
			return school.School{}, school.ErrSlugExists
		}
	}

	schoolPKCount++
	s.ID = schoolPKCount
	repo.db.table[s.ID] = &s
	return s, nil
}

func (repo *schoolRepository) QueryAllSchools() ([]school.School, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *schoolRepository) GetSchoolBySlug(slug string) (school.School, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, s := range repo.query() {
		if s.Slug == slug {
			return s, nil
		}
	}
	return school.School{}, school.ErrNotFound
}
