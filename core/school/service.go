package school

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/trezcool/letscatchup/core"
)

var (
	// errors
	ErrNotFound   = errors.New("school not found")
	ErrSlugExists = errors.New("a school with this name is already registered")
)

type (
	Repository interface {
		// CreateSchool fails with ErrSlugExists when the slug is taken.
		CreateSchool(s School) (School, error)
		QueryAllSchools() ([]School, error)
		GetSchoolBySlug(slug string) (School, error)
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		bundled []string // static reference list, headers included
	}
)

func NewService(repo Repository, mailSvc core.EmailService, bundled []string) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, bundled: bundled}
}

// Create registers a user-submitted school and notifies the site admin.
func (svc *Service) Create(ns NewSchool) (School, error) {
	now := time.Now().UTC()
	s := School{
		Name:      ns.Name,
		Slug:      Slugify(ns.Name),
		LogoURL:   ns.LogoURL,
		CreatedAt: now,
	}
	s, err := svc.repo.CreateSchool(s)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			return School{}, core.NewValidationError(err, core.FieldError{Field: "name", Error: err.Error()})
		}
		return School{}, err
	}

	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{core.Conf.AdminEmail},
		Subject: "New school registered",
		Body:    fmt.Sprintf("School %q (slug %q) was just registered.", s.Name, s.Slug),
	})
	return s, nil
}

func (svc *Service) QueryAll() ([]School, error) {
	return svc.repo.QueryAllSchools()
}

// GetBySlug looks a school up among registered rows first, then the bundled
// reference list.
func (svc *Service) GetBySlug(slug string) (School, error) {
	s, err := svc.repo.GetSchoolBySlug(slug)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return School{}, err
	}
	for _, name := range svc.bundled {
		if IsCategoryHeader(name) {
			continue
		}
		if Slugify(name) == slug {
			return School{Name: name, Slug: slug}, nil
		}
	}
	return School{}, ErrNotFound
}

// Names returns all selectable school names: the bundled list (headers
// included, for grouping) followed by registered rows.
func (svc *Service) Names() ([]string, error) {
	registered, err := svc.repo.QueryAllSchools()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(svc.bundled)+len(registered))
	names = append(names, svc.bundled...)
	for _, s := range registered {
		names = append(names, s.Name)
	}
	return names, nil
}

// Search runs the search-as-you-type matcher over bundled and registered names.
func (svc *Service) Search(query string) ([]string, error) {
	names, err := svc.Names()
	if err != nil {
		return nil, err
	}
	return Search(query, names), nil
}
