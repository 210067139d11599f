package school

import (
	"regexp"
	"strings"
	"time"

	"github.com/trezcool/letscatchup/core"
)

// CategoryHeaderPrefix marks entries of the bundled reference list that are
// category headers, not selectable schools.
const CategoryHeaderPrefix = "---"

var (
	nonWordRegex    = regexp.MustCompile(`[^\w-]+`)
	multiDashRegex  = regexp.MustCompile(`--+`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)

// School is either a member of the static bundled reference list or a row
// dynamically registered by a user.
type School struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	LogoURL string `json:"logo_url,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty"` // UTC; zero for bundled entries
}

// Slugify derives the URL-safe slug for a school name: lowercased, spaces
// collapsed to dashes, non-word characters stripped, dashes deduplicated.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = whitespaceRegex.ReplaceAllString(s, "-")
	s = nonWordRegex.ReplaceAllString(s, "")
	s = multiDashRegex.ReplaceAllString(s, "-")
	return s
}

// IsCategoryHeader reports whether a bundled list entry is a header.
func IsCategoryHeader(entry string) bool {
	return strings.HasPrefix(entry, CategoryHeaderPrefix)
}

// NewSchool contains information needed to register a new School.
type NewSchool struct {
	Name    string `json:"name" validate:"required"`
	LogoURL string `json:"logo_url" validate:"omitempty,url"`
}

func (ns *NewSchool) Validate() error {
	ns.Name = core.CleanString(ns.Name)
	if err := core.Validate.Struct(ns); err != nil {
		return err
	}
	if Slugify(ns.Name) == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "name must contain letters or digits"})
	}
	return nil
}
