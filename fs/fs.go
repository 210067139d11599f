// Package appfs embeds the application's static assets: database migrations
// and the bundled school directory.
package appfs

import (
	"embed"
	"encoding/json"

	"github.com/pkg/errors"
)

//go:embed migrations schools
var FS embed.FS

// SchoolNames loads the bundled school directory in its curated order.
// Lines starting with "---" are category headers, kept in place so pickers
// can render sections.
func SchoolNames() ([]string, error) {
	data, err := FS.ReadFile("schools/indian_institutes.json")
	if err != nil {
		return nil, errors.Wrap(err, "appfs: reading school directory")
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, errors.Wrap(err, "appfs: parsing school directory")
	}
	return names, nil
}
