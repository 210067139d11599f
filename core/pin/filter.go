package pin

import (
	"github.com/trezcool/letscatchup/core"
)

// SearchRadiusKm is the fixed radius applied around a resolved search
// location or the device position.
const SearchRadiusKm = 50.0

// Filter returns the subset of pins satisfying ALL active criteria.
// A non-empty school criterion is mandatory: without one the result is
// always empty, so the caller never displays unfiltered data.
func Filter(pins []Pin, qf QueryFilter) []Pin {
	qf.Clean()

	matched := make([]Pin, 0, len(pins))
	if qf.School == "" {
		return matched
	}
	for _, p := range pins {
		if matches(p, qf) {
			matched = append(matched, p)
		}
	}
	return matched
}

func matches(p Pin, qf QueryFilter) bool {
	// a pin missing the school field never matches
	if p.SchoolName == "" {
		return false
	}
	if !core.ContainsFold(p.SchoolName, qf.School) {
		return false
	}

	if pt := qf.ResolvedPoint(); pt != nil {
		// a resolved search location takes precedence over both the city
		// text and "near me" criteria
		if !pt.WithinKm(p.Point(), SearchRadiusKm) {
			return false
		}
	} else {
		if qf.City != "" && !core.ContainsFold(p.City, qf.City) {
			return false
		}
		if me := qf.NearMePoint(); me != nil && !me.WithinKm(p.Point(), SearchRadiusKm) {
			return false
		}
	}

	if qf.BatchYear != "" && !core.ContainsFold(p.batchYearString(), qf.BatchYear) {
		return false
	}
	if qf.Profession != "" && !core.ContainsFold(p.Profession, qf.Profession) {
		return false
	}
	if qf.Company != "" && !core.ContainsFold(p.Company, qf.Company) {
		return false
	}
	if qf.Role != "" && p.Role != qf.Role {
		return false
	}
	return true
}
