package pin

import (
	"testing"

	"github.com/trezcool/letscatchup/core"
)

func fPtr(f float64) *float64 { return &f }

func testPins() []Pin {
	return []Pin{
		{ID: 1, FullName: "Asha Mehta", SchoolName: "Sardar Patel Vidyalaya", City: "Mumbai",
			Latitude: 19.0760, Longitude: 72.8777, BatchYear: 2010, Profession: "Engineer",
			Company: "Acme Corp", Role: RoleStudent},
		{ID: 2, FullName: "Ravi Iyer", SchoolName: "Sardar Patel Vidyalaya", City: "Pune",
			Latitude: 18.5204, Longitude: 73.8567, BatchYear: 2012, Profession: "Doctor",
			Role: RoleStudent},
		{ID: 3, FullName: "Meera Shah", SchoolName: "Modern School", City: "New Delhi",
			Latitude: 28.6139, Longitude: 77.2090, BatchYear: 2010, Profession: "Teacher",
			Role: RoleTeacher},
		{ID: 4, FullName: "Nikhil Rao", SchoolName: "Sardar Patel Vidyalaya", City: "Navi Mumbai",
			Latitude: 19.0330, Longitude: 73.0297, Profession: "Designer", Company: "Studio X",
			Role: RoleTeacher},
		{ID: 5, FullName: "No School", City: "Mumbai", Latitude: 19.0, Longitude: 72.8},
	}
}

func pinIDs(pins []Pin) []int {
	ids := make([]int, 0, len(pins))
	for _, p := range pins {
		ids = append(ids, p.ID)
	}
	return ids
}

func assertIDs(t *testing.T, got []Pin, want ...int) {
	t.Helper()
	gotIDs := pinIDs(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got pins %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got pins %v, want %v", gotIDs, want)
		}
	}
}

func TestFilter_emptySchoolReturnsNothing(t *testing.T) {
	got := Filter(testPins(), QueryFilter{City: "Mumbai"})
	if len(got) != 0 {
		t.Errorf("expected empty result without a school criterion, got %v", pinIDs(got))
	}
	if got == nil {
		t.Error("expected an empty slice, not nil")
	}

	got = Filter(testPins(), QueryFilter{School: "   "})
	if len(got) != 0 {
		t.Errorf("whitespace school must not match, got %v", pinIDs(got))
	}
}

func TestFilter_schoolSubstringCaseInsensitive(t *testing.T) {
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel"}), 1, 2, 4)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "MODERN"}), 3)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "unknown"}))
}

func TestFilter_missingSchoolFieldNeverMatches(t *testing.T) {
	// pin 5 has no school name; even a criterion that matches its city
	// must not surface it
	got := Filter(testPins(), QueryFilter{School: "patel", City: "Mumbai"})
	for _, p := range got {
		if p.ID == 5 {
			t.Error("pin without a school name must be excluded")
		}
	}
}

func TestFilter_cityTextSubstring(t *testing.T) {
	// "mumbai" matches both Mumbai and Navi Mumbai
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", City: "mumbai"}), 1, 4)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", City: "Pune"}), 2)
}

func TestFilter_resolvedPointAppliesRadius(t *testing.T) {
	// resolved on Mumbai: Navi Mumbai (~21km) is in range, Pune (~120km) is not
	qf := QueryFilter{School: "patel", CityLat: fPtr(19.0760), CityLon: fPtr(72.8777)}
	got := Filter(testPins(), qf)
	assertIDs(t, got, 1, 4)

	resolved := core.Point{Lat: 19.0760, Lon: 72.8777}
	for _, p := range got {
		if d := core.Distance(resolved, p.Point()); d > SearchRadiusKm {
			t.Errorf("pin %d at %.1fkm exceeds the %vkm radius", p.ID, d, SearchRadiusKm)
		}
	}
}

func TestFilter_resolvedPointSupersedesCityText(t *testing.T) {
	// city text "Pune" would exclude pin 1; the resolved point must win
	qf := QueryFilter{School: "patel", City: "Pune", CityLat: fPtr(19.0760), CityLon: fPtr(72.8777)}
	assertIDs(t, Filter(testPins(), qf), 1, 4)
}

func TestFilter_boundaryAtExactRadiusIncluded(t *testing.T) {
	center := core.Point{Lat: 19.0760, Lon: 72.8777}
	p := Pin{ID: 9, SchoolName: "Sardar Patel Vidyalaya", City: "Somewhere",
		Latitude: 19.0760, Longitude: 73.35}
	d := core.Distance(center, p.Point())

	// pins at exactly the measured distance are included when filtered
	// with that distance as the radius
	if !center.WithinKm(p.Point(), d) {
		t.Fatal("inclusive boundary policy violated")
	}
}

func TestFilter_nearMeCombinesWithCityText(t *testing.T) {
	// near Mumbai, city text narrows to "Navi"
	qf := QueryFilter{School: "patel", City: "navi", MeLat: fPtr(19.0760), MeLon: fPtr(72.8777)}
	assertIDs(t, Filter(testPins(), qf), 4)

	// near Delhi, no Patel pins in range
	qf = QueryFilter{School: "patel", MeLat: fPtr(28.6139), MeLon: fPtr(77.2090)}
	assertIDs(t, Filter(testPins(), qf))
}

func TestFilter_fieldSubstringsAndRole(t *testing.T) {
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", BatchYear: "2010"}), 1)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", BatchYear: "201"}), 1, 2)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", Profession: "engineer"}), 1)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", Company: "studio"}), 4)
	assertIDs(t, Filter(testPins(), QueryFilter{School: "patel", Role: RoleTeacher}), 4)

	// a batch year criterion never matches a pin without one
	got := Filter(testPins(), QueryFilter{School: "patel", BatchYear: "0"})
	for _, p := range got {
		if p.BatchYear == 0 {
			t.Errorf("pin %d without a batch year matched criterion %q", p.ID, "0")
		}
	}
}
