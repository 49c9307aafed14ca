package catalog

import (
	"testing"

	"fieldfab/internal"
)

func TestClassifyProductType(t *testing.T) {
	cases := []struct {
		name string
		want internal.ProductType
	}{
		{"Gate Valve", internal.TypeValve},
		{"Quick Response Sprinkler", internal.TypeSprinkler},
		{"Threaded Coupling 2in", internal.TypeThreadedFitting},
		{"Threaded Elbow 90", internal.TypeThreadedFitting},
		{"Threaded Return Bend", internal.TypeThreadedFitting},
		{"Style 009 Coupling", internal.TypeCoupling},
		{"Grooved Elbow 90", internal.TypeGroovedFitting},
		{"Reducing Tee", internal.TypeGroovedFitting},
		{"Widget", internal.TypeOther},
		// "threaded" alone without a fitting keyword falls through to other.
		{"Threaded Rod", internal.TypeOther},
		// A valve name containing "coupling" still classifies as valve.
		{"Coupling Valve", internal.TypeValve},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyProductType(tc.name); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestFilterByTypeAndManufacturer(t *testing.T) {
	records := []internal.ProductRecord{
		record("Gate Valve", "Acme", ""),
		record("Butterfly Valve", "Victaulic", ""),
		record("Style 009 Coupling", "Victaulic", ""),
	}

	all := FilterByTypeAndManufacturer(records, "all", "all")
	if len(all) != 3 {
		t.Fatalf("all/all: got %d", len(all))
	}

	valves := FilterByTypeAndManufacturer(records, internal.TypeValve, "all")
	if len(valves) != 2 {
		t.Fatalf("valve filter: got %d", len(valves))
	}

	victaulic := FilterByTypeAndManufacturer(records, "all", "victaulic")
	if len(victaulic) != 2 {
		t.Fatalf("manufacturer filter should be case-insensitive: got %d", len(victaulic))
	}

	both := FilterByTypeAndManufacturer(records, internal.TypeValve, "Victaulic")
	if len(both) != 1 || both[0].ProductName != "Butterfly Valve" {
		t.Fatalf("combined filter: got %v", both)
	}
}
