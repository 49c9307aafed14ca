package catalog

import (
	"strings"
	"testing"
)

func TestParseLineQuotedCommas(t *testing.T) {
	values := parseLine(`"Acme, Inc.",A1,"Widget, 2-pack"`)
	want := []string{"Acme, Inc.", "A1", "Widget, 2-pack"}
	if len(values) != len(want) {
		t.Fatalf("got %d fields, want %d: %v", len(values), len(want), values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Fatalf("field %d: got %q want %q", i, values[i], want[i])
		}
	}
}

func TestParseSource(t *testing.T) {
	csvText := strings.Join([]string{
		"product_name,product_url,short_description",
		`FireLock Coupling,https://example.com/1,"Rigid coupling, grooved"`,
		"",
		"only,two", // field count mismatch, dropped
		"Gate Valve,https://example.com/2,Resilient seated",
	}, "\n")

	products := ParseSource(csvText, "/data/victaulic_fire_protection_products.csv")
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}

	first := products[0]
	if first.ProductName != "FireLock Coupling" {
		t.Errorf("name: got %q", first.ProductName)
	}
	if first.ShortDescription != "Rigid coupling, grooved" {
		t.Errorf("description: got %q", first.ShortDescription)
	}
	if first.Manufacturer != "Victaulic" {
		t.Errorf("manufacturer: got %q", first.Manufacturer)
	}
	if first.SearchText != "victaulic firelock coupling rigid coupling, grooved" {
		t.Errorf("search text: got %q", first.SearchText)
	}
	if products[1].ProductName != "Gate Valve" {
		t.Errorf("malformed row aborted parsing: got %q", products[1].ProductName)
	}
}

func TestManufacturerFromSource(t *testing.T) {
	cases := []struct {
		source string
		want   string
	}{
		{"/fieldfab/loosematerial/victaulic_fire_protection_products.csv", "Victaulic"},
		{"https://cdn.example.com/catalogs/anvil_threaded_fittings.csv", "Anvil"},
		{"tyco_fire_protection_products.csv", "Tyco"},
		{"reliable.csv", "Reliable"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			if got := ManufacturerFromSource(tc.source); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}
