package catalog

import (
	"strings"

	"fieldfab/internal"
)

// threadedKeywords are the fitting words that, combined with "threaded",
// classify a product as a threaded fitting. "coupling" is included so that
// a threaded coupling never falls through to the plain coupling category.
var threadedKeywords = []string{
	"elbow", "tee", "fitting", "reducer", "cap", "plug", "union", "bushing",
	"nipple", "cross", "lateral", "locknut", "return bend", "coupling",
}

type typeRule struct {
	match  func(name string) bool
	result internal.ProductType
}

// typeRules is evaluated top to bottom, first match wins. The ordering is
// load-bearing: "threaded coupling" must classify as threaded-fitting, and
// a grooved elbow must not match the threaded rule without "threaded".
var typeRules = []typeRule{
	{func(n string) bool { return strings.Contains(n, "valve") }, internal.TypeValve},
	{func(n string) bool { return strings.Contains(n, "sprinkler") }, internal.TypeSprinkler},
	{func(n string) bool { return strings.Contains(n, "threaded") && containsAny(n, threadedKeywords) }, internal.TypeThreadedFitting},
	{func(n string) bool { return strings.Contains(n, "coupling") }, internal.TypeCoupling},
	{func(n string) bool { return containsAny(n, []string{"fitting", "elbow", "tee"}) }, internal.TypeGroovedFitting},
}

// ClassifyProductType categorizes a product by keywords in its name.
func ClassifyProductType(productName string) internal.ProductType {
	name := strings.ToLower(productName)
	for _, rule := range typeRules {
		if rule.match(name) {
			return rule.result
		}
	}
	return internal.TypeOther
}

// FilterByTypeAndManufacturer keeps records matching the manufacturer
// filter (case-insensitive equality) and then the type filter; "all"
// disables either predicate.
func FilterByTypeAndManufacturer(records []internal.ProductRecord, typeFilter internal.ProductType, manufacturerFilter string) []internal.ProductRecord {
	filtered := records

	if manufacturerFilter != "all" && manufacturerFilter != "" {
		want := strings.ToLower(manufacturerFilter)
		kept := make([]internal.ProductRecord, 0, len(filtered))
		for _, r := range filtered {
			if strings.ToLower(r.Manufacturer) == want {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	if typeFilter != "all" && typeFilter != "" {
		kept := make([]internal.ProductRecord, 0, len(filtered))
		for _, r := range filtered {
			if ClassifyProductType(r.ProductName) == typeFilter {
				kept = append(kept, r)
			}
		}
		filtered = kept
	}

	return filtered
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
