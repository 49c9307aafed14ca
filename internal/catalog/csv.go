package catalog

import (
	"strings"
	"unicode"

	"fieldfab/internal"
)

// ManufacturerFromSource derives the manufacturer label from a source's own
// identity: the last path segment up to the first underscore, capitalized.
// "…/victaulic_fire_protection_products.csv" -> "Victaulic".
func ManufacturerFromSource(source string) string {
	name := source
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '_'); i >= 0 {
		name = name[:i]
	} else if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ParseSource parses one manufacturer CSV into product records. The first
// line is the header; rows whose field count does not match the header are
// dropped. Quoted fields may contain commas; embedded "" escapes are not
// handled (matches the observed source data, which never uses them).
func ParseSource(csvText, source string) []internal.ProductRecord {
	lines := strings.Split(csvText, "\n")
	if len(lines) == 0 {
		return nil
	}

	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}
	manufacturer := ManufacturerFromSource(source)

	var products []internal.ProductRecord
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		values := parseLine(line)
		if len(values) != len(headers) {
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			fields[h] = values[i]
		}

		p := internal.ProductRecord{
			ProductName:      fields["product_name"],
			ProductURL:       fields["product_url"],
			ShortDescription: fields["short_description"],
			Manufacturer:     manufacturer,
		}
		p.SearchText = SearchText(p.Manufacturer, p.ProductName, p.ShortDescription)
		products = append(products, p)
	}

	return products
}

// SearchText is the lowercase concatenation every record is matched against.
func SearchText(manufacturer, name, description string) string {
	return strings.ToLower(manufacturer + " " + name + " " + description)
}

// parseLine splits a CSV row on commas, with a double quote toggling an
// inside-quoted-field state so quoted fields keep their commas.
func parseLine(line string) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	values = append(values, strings.TrimSpace(current.String()))
	return values
}
