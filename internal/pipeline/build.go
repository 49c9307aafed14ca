package pipeline

import (
	"regexp"
	"strconv"
	"strings"

	"fieldfab/internal"
	"fieldfab/internal/catalog"
)

// ParsedLine is the qty/size/query split of one free-text input line such
// as `qty 1, 6" 769N preaction valve` or `2x 4" style 232 coupling`.
type ParsedLine struct {
	Qty   int
	Size  string
	Query string
}

var qtyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:qty\s*)?(\d+)\s*[x,]\s*`),
	regexp.MustCompile(`^(\d+)\s+`),
}

// The "inch" forms come before the bare-number forms so that `2 inch`
// consumes the unit instead of leaving it in the search text.
var sizePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(\d+)\s*inch\s*,?\s*`),
	regexp.MustCompile(`^(\d+(?:/\d+)?)\s*["']?\s*,?\s*`),
	regexp.MustCompile(`(?i),\s*(\d+)\s*inch\s*,?\s*`),
	regexp.MustCompile(`,\s*(\d+(?:/\d+)?)\s*["']?\s*,?\s*`),
}

// ParseInputLine splits a material request line into quantity, size and the
// remaining search text. Returns nil for blank lines. Quantity defaults to
// 1 when the line carries none.
func ParseInputLine(line string) *ParsedLine {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	qty := 1
	searchText := line

	for _, pattern := range qtyPatterns {
		if loc := pattern.FindStringSubmatchIndex(searchText); loc != nil && loc[0] == 0 {
			parsed, err := strconv.Atoi(searchText[loc[2]:loc[3]])
			if err == nil {
				qty = parsed
			}
			searchText = strings.TrimSpace(searchText[loc[1]:])
			break
		}
	}

	size := ""
	for _, pattern := range sizePatterns {
		if loc := pattern.FindStringSubmatchIndex(searchText); loc != nil {
			size = searchText[loc[2]:loc[3]] + `"`
			searchText = searchText[:loc[0]] + searchText[loc[1]:]
			searchText = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(searchText), ","))
			break
		}
	}

	return &ParsedLine{Qty: qty, Size: size, Query: strings.TrimSpace(searchText)}
}

// Builder turns free-text material request lines into material items by
// matching each line against the catalog.
type Builder struct {
	svc *catalog.Service
}

func NewBuilder(svc *catalog.Service) *Builder {
	return &Builder{svc: svc}
}

// BuildMaterialList matches every input line against the catalog. Lines
// with no match become manual entries carrying the raw search text, so a
// failed lookup never loses the requested material.
func (b *Builder) BuildMaterialList(lines []string) ([]internal.MaterialItem, error) {
	var items []internal.MaterialItem

	lineNo := 0
	for _, line := range lines {
		parsed := ParseInputLine(line)
		if parsed == nil || parsed.Query == "" {
			continue
		}
		lineNo++

		item := internal.MaterialItem{
			ID:            strconv.Itoa(lineNo),
			Qty:           parsed.Qty,
			Size:          parsed.Size,
			OriginalInput: strings.TrimSpace(line),
		}

		results, err := b.svc.Search(parsed.Query, 1)
		if err != nil {
			return nil, err
		}

		if len(results) > 0 {
			top := results[0]
			item.Part = top.ProductName
			item.Description = top.ShortDescription
			item.Type = catalog.ClassifyProductType(top.ProductName)
			item.Options = catalog.OptionsFromDescription(top.ShortDescription)
			item.Sizes = catalog.SizesFromDescription(top.ShortDescription)
			item.Matched = true
		} else {
			item.Part = parsed.Query
			item.Type = internal.TypeOther
			item.Matched = false
		}

		items = append(items, item)
	}

	return items, nil
}
