package catalog

import (
	"regexp"
	"strings"

	"fieldfab/internal/util"
)

// commonSizes are the nominal sizes a description range is expanded
// against, in inches.
var commonSizes = []string{
	"1/2", "3/4", "1", "1 1/4", "1 1/2", "2", "2 1/2", "3", "4", "6", "8",
	"10", "12", "14", "16", "18", "20", "24", "30", "36", "42", "48", "54",
	"60", "72", "84", "96", "108", "120", "144",
}

var (
	reAvailable = regexp.MustCompile(`(?i)Available\s+([^.]+)`)
	reOptionSep = regexp.MustCompile(`(?i),\s*|\s+or\s+`)
	reSizes     = regexp.MustCompile(`(?i)Sizes?\s+(?:from\s+)?([0-9½¼⅛⅜⅝⅞\s\-"]+)(?:\s*\||\s*inch|\s*DN|\.)`)
	reSizeRange = regexp.MustCompile(`([0-9½¼⅛⅜⅝⅞]+)\s*-\s*([0-9]+)`)
)

// OptionsFromDescription extracts the option list from descriptions like
// "Available bare, pretrimmed, as a Vic-Quick riser or in a Series 745…".
func OptionsFromDescription(desc string) []string {
	m := reAvailable.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}

	var out []string
	for _, raw := range reOptionSep.Split(m[1], -1) {
		opt := strings.TrimSpace(raw)
		if len(opt) > 0 && len(opt) < 100 {
			out = append(out, opt)
		}
	}
	return out
}

// SizesFromDescription expands a size range like "Sizes from 1½ - 8 | DN40
// - DN200" into the common nominal sizes that fall inside it. Bare sizes
// get a trailing inch mark.
func SizesFromDescription(desc string) []string {
	m := reSizes.FindStringSubmatch(desc)
	if m == nil {
		return nil
	}

	r := reSizeRange.FindStringSubmatch(m[1])
	if r == nil {
		return nil
	}

	start, ok := util.ParseLeadingFloat(expandFractions(r[1]))
	if !ok {
		return nil
	}
	end, ok := util.ParseLeadingFloat(r[2])
	if !ok {
		return nil
	}

	var out []string
	for _, size := range commonSizes {
		num, ok := util.ParseLeadingFloat(strings.Replace(size, " ", ".", 1))
		if !ok || num < start || num > end {
			continue
		}
		if strings.Contains(size, " ") {
			out = append(out, size)
		} else {
			out = append(out, size+`"`)
		}
	}
	return out
}

func expandFractions(s string) string {
	repl := strings.NewReplacer("½", ".5", "¼", ".25", "¾", ".75")
	return repl.Replace(s)
}
