// Package catalog resolves opaque hardware model codes reported by the device
// management platforms into friendly names, release years and retail prices.
//
// Every function in this package is pure and total, an unresolvable code is
// reported through the zero value and never through an error.
package catalog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	// UnknownModel is the friendly name returned for an empty model code.
	UnknownModel = "Unknown Model"

	// UnknownManufacturer is returned when the manufacturer cannot be inferred.
	UnknownManufacturer = "Unknown"

	ManufacturerApple     = "Apple"
	ManufacturerLenovo    = "Lenovo"
	ManufacturerDell      = "Dell"
	ManufacturerMicrosoft = "Microsoft"

	lenovoPrefixLen = 4
)

var (
	appleShape     = regexp.MustCompile(`^(Mac|iMac|iMacPro|MacBook|MacBookAir|MacBookPro|Macmini|MacPro)\d`)
	applePrefix    = regexp.MustCompile(`^(Mac|iMac|MacBook|Macmini)`)
	lenovoShape    = regexp.MustCompile(`^2[0-9A-Z]{9}$`)
	lenovoConsumer = regexp.MustCompile(`^83[0-9A-Z]{8}$`)
	yearLike       = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	surfacePro     = regexp.MustCompile(`(?i)Pro\s*(\d+)`)
)

// blank returns true for model codes that carry no information.
func blank(code string) bool {
	return code == "" || strings.EqualFold(code, "Unknown")
}

// LookupModelInfo resolves a model code to its catalog entry.
//
// Resolution order, first match wins:
//   - exact match in the Apple, Dell and Surface tables
//   - Lenovo machine type prefix (first 4 characters, case-insensitive)
//   - Dell or Surface keyword inference, with a best effort release year
//   - Apple or Lenovo shaped codes get a generic name and unknown year
//
// The second return value is false when the code could not be resolved.
func LookupModelInfo(code string) (ModelInfo, bool) {
	code = strings.TrimSpace(code)
	if blank(code) {
		return ModelInfo{}, false
	}

	if info, exists := exactMatch(code); exists {
		return info, true
	}

	if info, exists := lenovoPrefixMatch(code); exists {
		return info, true
	}

	if info, exists := keywordMatch(code); exists {
		return info, true
	}

	if name, exists := genericName(code); exists {
		return ModelInfo{Name: name}, true
	}

	return ModelInfo{}, false
}

func exactMatch(code string) (ModelInfo, bool) {
	for _, table := range []map[string]ModelInfo{appleModels, dellModels, surfaceModels} {
		if info, exists := table[code]; exists {
			return info, true
		}
	}

	return ModelInfo{}, false
}

func lenovoPrefixMatch(code string) (ModelInfo, bool) {
	if len(code) < lenovoPrefixLen {
		return ModelInfo{}, false
	}

	info, exists := lenovoPrefixes[strings.ToUpper(code[:lenovoPrefixLen])]

	return info, exists
}

func keywordMatch(code string) (ModelInfo, bool) {
	if isDell(code) {
		return ModelInfo{
			Name: strings.Replace(code, "Dell Inc. ", "Dell ", 1),
			Year: extractYear(code),
		}, true
	}

	if strings.Contains(code, surfaceKeyword) {
		name := strings.TrimPrefix(code, "Microsoft Corporation ")
		name = strings.TrimPrefix(name, "Microsoft ")

		year := 0
		if m := surfacePro.FindStringSubmatch(name); m != nil {
			if gen, err := strconv.Atoi(m[1]); err == nil {
				year = surfaceGenerations[gen]
			}
		}

		return ModelInfo{Name: "Microsoft " + name, Year: year}, true
	}

	return ModelInfo{}, false
}

func genericName(code string) (string, bool) {
	if appleShape.MatchString(code) {
		switch {
		case strings.HasPrefix(code, "MacBookPro"):
			return fmt.Sprintf("MacBook Pro (%s)", code), true
		case strings.HasPrefix(code, "MacBookAir"):
			return fmt.Sprintf("MacBook Air (%s)", code), true
		case strings.HasPrefix(code, "iMac"):
			return fmt.Sprintf("iMac (%s)", code), true
		case strings.HasPrefix(code, "Macmini"):
			return fmt.Sprintf("Mac mini (%s)", code), true
		default:
			return fmt.Sprintf("Mac (%s)", code), true
		}
	}

	if lenovoShape.MatchString(code) {
		return fmt.Sprintf("Lenovo (%s)", code), true
	}

	return "", false
}

func isDell(code string) bool {
	for _, keyword := range dellKeywords {
		if strings.Contains(code, keyword) {
			return true
		}
	}

	return false
}

// extractYear returns the first year-like 4 digit token in s, 0 if there is none.
func extractYear(s string) int {
	m := yearLike.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}

	return year
}

// LookupModelName returns the friendly name for a model code.
//
// The returned name is never empty, an unresolved code is returned as is.
func LookupModelName(code string) string {
	trimmed := strings.TrimSpace(code)
	if blank(trimmed) {
		return UnknownModel
	}

	if info, exists := LookupModelInfo(trimmed); exists {
		return info.Name
	}

	return trimmed
}

// ModelReleaseYear returns the release year for a model code, 0 when unknown.
//
// Codes missing from the catalog that already embed a year, like a friendly
// name exported as the model, yield that year.
func ModelReleaseYear(code string) int {
	trimmed := strings.TrimSpace(code)
	if blank(trimmed) {
		return 0
	}

	if info, exists := LookupModelInfo(trimmed); exists && info.Year != 0 {
		return info.Year
	}

	return extractYear(trimmed)
}

// ModelMSRP returns the catalog retail price for a model code.
func ModelMSRP(code string) (int, bool) {
	info, exists := LookupModelInfo(code)
	if !exists || !info.HasMSRP() {
		return 0, false
	}

	return info.MSRP, true
}

// ManufacturerFromModel infers the manufacturer from a model code.
//
// The inference is independent of the name lookup, a manufacturer is often
// identifiable from the code shape when the model itself is not catalogued.
func ManufacturerFromModel(code string) string {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return UnknownManufacturer
	}

	switch {
	case applePrefix.MatchString(trimmed):
		return ManufacturerApple
	case isLenovo(trimmed):
		return ManufacturerLenovo
	case isDell(trimmed):
		return ManufacturerDell
	case strings.Contains(trimmed, surfaceKeyword):
		return ManufacturerMicrosoft
	default:
		return UnknownManufacturer
	}
}

func isLenovo(code string) bool {
	if _, exists := lenovoPrefixMatch(code); exists {
		return true
	}

	upper := strings.ToUpper(code)

	return lenovoShape.MatchString(upper) || lenovoConsumer.MatchString(upper)
}
