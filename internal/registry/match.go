package registry

import (
	"regexp"
	"strings"
)

var (
	// unitSuffixRe strips trailing unit designators: ", Unit 1", " Unit 2", " 1".
	unitSuffixRe = regexp.MustCompile(`(?i),?\s*(Unit\s*)?\d+$`)

	// facilitySuffixRe strips the legal facility suffix: "Nuclear Power Plant",
	// "Steam Electric Plant, Unit 2", "Generating Station", and similar.
	facilitySuffixRe = regexp.MustCompile(`(?i)\s*(Nuclear\s*)?(Power\s*)?(Plant|Station|Generating Station).*$`)

	// unitTokenRe removes the "Unit" token so "Plant, Unit 1" and "Plant 1"
	// normalize identically.
	unitTokenRe = regexp.MustCompile(`(?i),?\s*Unit\s*`)

	trailingNumberRe = regexp.MustCompile(`(\d+)$`)
)

var spelledNumbers = []struct {
	re    *regexp.Regexp
	digit string
}{
	{regexp.MustCompile(`\bOne\b`), "1"},
	{regexp.MustCompile(`\bTwo\b`), "2"},
	{regexp.MustCompile(`\bThree\b`), "3"},
}

// Matcher resolves registry unit names to daily-feed unit names. The two
// sources use different naming conventions ("Edwin I. Hatch Nuclear Plant,
// Unit 1" vs "Hatch 1"), so matching proceeds through explicit overrides,
// exact match, normalized match, then base-name containment with matching
// unit numbers.
type Matcher struct {
	overrides  map[string]string
	feedNames  []string
	normalized map[string]string // normalized feed name -> feed name
}

// NewMatcher builds a matcher over the set of unit names present in the
// daily feed.
func NewMatcher(feedNames []string, overrides map[string]string) *Matcher {
	m := &Matcher{
		overrides:  overrides,
		feedNames:  feedNames,
		normalized: make(map[string]string, len(feedNames)),
	}
	for _, n := range feedNames {
		m.normalized[strings.ToLower(normalizeName(n))] = n
	}
	return m
}

// Match returns the daily-feed name for a registry unit name, or false when
// no feed series corresponds to the unit.
func (m *Matcher) Match(registryName string) (string, bool) {
	if mapped, ok := m.overrides[registryName]; ok {
		if m.hasFeedName(mapped) {
			return mapped, true
		}
	}

	if m.hasFeedName(registryName) {
		return registryName, true
	}

	if feed, ok := m.normalized[strings.ToLower(normalizeName(registryName))]; ok {
		return feed, true
	}

	return m.matchByBaseName(registryName)
}

func (m *Matcher) hasFeedName(name string) bool {
	for _, n := range m.feedNames {
		if n == name {
			return true
		}
	}
	return false
}

// matchByBaseName compares plant base names (unit designator stripped) by
// containment, requiring the unit numbers to agree. Long words from the
// registry base also count as containment so "Joseph M. Farley" finds
// "Farley".
func (m *Matcher) matchByBaseName(registryName string) (string, bool) {
	regBase := strings.ToLower(plantBaseName(registryName))
	regUnit := trailingNumber(registryName)

	for _, feedName := range m.feedNames {
		feedBase := strings.ToLower(plantBaseName(feedName))
		feedUnit := trailingNumber(feedName)

		if regUnit != feedUnit {
			continue
		}
		if strings.Contains(feedBase, regBase) || strings.Contains(regBase, feedBase) {
			return feedName, true
		}
		for _, word := range strings.Fields(regBase) {
			if len(word) > 4 && strings.Contains(feedBase, word) {
				return feedName, true
			}
		}
	}
	return "", false
}

// plantBaseName strips the trailing unit designator from a full unit name.
func plantBaseName(name string) string {
	return strings.TrimSpace(unitSuffixRe.ReplaceAllString(name, ""))
}

// normalizeName reduces a unit name to a comparable form: facility suffixes
// and "Unit" tokens removed, spelled-out unit numbers digitized, whitespace
// collapsed. The trailing unit number is captured before the facility suffix
// is stripped, since the suffix pattern consumes the rest of the name.
func normalizeName(name string) string {
	for _, sub := range spelledNumbers {
		name = sub.re.ReplaceAllString(name, sub.digit)
	}
	unit := trailingNumber(name)

	name = facilitySuffixRe.ReplaceAllString(name, "")
	name = unitTokenRe.ReplaceAllString(name, " ")
	name = strings.Join(strings.Fields(name), " ")

	if unit != "" && !strings.HasSuffix(name, unit) {
		name += " " + unit
	}
	return name
}

func trailingNumber(name string) string {
	if m := trailingNumberRe.FindStringSubmatch(name); m != nil {
		return m[1]
	}
	return ""
}
