// Package discovery implements the pet discovery filter/sort pipeline. It is
// pure: it never mutates its inputs and returns the same ordered sequence for
// the same inputs.
package discovery

import (
	"sort"
	"strings"

	"github.com/pawhaven/pawhaven-v2/backend/internal/models"
)

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "All"

// Age bucket labels offered by the filter sheet.
const (
	BucketPuppy  = "Puppy"
	BucketAdult  = "Adult"
	BucketSenior = "Senior"
)

// Filters holds the discovery screen's filter state. Empty Genders or Ages
// mean "no constraint"; empty Search always matches.
type Filters struct {
	Category string
	Search   string
	Genders  []string
	Ages     []string
}

// SelectPets applies the filter predicates and, when matchOrder is non-empty,
// moves AI-ranked pets ahead of unranked ones. matchOrder lists pet IDs in
// rank order; ranked pets keep that order, unranked pets keep their input
// order. The input slice is never modified.
func SelectPets(pets []models.Pet, f Filters, matchOrder []string) []models.Pet {
	out := make([]models.Pet, 0, len(pets))
	for _, p := range pets {
		if matchesCategory(p, f.Category) &&
			matchesSearch(p, f.Search) &&
			matchesGender(p, f.Genders) &&
			matchesAge(p, f.Ages) {
			out = append(out, p)
		}
	}

	if len(matchOrder) == 0 {
		return out
	}

	rank := make(map[string]int, len(matchOrder))
	for i, id := range matchOrder {
		rank[id] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, iOK := rank[out[i].ID.String()]
		rj, jOK := rank[out[j].ID.String()]
		if iOK && jOK {
			return ri < rj
		}
		return iOK && !jOK
	})
	return out
}

func matchesCategory(p models.Pet, category string) bool {
	return category == "" || category == CategoryAll || p.Category == category
}

func matchesSearch(p models.Pet, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Breed), q)
}

func matchesGender(p models.Pet, genders []string) bool {
	if len(genders) == 0 {
		return true
	}
	for _, g := range genders {
		if p.Gender == g {
			return true
		}
	}
	return false
}

// matchesAge buckets the free-text age field with a deliberate string-parse
// heuristic: "Puppy" when the text mentions months, "Adult" when it mentions
// years with a leading value in [1,7), "Senior" when the leading value is 7 or
// more regardless of unit. Ambiguous phrasings ("10 months") can land in more
// than one bucket; that behavior is load-bearing for existing data and must
// not be tightened here.
func matchesAge(p models.Pet, buckets []string) bool {
	if len(buckets) == 0 {
		return true
	}
	age := strings.ToLower(p.Age)
	n, hasN := leadingInt(p.Age)
	for _, b := range buckets {
		switch b {
		case BucketPuppy:
			if strings.Contains(age, "month") {
				return true
			}
		case BucketAdult:
			if strings.Contains(age, "year") && hasN && n >= 1 && n < 7 {
				return true
			}
		case BucketSenior:
			if hasN && n >= 7 {
				return true
			}
		}
	}
	return false
}

// leadingInt parses the leading decimal integer of s, skipping leading
// whitespace, the way JavaScript's parseInt reads "3 months" as 3.
func leadingInt(s string) (int, bool) {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n := 0
	for _, c := range s[start:i] {
		n = n*10 + int(c-'0')
	}
	return n, true
}
