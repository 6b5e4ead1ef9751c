package domain

import (
	"encoding/json"
	"strings"
)

// RatingCode is the closed set of severity/action classifications an
// auditor can assign to a checklist item.
type RatingCode int

const (
	RatingUnknown RatingCode = iota
	RatingAgeRelated
	RatingCompetitiveGap
	RatingNotApplicable
	RatingNoActionRequired
)

const ratingDelimiter = " - "

var canonicalRatings = map[RatingCode]string{
	RatingAgeRelated:       "1 - Needs to be changed due to age-related factors",
	RatingCompetitiveGap:   "2 - Needs to be changed to match competing hotels",
	RatingNotApplicable:    "3 - Not applicable",
	RatingNoActionRequired: "4 - No action required",
}

// RatingOptions returns the canonical option strings in severity order.
func RatingOptions() []string {
	return []string{
		canonicalRatings[RatingAgeRelated],
		canonicalRatings[RatingCompetitiveGap],
		canonicalRatings[RatingNotApplicable],
		canonicalRatings[RatingNoActionRequired],
	}
}

// Rating is one recorded classification. Out-of-catalog strings are
// carried verbatim as RatingUnknown instead of being rejected, so a
// stored rating can always be rendered back.
type Rating struct {
	code RatingCode
	raw  string // original string, kept only for RatingUnknown
}

// ParseRating matches a stored rating string against the four canonical
// options. Only an exact match resolves; anything else becomes a
// RatingUnknown carrying the raw string unchanged, so storage stays
// lossless even when the string merely resembles a canonical option.
func ParseRating(s string) Rating {
	switch s {
	case canonicalRatings[RatingAgeRelated]:
		return Rating{code: RatingAgeRelated}
	case canonicalRatings[RatingCompetitiveGap]:
		return Rating{code: RatingCompetitiveGap}
	case canonicalRatings[RatingNotApplicable]:
		return Rating{code: RatingNotApplicable}
	case canonicalRatings[RatingNoActionRequired]:
		return Rating{code: RatingNoActionRequired}
	}
	return Rating{code: RatingUnknown, raw: s}
}

// ResolveByPrefix maps a rating string to the canonical option sharing
// its numeric prefix. Render paths use it to display the full canonical
// wording for strings an older form produced; it never changes what is
// stored.
func ResolveByPrefix(s string) (Rating, bool) {
	prefix := s
	if i := strings.Index(s, ratingDelimiter); i >= 0 {
		prefix = s[:i]
	}
	switch prefix {
	case "1":
		return Rating{code: RatingAgeRelated}, true
	case "2":
		return Rating{code: RatingCompetitiveGap}, true
	case "3":
		return Rating{code: RatingNotApplicable}, true
	case "4":
		return Rating{code: RatingNoActionRequired}, true
	}
	return Rating{}, false
}

func (r Rating) Code() RatingCode { return r.code }

func (r Rating) Known() bool { return r.code != RatingUnknown }

// String returns the full canonical option string, or the raw stored
// string when the rating was not recognized.
func (r Rating) String() string {
	switch r.code {
	case RatingAgeRelated, RatingCompetitiveGap, RatingNotApplicable, RatingNoActionRequired:
		return canonicalRatings[r.code]
	default:
		return r.raw
	}
}

// Description returns the descriptive suffix after the delimiter, or
// the whole string when the delimiter is absent.
func (r Rating) Description() string {
	s := r.String()
	if _, after, found := strings.Cut(s, ratingDelimiter); found {
		return after
	}
	return s
}

func (r Rating) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Rating) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseRating(s)
	return nil
}
