package entity

import (
	"fmt"
	"strings"
)

// Source identifies the external provider a request, record or history entry pertains to.
type Source string

const (
	SourceGoogleMaps  Source = "GOOGLE_MAPS"
	SourceYelp        Source = "YELP"
	SourceBBB         Source = "BBB"
	SourceApollo      Source = "APOLLO"
	SourcePPPLoan     Source = "PPP_LOAN"
	SourceLinkedIn    Source = "LINKEDIN"
	SourceUSASpending Source = "USA_SPENDING"
	SourceAngi        Source = "ANGI"
)

// Sources lists every known source in declaration order.
var Sources = []Source{
	SourceGoogleMaps,
	SourceYelp,
	SourceBBB,
	SourceApollo,
	SourcePPPLoan,
	SourceLinkedIn,
	SourceUSASpending,
	SourceAngi,
}

var sourceSlugs = map[string]Source{
	"google":      SourceGoogleMaps,
	"yelp":        SourceYelp,
	"bbb":         SourceBBB,
	"apollo":      SourceApollo,
	"ppp":         SourcePPPLoan,
	"linkedin":    SourceLinkedIn,
	"usaspending": SourceUSASpending,
	"angi":        SourceAngi,
}

var sourceNames = map[Source]string{
	SourceGoogleMaps:  "Google Maps",
	SourceYelp:        "Yelp",
	SourceBBB:         "BBB",
	SourceApollo:      "Apollo",
	SourcePPPLoan:     "PPP loan",
	SourceLinkedIn:    "LinkedIn",
	SourceUSASpending: "USASpending",
	SourceAngi:        "Angi",
}

// ParseSource accepts either the enum value ("YELP") or the URL slug ("yelp").
func ParseSource(s string) (Source, error) {
	if src, ok := sourceSlugs[strings.ToLower(s)]; ok {
		return src, nil
	}
	candidate := Source(strings.ToUpper(s))
	if _, ok := sourceNames[candidate]; ok {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSource, s)
}

// DisplayName is the human readable provider name used in error responses.
func (s Source) DisplayName() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return string(s)
}

func (s Source) Valid() bool {
	_, ok := sourceNames[s]
	return ok
}
