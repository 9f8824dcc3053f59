package source

import (
	"strings"
)

// ClaimTag is the internal identifier for a claim a member can tick on the
// form. External wording is mapped to tags here and nowhere else, so a form
// rewording only ever touches this file.
type ClaimTag string

const (
	ClaimQuoteCommon        ClaimTag = "QUOTE_COMMON"
	ClaimQuoteOther         ClaimTag = "QUOTE_OTHER"
	ClaimFinishedCommon     ClaimTag = "FINISHED_COMMON"
	ClaimFinishedOther      ClaimTag = "FINISHED_OTHER"
	ClaimAttendedDiscussion ClaimTag = "ATTENDED_DISCUSSION"
)

// claimLabels maps each tag to the substring that identifies it inside the
// form's multi-select answer text.
var claimLabels = map[ClaimTag]string{
	ClaimQuoteCommon:        "الكتاب المشترك",
	ClaimQuoteOther:         "كتاب آخر",
	ClaimFinishedCommon:     "أنهيت الكتاب المشترك",
	ClaimFinishedOther:      "أنهيت كتاباً آخر",
	ClaimAttendedDiscussion: "حضرت جلسة النقاش",
}

// ClaimSet holds the claims detected on a single submission row.
type ClaimSet map[ClaimTag]bool

func (c ClaimSet) Has(tag ClaimTag) bool {
	return c[tag]
}

// DetectClaims scans the row's multi-select fields for known labels.
// Quote claims live in the quotes field, the rest in the achievements field.
func DetectClaims(row SubmissionRow) ClaimSet {
	claims := make(ClaimSet)
	for _, tag := range []ClaimTag{ClaimQuoteCommon, ClaimQuoteOther} {
		if strings.Contains(row.Quotes, claimLabels[tag]) {
			claims[tag] = true
		}
	}
	for _, tag := range []ClaimTag{ClaimFinishedCommon, ClaimFinishedOther, ClaimAttendedDiscussion} {
		if strings.Contains(row.Achievements, claimLabels[tag]) {
			claims[tag] = true
		}
	}
	return claims
}
