package usecase

import "fmt"

type replyKey string

const (
	replyRecorded       replyKey = "recorded"
	replyTested         replyKey = "tested"
	replyNotUnderstood  replyKey = "not_understood"
	replyFixtureUnknown replyKey = "fixture_unknown"
	replyAmbiguous      replyKey = "ambiguous"
	replyAlreadyDone    replyKey = "already_recorded"
	replyRuleViolation  replyKey = "rule_violation"
	replyTryLater       replyKey = "try_later"
)

// ReplyCatalog maps reply keys to sender-facing message templates. Catalogs
// are keyed by language so a second language is a data change, not a code one.
type ReplyCatalog map[replyKey]string

var replyCatalogs = map[string]ReplyCatalog{
	"eng": {
		replyRecorded:       "Thank you, match was recorded as:\n%s",
		replyTested:         "TEST ok, this would be recorded as:\n%s",
		replyNotUnderstood:  "Sorry, I could not understand the message.",
		replyFixtureUnknown: "I could not match this to an open fixture. Include the fixture id, e.g. \"y98ad 2-1\".",
		replyAmbiguous:      "That could be more than one fixture (%s). Include the fixture id.",
		replyAlreadyDone:    "This match is already recorded. Contact the organiser if the result is wrong.",
		replyRuleViolation:  "That result is not possible for this match: %s.",
		replyTryLater:       "The scoreboard is temporarily unavailable, please try again shortly.",
	},
}

// Replies returns the catalog for lang, falling back to English.
func Replies(lang string) ReplyCatalog {
	if catalog, ok := replyCatalogs[lang]; ok {
		return catalog
	}
	return replyCatalogs["eng"]
}

func (c ReplyCatalog) format(key replyKey, args ...any) string {
	template, ok := c[key]
	if !ok {
		template = replyCatalogs["eng"][key]
	}
	if len(args) == 0 {
		return template
	}
	return fmt.Sprintf(template, args...)
}
