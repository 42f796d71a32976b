package store

import "strings"

// DateFormat is the calendar-day key used under analytics/events. It sorts
// lexicographically in chronological order.
const DateFormat = "2006-01-02"

// VoteCountPath is the shared per-project count.
func VoteCountPath(project string) string {
	return "votes/" + project + "/count"
}

// VoterPath is one visitor's boolean vote flag for a project. The identity is
// sanitized before use as a path segment.
func VoterPath(project, identity string) string {
	return "votes/" + project + "/voters/" + SanitizeIdentity(identity)
}

// VotersPrefix is the parent of all voter flags for a project.
func VotersPrefix(project string) string {
	return "votes/" + project + "/voters"
}

func dayPrefix(date string) string {
	return "analytics/events/" + date
}

// TotalVisitsPath is the day's site-wide visit counter.
func TotalVisitsPath(date string) string {
	return dayPrefix(date) + "/total_visits"
}

// ProjectViewsPath is the day's view counter for one project.
func ProjectViewsPath(date, project string) string {
	return dayPrefix(date) + "/project_views/" + project
}

// UpvotesPath is the day's net upvote mirror for one project. It is
// overwritten with the ledger count on every toggle, never incremented.
func UpvotesPath(date, project string) string {
	return dayPrefix(date) + "/upvotes/" + project
}

// UpvoteEventsPath counts vote-on transitions for one project.
func UpvoteEventsPath(date, project string) string {
	return dayPrefix(date) + "/upvote_events/" + project
}

// UnvoteEventsPath counts vote-off transitions for one project.
func UnvoteEventsPath(date, project string) string {
	return dayPrefix(date) + "/unvote_events/" + project
}

// SessionDurationPath accumulates reported session seconds for one project.
func SessionDurationPath(date, project string) string {
	return dayPrefix(date) + "/session_duration/" + project
}

// DayPrefix is the root of one day's analytics counters.
func DayPrefix(date string) string {
	return dayPrefix(date)
}

// identityReplacer substitutes every character the store forbids in a key
// segment. The mapping is deterministic and, for realistic identity tokens
// (hex digests, dotted IPs), collision-free.
var identityReplacer = strings.NewReplacer(
	"/", "_",
	".", "_",
	"#", "_",
	"$", "_",
	"[", "_",
	"]", "_",
)

// SanitizeIdentity makes an identity token safe for use as a path segment.
func SanitizeIdentity(identity string) string {
	s := identityReplacer.Replace(identity)
	// Strip control characters outright.
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
