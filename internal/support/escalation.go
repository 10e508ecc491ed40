package support

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	ReasonBooking        = "booking"
	ReasonTechnical      = "technical"
	ReasonComplaint      = "complaint"
	ReasonUrgent         = "urgent"
	ReasonTechnicalError = "technical_error"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

const (
	EscalationReply = "I understand this requires specialized assistance. Let me connect you with one of our human agents who can better help you with this matter. Please hold on..."
	FailureReply    = "I apologize, but I'm experiencing technical difficulties. Would you like me to connect you with a human agent?"
	AgentJoinReply  = "Hello! I'm a human agent and I'll be helping you with your inquiry. How can I assist you?"
)

// triggers are checked in order; the first matching group wins.
var triggers = []struct {
	reason  string
	phrases []string
}{
	{ReasonBooking, []string{"cancel booking", "refund", "payment failed", "booking error"}},
	{ReasonTechnical, []string{"app not working", "login problem", "bug", "error"}},
	{ReasonComplaint, []string{"complaint", "dissatisfied", "poor service", "problem with"}},
	{ReasonUrgent, []string{"emergency", "urgent", "immediate help", "asap"}},
}

// DetectEscalation reports whether message asks for a human and why.
func DetectEscalation(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, t := range triggers {
		for _, phrase := range t.phrases {
			if strings.Contains(lower, phrase) {
				return t.reason, true
			}
		}
	}
	return "", false
}

func PriorityFor(reason string) string {
	switch reason {
	case ReasonUrgent:
		return PriorityUrgent
	case ReasonBooking, ReasonComplaint:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

func DeviceType(userAgent string) string {
	lower := strings.ToLower(userAgent)
	switch {
	case strings.Contains(lower, "mobile"):
		return "mobile"
	case strings.Contains(lower, "tablet"):
		return "tablet"
	default:
		return "desktop"
	}
}

// Keywords lowercases text and keeps distinct words longer than two
// characters, trimmed of surrounding punctuation.
func Keywords(text string) []string {
	seen := map[string]bool{}
	var out []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, unicode.IsPunct)
		if utf8.RuneCountInString(word) <= 2 || seen[word] {
			continue
		}
		seen[word] = true
		out = append(out, word)
	}
	return out
}
