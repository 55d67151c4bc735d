package domain

import (
	"strings"
	"unicode"
)

// Intent is what the assistant believes the shopper is asking about.
type Intent string

const (
	IntentReturnHelp      Intent = "return_help"
	IntentTrackReturn     Intent = "track_return"
	IntentPolicyQuestion  Intent = "policy_question"
	IntentOrderLookup     Intent = "order_lookup"
	IntentGreeting        Intent = "greeting"
	IntentFarewell        Intent = "farewell"
	IntentGeneralQuestion Intent = "general_question"
	// IntentError marks the fallback reply shown when the assistant is unreachable.
	IntentError Intent = "error"
)

// Confidence is reported for every classified reply.
const Confidence = 0.9

type rule struct {
	intent Intent
	// all groups must match; a group matches when any of its terms does
	groups [][]string
}

// first match wins
var ladder = []rule{
	{intent: IntentReturnHelp, groups: [][]string{{"return"}, {"how", "start", "create"}}},
	{intent: IntentTrackReturn, groups: [][]string{{"track", "status", "rma"}}},
	{intent: IntentPolicyQuestion, groups: [][]string{{"policy", "rule", "can i return"}}},
	{intent: IntentOrderLookup, groups: [][]string{{"order"}, {"find", "lookup", "search"}}},
	{intent: IntentGreeting, groups: [][]string{{"hello", "hi", "help"}}},
	{intent: IntentFarewell, groups: [][]string{{"thank", "bye"}}},
}

// Classify runs the keyword ladder over text. Single keywords match whole
// words (or their prefix for "thank"), phrases match as substrings.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	for _, r := range ladder {
		if r.matches(lower, set) {
			return r.intent
		}
	}
	return IntentGeneralQuestion
}

func (r rule) matches(lower string, words map[string]struct{}) bool {
	for _, group := range r.groups {
		if !anyTerm(group, lower, words) {
			return false
		}
	}
	return true
}

func anyTerm(terms []string, lower string, words map[string]struct{}) bool {
	for _, term := range terms {
		if strings.Contains(term, " ") {
			if strings.Contains(lower, term) {
				return true
			}
			continue
		}
		if _, ok := words[term]; ok {
			return true
		}
		if term == "thank" {
			if _, ok := words["thanks"]; ok {
				return true
			}
		}
	}
	return false
}

// Response returns the canned answer for intent. text refines return_help.
func Response(intent Intent, text string) string {
	switch intent {
	case IntentReturnHelp:
		lower := strings.ToLower(text)
		if strings.Contains(lower, "how") || strings.Contains(lower, "start") {
			return "To start a return, you'll need your order number. Click 'Create Return' on your dashboard, enter your order number, select the items you want to return, choose a reason, and select either store drop-off or shipping. Would you like me to guide you through this process?"
		}
		return "I can help you with returns! You can return most items within 90 days. What specific return question do you have?"
	case IntentTrackReturn:
		return "To track your return, you'll need your RMA number. You can find it in your email confirmation or on your dashboard. Enter the RMA number in the 'Track Return' section. What's your RMA number?"
	case IntentPolicyQuestion:
		return "Home Depot's return policy allows returns within 90 days for most items with receipt. Large and hazardous items require special handling and cannot be returned through self-service. What specific policy question do you have?"
	case IntentOrderLookup:
		return "I can help you find your order! You can look up orders using your order number. Go to 'Order Lookup' on the main page. Do you have your order number?"
	case IntentGreeting:
		return "Hello! I'm here to help you with your Home Depot returns. I can assist with starting a return, tracking existing returns, or answering policy questions. How can I help you today?"
	case IntentFarewell:
		return "You're welcome! If you need anything else with your return, I'm right here. Have a great day!"
	case IntentError:
		return ErrorResponse
	default:
		return "I'm here to help with Home Depot returns! I can help you start a return, track an existing return, or answer questions about our return policy. What would you like to do?"
	}
}

// SuggestedActions lists the quick replies offered with intent.
func SuggestedActions(intent Intent) []string {
	switch intent {
	case IntentReturnHelp:
		return []string{"Start a Return", "View Return Policy", "Find My Orders"}
	case IntentTrackReturn:
		return []string{"Track Return", "View Return History", "Contact Support"}
	case IntentOrderLookup:
		return []string{"Order Lookup", "Return Dashboard"}
	case IntentGreeting:
		return []string{"Start a Return", "Track Return", "View Orders"}
	case IntentFarewell:
		return []string{"Start a Return", "Return Dashboard"}
	case IntentError:
		return []string{"Contact Support", "Try Again"}
	default:
		return []string{"Return Dashboard", "Contact Support"}
	}
}
