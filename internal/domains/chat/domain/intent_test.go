package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]Intent{
		"How do I return a drill?":          IntentReturnHelp,
		"I want to START a RETURN":          IntentReturnHelp,
		"what's the status of RMA-ABC12345": IntentTrackReturn,
		"track my package":                  IntentTrackReturn,
		"Can I return opened paint?":        IntentPolicyQuestion,
		"what is the policy":                IntentPolicyQuestion,
		"help me find my order":             IntentOrderLookup,
		"Hello":                             IntentGreeting,
		"hi there":                          IntentGreeting,
		"thanks, bye!":                      IntentFarewell,
		"Thank you":                         IntentFarewell,
		"what time do stores open":          IntentGeneralQuestion,
		"":                                  IntentGeneralQuestion,
	}
	for text, want := range cases {
		assert.Equal(t, want, Classify(text), text)
	}
}

func TestClassify_WholeWords(t *testing.T) {
	// "this" and "high" contain "hi" but are not greetings
	assert.Equal(t, IntentGeneralQuestion, Classify("this shelf is high"))
	// "returned" is not "return"
	assert.Equal(t, IntentGeneralQuestion, Classify("how was it returned"))
	// a return question wins over the later greeting rule
	assert.Equal(t, IntentReturnHelp, Classify("hi, how do I return this?"))
}

func TestResponse_ReturnHelpVariants(t *testing.T) {
	assert.Contains(t, Response(IntentReturnHelp, "how do I return"), "To start a return")
	assert.Contains(t, Response(IntentReturnHelp, "create a return"), "within 90 days")
}

func TestNewReply(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reply := NewReply("track my return", "s-1", now)

	assert.Equal(t, IntentTrackReturn, reply.Intent)
	assert.Equal(t, Confidence, reply.Confidence)
	assert.Equal(t, "s-1", reply.SessionID)
	assert.Equal(t, now, reply.Timestamp)
	assert.Equal(t, []string{"Track Return", "View Return History", "Contact Support"}, reply.SuggestedActions)
}

func TestErrorReply(t *testing.T) {
	reply := ErrorReply("s-1", time.Now())
	assert.Equal(t, IntentError, reply.Intent)
	assert.Zero(t, reply.Confidence)
	assert.Equal(t, []string{"Contact Support", "Try Again"}, reply.SuggestedActions)
	assert.Equal(t, ErrorResponse, reply.Response)
}
