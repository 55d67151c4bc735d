package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var rmaPattern = regexp.MustCompile(`^RMA-[0-9A-F]{8}$`)

// NewRMANumber returns "RMA-" followed by eight uppercase hex characters.
func NewRMANumber() string {
	return "RMA-" + strings.ToUpper(hexID()[:8])
}

// ValidRMANumber reports whether s has the RMA number shape.
func ValidRMANumber(s string) bool {
	return rmaPattern.MatchString(s)
}

// NewTrackingNumber returns a UPS-style tracking number: "1Z" and sixteen uppercase hex characters.
func NewTrackingNumber() string {
	return "1Z" + strings.ToUpper(hexID()[:16])
}

func hexID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
