package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-returns-portal/internal/domains/returns/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid return input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidReason) ||
		errors.Is(err, domain.ErrInvalidMethod) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidRMANumber) ||
		errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrItemNotInOrder) ||
		errors.Is(err, domain.ErrDuplicateItem) ||
		errors.Is(err, domain.ErrItemNotEligible) ||
		errors.Is(err, domain.ErrQuantityExceeded) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrOutsideReturnWindow) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
