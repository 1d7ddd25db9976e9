package service

import "mileage_mall/internal/domain"

// Authorize allows the request only when the token's principal owns the target resource.
// A zero on either side means "unknown" and is always forbidden.
func Authorize(principal, owner uint) error {
	if principal == 0 || owner == 0 || principal != owner {
		return domain.ErrForbidden
	}
	return nil
}
