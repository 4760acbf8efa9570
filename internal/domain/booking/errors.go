package booking

import "shareit/internal/pkg/errs"

var (
	ErrBookingNotFound = errs.NotFound("booking not found")
	ErrItemUnavailable = errs.BadRequest("item is not available for booking")
	ErrOwnerBooking    = errs.Conflict("owner cannot book their own item")
	ErrInvalidPeriod   = errs.Conflict("start date must be before end date")
	ErrMissingPeriod   = errs.BadRequest("booking start and end are required")
	ErrAlreadyDecided  = errs.Conflict("booking has already been approved or rejected")
	ErrNotItemOwner    = errs.Forbidden("only the item owner can approve or reject the booking")
	ErrAccessDenied    = errs.Forbidden("access denied: user is neither the booker nor the item owner")
)

func UnknownStateError(token string) error {
	return errs.BadRequest("unknown state: " + token)
}
