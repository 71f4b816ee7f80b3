// File: handlers/bundle.go
package handlers

import (
	"meetcal/services/booking"
	"meetcal/services/user"
)

// HandlerBundle groups all endpoint handlers around their services.
type HandlerBundle struct {
	Booking booking.BookingService
	Users   user.UserService
}
