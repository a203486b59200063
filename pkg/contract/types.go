package contract

import "time"

// Service is the wire form of a bookable service.
type Service struct {
	ID               int     `json:"id" validate:"gt=0"`
	Title            string  `json:"title" validate:"required"`
	Slug             string  `json:"slug" validate:"required"`
	Description      string  `json:"description"`
	ShortDescription *string `json:"shortDescription"`
	Price            int     `json:"price" validate:"gte=0"`
	Duration         string  `json:"duration"`
	ImageURL         *string `json:"imageUrl"`
}

// InsertService is the input for creating a service. Only the seed step
// creates services.
type InsertService struct {
	Title            string  `json:"title" validate:"required"`
	Slug             string  `json:"slug" validate:"required"`
	Description      string  `json:"description" validate:"required"`
	ShortDescription *string `json:"shortDescription"`
	Price            int     `json:"price" validate:"gte=0"`
	Duration         string  `json:"duration" validate:"required"`
	ImageURL         *string `json:"imageUrl"`
}

// InsertBooking is the body of POST /api/bookings.
type InsertBooking struct {
	ServiceID     int       `json:"serviceId" validate:"required,gt=0" msg:"required=Service must be selected;gt=Service must be selected"`
	CustomerName  string    `json:"customerName" validate:"required,min=2" msg:"min=Name must contain at least 2 characters"`
	CustomerEmail string    `json:"customerEmail" validate:"required,email" msg:"email=Email invalid"`
	CustomerPhone string    `json:"customerPhone" validate:"required,min=6" msg:"min=Phone number invalid"`
	Date          time.Time `json:"date" validate:"required"`
}

// InsertMessage is the body of POST /api/messages.
type InsertMessage struct {
	Name    string `json:"name" validate:"required,min=2" msg:"min=Name must contain at least 2 characters"`
	Email   string `json:"email" validate:"required,email" msg:"email=Email invalid"`
	Message string `json:"message" validate:"required,min=10" msg:"min=Message must contain at least 10 characters"`
}

// Created is returned by every creation endpoint.
type Created struct {
	ID      int    `json:"id" validate:"gt=0"`
	Message string `json:"message" validate:"required"`
}

// ValidationFailure is the 400 body: the first failed rule.
type ValidationFailure struct {
	Message string `json:"message" validate:"required"`
	Field   string `json:"field"`
}

// ErrorBody is the body of 404 and other non-validation failures.
type ErrorBody struct {
	Message string `json:"message" validate:"required"`
}

var (
	ServiceSchema           = NewSchema[Service]()
	ServiceListSchema       = ListOf(ServiceSchema)
	InsertServiceSchema     = NewSchema[InsertService]()
	InsertBookingSchema     = NewSchema[InsertBooking]()
	InsertMessageSchema     = NewSchema[InsertMessage]()
	CreatedSchema           = NewSchema[Created]()
	ValidationFailureSchema = NewSchema[ValidationFailure]()
	ErrorSchema             = NewSchema[ErrorBody]()
)
