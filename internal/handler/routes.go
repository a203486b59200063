package handler

import (
	"net/http"

	"github.com/programari/backend/internal/event"
	"github.com/programari/backend/internal/repository"
	"github.com/programari/backend/internal/service"
	"github.com/programari/backend/pkg/contract"
)

// Register mounts the API on mux. Mutating endpoints go through limiter when
// it is non-nil.
func Register(mux *http.ServeMux, h *Handler, services *ServiceHandler, bookings *BookingHandler, messages *MessageHandler, limiter Limiter) {
	limited := func(fn http.HandlerFunc) http.Handler {
		if limiter == nil {
			return fn
		}
		return limiter.Middleware(fn)
	}

	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle(contract.API.Services.List.Pattern(), http.HandlerFunc(services.List))
	mux.Handle(contract.API.Services.Get.Pattern(), http.HandlerFunc(services.Get))
	mux.Handle(contract.API.Bookings.Create.Pattern(), limited(bookings.Create))
	mux.Handle(contract.API.Messages.Create.Pattern(), limited(messages.Create))
}

// Server is the API handler together with the background event queue it
// publishes through.
type Server struct {
	http.Handler
	events *event.AsyncPublisher
}

// NewServer builds the full HTTP handler for store: the API routes wrapped
// in RequestID, RequestLogger, SecurityHeaders and CORS. Booking events go
// through a queue, so a slow publisher never delays a response.
func NewServer(store repository.Storage, publisher event.Publisher, limiter Limiter, frontendURL string) *Server {
	events := event.NewAsyncPublisher(publisher, 0, 0)
	h := New(store, frontendURL)
	mux := http.NewServeMux()
	Register(mux, h,
		NewServiceHandler(store),
		NewBookingHandler(service.NewBookingService(store, events)),
		NewMessageHandler(store),
		limiter,
	)
	return &Server{
		Handler: Chain(mux, RequestID, RequestLogger, SecurityHeaders, h.CORS),
		events:  events,
	}
}

// Close flushes queued events and closes the publisher.
func (s *Server) Close() error {
	return s.events.Close()
}
