package handler

import (
	"context"
	"net/http"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

type MessageCreator interface {
	CreateMessage(ctx context.Context, in contract.InsertMessage) (*model.Message, error)
}

// MessageHandler accepts contact form submissions.
type MessageHandler struct {
	store MessageCreator
}

func NewMessageHandler(store MessageCreator) *MessageHandler {
	return &MessageHandler{store: store}
}

// Create handles POST /api/messages.
func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	ep := contract.API.Messages.Create
	in, ok := decodeInput[contract.InsertMessage](w, r, ep)
	if !ok {
		return
	}

	msg, err := h.store.CreateMessage(r.Context(), in)
	if err != nil {
		writeInternalError(w, r, ep, err)
		return
	}
	writeJSON(w, ep.SuccessStatus(), contract.Created{
		ID:      msg.ID,
		Message: "Message sent successfully",
	})
}
