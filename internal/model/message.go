package model

import (
	"time"

	"github.com/programari/backend/pkg/contract"
)

// Message is a stored contact form submission.
type Message struct {
	ID int `json:"id"`
	contract.InsertMessage
	CreatedAt time.Time `json:"createdAt"`
}
