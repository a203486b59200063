package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/programari/backend/internal/model"
	"github.com/programari/backend/pkg/contract"
)

func postMessage(h *MessageHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestMessageHandler_Create_Success(t *testing.T) {
	var captured contract.InsertMessage
	store := &mockStore{
		createMessageFunc: func(ctx context.Context, in contract.InsertMessage) (*model.Message, error) {
			captured = in
			return &model.Message{ID: 7, InsertMessage: in}, nil
		},
	}
	rec := postMessage(NewMessageHandler(store), `{"name":"Ana","email":"ana@example.com","message":"Aș dori o programare."}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created, err := contract.CreatedSchema.Parse(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("response violates contract: %v", err)
	}
	if created.ID != 7 || created.Message != "Message sent successfully" {
		t.Errorf("unexpected body %+v", created)
	}
	if captured.Name != "Ana" {
		t.Errorf("unexpected captured input %+v", captured)
	}
}

func TestMessageHandler_Create_ShortMessage(t *testing.T) {
	called := false
	store := &mockStore{
		createMessageFunc: func(ctx context.Context, in contract.InsertMessage) (*model.Message, error) {
			called = true
			return nil, nil
		},
	}
	rec := postMessage(NewMessageHandler(store), `{"name":"Ana","email":"ana@example.com","message":"hello"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	failure, err := contract.ValidationFailureSchema.Parse(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("400 body violates contract: %v", err)
	}
	if failure.Field != "message" || failure.Message != "Message must contain at least 10 characters" {
		t.Errorf("unexpected failure %+v", failure)
	}
	if called {
		t.Error("nothing should be stored for invalid input")
	}
}

func TestMessageHandler_Create_StorageFailure(t *testing.T) {
	store := &mockStore{
		createMessageFunc: func(ctx context.Context, in contract.InsertMessage) (*model.Message, error) {
			return nil, errors.New("insert failed")
		},
	}
	rec := postMessage(NewMessageHandler(store), `{"name":"Ana","email":"ana@example.com","message":"Aș dori o programare."}`)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
