package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/programari/backend/pkg/client"
	"github.com/programari/backend/pkg/contract"
	"github.com/programari/backend/pkg/wizard"
)

func nextWeekday() time.Time {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func TestRun_CompletesBooking(t *testing.T) {
	var submitted contract.InsertBooking
	w := wizard.New(func(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
		submitted = in
		return contract.Created{ID: 3, Message: "Booking created successfully"}, nil
	}, time.Now(), 0)
	defer w.Close()

	day := nextWeekday().Format("2006-01-02")
	input := strings.Join([]string{
		"9",     // out of range
		"1",     // service
		"bad",   // unreadable date
		day,     // date
		"10:00", // time
		"A", "ana@example.com", "0722000000", // name too short
		"Ana Pop", "ana@example.com", "0722000000",
		"n",
	}, "\n") + "\n"

	var out bytes.Buffer
	services := []contract.Service{{ID: 2, Title: "Terapie individuală", Slug: "terapie-individuala", Price: 150, Duration: "50 min"}}
	if err := run(context.Background(), w, newPrompter(strings.NewReader(input), &out), services); err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}

	if submitted.ServiceID != 2 || submitted.CustomerName != "Ana Pop" {
		t.Errorf("unexpected submission %+v", submitted)
	}
	if submitted.Date.Hour() != 10 || submitted.Date.Format("2006-01-02") != day {
		t.Errorf("unexpected date %v", submitted.Date)
	}
	for _, want := range []string{"Please enter one of the numbers above.", "Could not read that date.", "Name must contain at least 2 characters", "Booking #3 registered."} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_QuitOnEOF(t *testing.T) {
	w := wizard.New(nil, time.Now(), 0)
	defer w.Close()

	err := run(context.Background(), w, newPrompter(strings.NewReader(""), &bytes.Buffer{}), []contract.Service{{ID: 1, Title: "x"}})
	if err != errQuit {
		t.Errorf("expected errQuit, got %v", err)
	}
}

func TestNewBookingWizard_TracksSubmission(t *testing.T) {
	w, submission := newBookingWizard(func(ctx context.Context, in contract.InsertBooking) (contract.Created, error) {
		return contract.Created{ID: 9, Message: "Booking created successfully"}, nil
	}, time.Now(), 2)
	defer w.Close()

	day := nextWeekday().Format("2006-01-02")
	input := strings.Join([]string{day, "11:00", "Ana Pop", "ana@example.com", "0722000000", "n"}, "\n") + "\n"
	var out bytes.Buffer
	services := []contract.Service{{ID: 2, Title: "Terapie individuală", Slug: "terapie-individuala", Price: 150, Duration: "50 min"}}
	if err := run(context.Background(), w, newPrompter(strings.NewReader(input), &out), services); err != nil {
		t.Fatalf("run: %v\n%s", err, out.String())
	}

	st := submission.State()
	if st.Status != client.StatusSuccess || st.Data.ID != 9 {
		t.Errorf("expected successful submission of booking 9, got %+v", st)
	}
	if !strings.Contains(out.String(), "Booking #9 registered.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}
