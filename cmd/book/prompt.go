package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/programari/backend/pkg/contract"
	"github.com/programari/backend/pkg/wizard"
)

var errQuit = errors.New("quit")

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(r), out: w}
}

// ask prints label and reads one trimmed line. "q" quits, EOF too.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	line := strings.TrimSpace(p.in.Text())
	if line == "q" {
		return "", errQuit
	}
	return line, nil
}

// run drives w until the user quits or declines another booking.
func run(ctx context.Context, w *wizard.Wizard, p *prompter, services []contract.Service) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s := w.State()
		var err error
		switch s.Step {
		case wizard.SelectingService:
			err = stepService(ctx, w, p, services)
		case wizard.SelectingDateTime:
			err = stepDateTime(ctx, w, p)
		case wizard.EnteringDetails:
			err = stepDetails(ctx, w, p)
		case wizard.Submitting:
			fmt.Fprintln(p.out, "Sending booking...")
			w.Wait()
		case wizard.Completed:
			fmt.Fprintf(p.out, "Booking #%d registered. %s\n", s.Result.ID, s.Result.Message)
			again, aerr := p.ask("Book another? [y/N]")
			if aerr != nil || !strings.EqualFold(again, "y") {
				return aerr
			}
			w.Dispatch(ctx, wizard.Reset{})
		}
		if err != nil {
			return err
		}
	}
}

func stepService(ctx context.Context, w *wizard.Wizard, p *prompter, services []contract.Service) error {
	fmt.Fprintln(p.out, "\nServices:")
	for i, svc := range services {
		fmt.Fprintf(p.out, "  %d) %s, %d RON, %s\n", i+1, svc.Title, svc.Price, svc.Duration)
	}
	line, err := p.ask("Choose a service")
	if err != nil {
		return err
	}
	n, convErr := strconv.Atoi(line)
	if convErr != nil || n < 1 || n > len(services) {
		fmt.Fprintln(p.out, "Please enter one of the numbers above.")
		return nil
	}
	w.Dispatch(ctx, wizard.SelectService{ID: services[n-1].ID})
	w.Dispatch(ctx, wizard.Next{})
	return nil
}

func stepDateTime(ctx context.Context, w *wizard.Wizard, p *prompter) error {
	line, err := p.ask("\nDate (YYYY-MM-DD, weekdays only, b = back)")
	if err != nil {
		return err
	}
	if line == "b" {
		w.Dispatch(ctx, wizard.Prev{})
		return nil
	}
	date, perr := time.ParseInLocation("2006-01-02", line, time.Local)
	if perr != nil {
		fmt.Fprintln(p.out, "Could not read that date.")
		return nil
	}
	if s := w.Dispatch(ctx, wizard.SelectDate{Date: date}); !s.HasDate() || !s.Date.Equal(date) {
		fmt.Fprintln(p.out, "That day is not available.")
		return nil
	}

	fmt.Fprintf(p.out, "Times: %s\n", strings.Join(wizard.TimeSlots, " "))
	slot, err := p.ask("Time")
	if err != nil {
		return err
	}
	if s := w.Dispatch(ctx, wizard.SelectTime{Slot: slot}); s.Time != slot {
		fmt.Fprintln(p.out, "Please pick one of the listed times.")
		return nil
	}
	w.Dispatch(ctx, wizard.Next{})
	return nil
}

func stepDetails(ctx context.Context, w *wizard.Wizard, p *prompter) error {
	if s := w.State(); s.Err != nil {
		fmt.Fprintln(p.out, "The booking was not sent, please try again.")
	}

	var d wizard.Details
	var err error
	if d.Name, err = p.ask("\nName (b = back)"); err != nil {
		return err
	}
	if d.Name == "b" {
		w.Dispatch(ctx, wizard.Prev{})
		return nil
	}
	if d.Email, err = p.ask("Email"); err != nil {
		return err
	}
	if d.Phone, err = p.ask("Phone"); err != nil {
		return err
	}

	w.Dispatch(ctx, wizard.EditDetails{Details: d})
	s := w.Dispatch(ctx, wizard.Next{})
	for _, field := range []string{"customerName", "customerEmail", "customerPhone"} {
		if msg, ok := s.FieldErrors[field]; ok {
			fmt.Fprintf(p.out, "  %s\n", msg)
		}
	}
	return nil
}
