// Command book walks through a booking in the terminal against a running
// booking API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/programari/backend/internal/logging"
	"github.com/programari/backend/pkg/client"
	"github.com/programari/backend/pkg/contract"
	"github.com/programari/backend/pkg/wizard"
	"github.com/spf13/pflag"
)

func main() {
	apiURL := pflag.String("api", "http://localhost:8080", "booking API base URL")
	service := pflag.String("service", "", "preselect a service by slug or id")
	pflag.Parse()

	logging.Setup("book")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := client.New(*apiURL, client.WithNotifier(client.NotifierFunc(printNotification)))

	services, err := c.ListServices(ctx)
	if err != nil {
		logging.Fatal("could not load services", "error", err, "hint", client.UserMessage(err))
	}
	if len(services) == 0 {
		logging.Fatal("the API has no services to book")
	}

	preselected, err := resolveService(ctx, c, services, *service)
	if err != nil {
		logging.Fatal("invalid --service", "error", err)
	}

	w, submission := newBookingWizard(c.CreateBooking, time.Now(), preselected)
	defer w.Close()

	p := newPrompter(os.Stdin, os.Stdout)
	if err := run(ctx, w, p, services); err != nil && !errors.Is(err, errQuit) {
		logging.Fatal("booking aborted", "error", err)
	}
	if st := submission.State(); st.Status == client.StatusError {
		slog.Debug("last booking attempt failed", "error", st.Err)
	}
}

// newBookingWizard routes the wizard's submissions through a Mutation so a
// second submit cannot start while one is pending.
func newBookingWizard(create wizard.Submitter, today time.Time, preselected int) (*wizard.Wizard, *client.Mutation[contract.InsertBooking, contract.Created]) {
	submission := client.NewMutation[contract.InsertBooking, contract.Created](create)
	return wizard.New(submission.Run, today, preselected), submission
}

// resolveService maps a --service value to a service id. Empty means none.
func resolveService(ctx context.Context, c *client.Client, services []contract.Service, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	if id, err := strconv.Atoi(v); err == nil {
		for _, s := range services {
			if s.ID == id {
				return id, nil
			}
		}
		return 0, fmt.Errorf("no service with id %d", id)
	}
	svc, err := c.GetService(ctx, v)
	if err != nil {
		return 0, err
	}
	return svc.ID, nil
}

func printNotification(n client.Notification) {
	prefix := "✓"
	if n.Kind == client.KindError {
		prefix = "✗"
	}
	fmt.Printf("\n%s %s %s\n", prefix, n.Title, n.Description)
}
