package notify

import (
	"context"
	"fmt"

	"github.com/Daskott/raksha/server/metrics"
	"github.com/Daskott/raksha/server/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MAX_CONCURRENT_SENDS = 10
	TIME_LAYOUT          = "2006-01-02 15:04:05"

	alertTemplate = "🚨 EMERGENCY ALERT 🚨\n\nFrom: %s\nMessage: %s\nLocation: %s\nTime: %s\n\nThis is an automated safety alert from Raksha+ app."
)

// Sender delivers a single text message
type Sender interface {
	SendMessage(to, body string) error
}

// Dispatcher fans an alert out to a user's emergency contacts
type Dispatcher struct {
	sender  Sender
	logg    *zap.SugaredLogger
	metrics *metrics.Metrics
}

// NewDispatcher returns a dispatcher. A nil sender disables SMS, Dispatch then notifies nobody.
func NewDispatcher(sender Sender, logg *zap.SugaredLogger, m *metrics.Metrics) *Dispatcher {
	return &Dispatcher{sender: sender, logg: logg, metrics: m}
}

// Dispatch sends the alert to every contact and returns the ids of contacts whose send
// succeeded, in the order the contacts were given. A failed send is logged & skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, alert *models.Alert, senderName string, contacts []models.Contact) []string {
	if d.sender == nil || len(contacts) == 0 {
		return []string{}
	}

	body := FormatAlertMessage(alert, senderName)
	delivered := make([]bool, len(contacts))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(MAX_CONCURRENT_SENDS)

	for i := range contacts {
		i := i
		group.Go(func() error {
			delivered[i] = d.send(ctx, contacts[i], body)
			return nil
		})
	}
	_ = group.Wait()

	notified := []string{}
	for i, ok := range delivered {
		if ok {
			notified = append(notified, contacts[i].ID)
		}
	}

	return notified
}

func (d *Dispatcher) send(ctx context.Context, contact models.Contact, body string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			d.logg.Errorf("SMS to contact %v panicked: %v", contact.ID, r)
			ok = false
		}
		d.metrics.SMSResult(ok)
	}()

	if err := ctx.Err(); err != nil {
		d.logg.Warnf("SMS to contact %v skipped: %v", contact.ID, err)
		return false
	}

	if err := d.sender.SendMessage(contact.PhoneNumber, body); err != nil {
		d.logg.Errorf("Failed to send SMS to %v: %v", contact.PhoneNumber, err)
		return false
	}

	return true
}

// FormatAlertMessage renders the SMS body sent to emergency contacts
func FormatAlertMessage(alert *models.Alert, senderName string) string {
	location := fmt.Sprintf("Lat: %v, Lng: %v", alert.Location.Latitude, alert.Location.Longitude)
	if alert.Location.HasAddress() {
		location = *alert.Location.Address
	}

	return fmt.Sprintf(alertTemplate,
		senderName,
		alert.Message,
		location,
		alert.CreatedAt.Format(TIME_LAYOUT),
	)
}
