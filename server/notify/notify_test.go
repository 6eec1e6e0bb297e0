package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Daskott/raksha/server/logger"
	"github.com/Daskott/raksha/server/models"
	"github.com/stretchr/testify/assert"
)

var logg = logger.NewLogger()

type panicSender struct{}

func (panicSender) SendMessage(to, body string) error { panic("boom") }

func contacts(n int) []models.Contact {
	list := []models.Contact{}
	for i := 0; i < n; i++ {
		contact := models.Contact{Name: fmt.Sprintf("c%v", i), PhoneNumber: fmt.Sprintf("+1555000000%v", i)}
		contact.ID = fmt.Sprintf("contact-%v", i)
		list = append(list, contact)
	}
	return list
}

func testAlert() *models.Alert {
	alert := &models.Alert{Message: "Help!", Location: models.Location{Latitude: 12.5, Longitude: 77.25}}
	alert.CreatedAt = time.Date(2024, 3, 1, 18, 4, 5, 0, time.UTC)
	return alert
}

func TestFormatAlertMessage(t *testing.T) {
	alert := testAlert()

	assert.Equal(t,
		"🚨 EMERGENCY ALERT 🚨\n\nFrom: Asha Rao\nMessage: Help!\nLocation: Lat: 12.5, Lng: 77.25\nTime: 2024-03-01 18:04:05\n\nThis is an automated safety alert from Raksha+ app.",
		FormatAlertMessage(alert, "Asha Rao"),
	)

	address := "MG Road"
	alert.Location.Address = &address
	assert.Contains(t, FormatAlertMessage(alert, "Asha Rao"), "\nLocation: MG Road\n")
}

func TestDispatchAllDelivered(t *testing.T) {
	sender := &SenderStub{}
	dispatcher := NewDispatcher(sender, logg, nil)

	notified := dispatcher.Dispatch(context.Background(), testAlert(), "Asha", contacts(3))

	assert.Equal(t, []string{"contact-0", "contact-1", "contact-2"}, notified)
	assert.Equal(t, 3, sender.SentCount())
}

func TestDispatchIsolatesFailures(t *testing.T) {
	list := contacts(4)
	sender := &SenderStub{FailFor: map[string]error{list[1].PhoneNumber: errors.New("invalid number")}}
	dispatcher := NewDispatcher(sender, logg, nil)

	notified := dispatcher.Dispatch(context.Background(), testAlert(), "Asha", list)

	assert.Equal(t, []string{"contact-0", "contact-2", "contact-3"}, notified)
}

func TestDispatchWithoutContactsOrSender(t *testing.T) {
	sender := &SenderStub{}

	notified := NewDispatcher(sender, logg, nil).Dispatch(context.Background(), testAlert(), "Asha", nil)
	assert.NotNil(t, notified)
	assert.Empty(t, notified)
	assert.Equal(t, 0, sender.SentCount())

	notified = NewDispatcher(nil, logg, nil).Dispatch(context.Background(), testAlert(), "Asha", contacts(2))
	assert.NotNil(t, notified)
	assert.Empty(t, notified)
}

func TestDispatchRecoversFromPanickingSender(t *testing.T) {
	notified := NewDispatcher(panicSender{}, logg, nil).Dispatch(context.Background(), testAlert(), "Asha", contacts(2))
	assert.Empty(t, notified)
}
