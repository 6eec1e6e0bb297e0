package twilio

import (
	"fmt"

	"github.com/Daskott/raksha/shared"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

type ClientWrapper struct {
	client *twilio.RestClient
	config shared.TwilioConfig
}

// NewClient returns nil when the account isn't configured, so callers can skip SMS entirely
func NewClient(config shared.TwilioConfig) *ClientWrapper {
	if !Configured(config) {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.RestClientParams{
		Username: config.AccountSid,
		Password: config.AuthToken,
	})

	return &ClientWrapper{
		client: client,
		config: config,
	}
}

// Configured reports whether there are enough credentials to send messages
func Configured(config shared.TwilioConfig) bool {
	return config.AccountSid != "" &&
		config.AuthToken != "" &&
		(config.PhoneNumber != "" || config.MessagingServiceSid != "")
}

func (cw *ClientWrapper) SendMessage(to, msg string) error {
	params := &openapi.CreateMessageParams{}
	if cw.config.MessagingServiceSid != "" {
		params.SetMessagingServiceSid(cw.config.MessagingServiceSid)
	} else {
		params.SetFrom(cw.config.PhoneNumber)
	}
	params.SetTo(to)
	params.SetBody(msg)

	resp, err := cw.client.ApiV2010.CreateMessage(params)
	if err != nil {
		return err
	}

	if resp.ErrorMessage != nil && *resp.ErrorMessage != "" {
		return fmt.Errorf("twilio: %s", *resp.ErrorMessage)
	}

	return nil
}
