package notify

import (
	"errors"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"pricewatch/internal/config"
	applog "pricewatch/internal/log"
	"pricewatch/internal/validate"
)

var ErrMissingCredentials = errors.New("twilio credentials are not configured")

// MessageCreator is the slice of the Twilio REST API we use.
type MessageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type Notifier struct {
	cfg config.Twilio
	api MessageCreator
}

type sms struct {
	To   string `validate:"required"`
	From string `validate:"required"`
	Body string `validate:"required"`
}

// New does not check the credentials; Send does, so a process without them still starts.
func New(cfg config.Twilio) *Notifier {
	return &Notifier{cfg: cfg}
}

// NewWithAPI is New with the Twilio client swapped out.
func NewWithAPI(cfg config.Twilio, api MessageCreator) *Notifier {
	return &Notifier{cfg: cfg, api: api}
}

// Send texts message to the phone number to. Errors from Twilio are returned unchanged
// apart from wrapping; there is no retry.
func (n *Notifier) Send(to, message string) error {
	if n.cfg.AccountSID == "" || n.cfg.AuthToken == "" || n.cfg.FromNumber == "" {
		return ErrMissingCredentials
	}
	msg := sms{To: to, From: n.cfg.FromNumber, Body: message}
	if err := validate.Struct(msg); err != nil {
		return fmt.Errorf("notify.Send: %w", err)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(msg.To)
	params.SetFrom(msg.From)
	params.SetBody(msg.Body)

	resp, err := n.client().CreateMessage(params)
	if err != nil {
		return fmt.Errorf("notify.Send: %w", err)
	}
	fields := map[string]any{"to": msg.To}
	if resp != nil && resp.Sid != nil {
		fields["sid"] = *resp.Sid
	}
	applog.Info(nil, "notify.sent", fields)
	return nil
}

func (n *Notifier) client() MessageCreator {
	if n.api == nil {
		n.api = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: n.cfg.AccountSID,
			Password: n.cfg.AuthToken,
		}).Api
	}
	return n.api
}
