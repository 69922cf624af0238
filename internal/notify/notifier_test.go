package notify_test

import (
	"errors"
	"testing"

	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"pricewatch/internal/config"
	"pricewatch/internal/notify"
)

type fakeAPI struct {
	got *twilioApi.CreateMessageParams
	err error
}

func (f *fakeAPI) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.got = p
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

var creds = config.Twilio{AccountSID: "AC1", AuthToken: "tok", FromNumber: "+15550000000"}

func TestSendBuildsMessage(t *testing.T) {
	api := &fakeAPI{}
	n := notify.NewWithAPI(creds, api)

	if err := n.Send("+15551112222", "Price dropped to 9.99"); err != nil {
		t.Fatal(err)
	}
	if api.got == nil || *api.got.To != "+15551112222" || *api.got.From != "+15550000000" ||
		*api.got.Body != "Price dropped to 9.99" {
		t.Fatalf("unexpected params %+v", api.got)
	}
}

func TestSendMissingCredentials(t *testing.T) {
	api := &fakeAPI{}
	for _, c := range []config.Twilio{
		{},
		{AccountSID: "AC1", AuthToken: "tok"},
		{AccountSID: "AC1", FromNumber: "+1555"},
	} {
		err := notify.NewWithAPI(c, api).Send("+15551112222", "hi")
		if !errors.Is(err, notify.ErrMissingCredentials) {
			t.Fatalf("%+v: want ErrMissingCredentials, got %v", c, err)
		}
	}
	if api.got != nil {
		t.Fatal("api must not be called without credentials")
	}
}

func TestSendPropagatesAPIError(t *testing.T) {
	boom := errors.New("21211: invalid 'To' phone number")
	n := notify.NewWithAPI(creds, &fakeAPI{err: boom})

	if err := n.Send("+15551112222", "hi"); !errors.Is(err, boom) {
		t.Fatalf("want api error, got %v", err)
	}
}

func TestSendRequiresRecipientAndBody(t *testing.T) {
	api := &fakeAPI{}
	n := notify.NewWithAPI(creds, api)
	if err := n.Send("", "hi"); err == nil {
		t.Fatal("empty recipient should fail")
	}
	if err := n.Send("+15551112222", ""); err == nil {
		t.Fatal("empty message should fail")
	}
	if api.got != nil {
		t.Fatal("api must not be called for invalid input")
	}
}
