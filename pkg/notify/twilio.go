package notify

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	api "github.com/twilio/twilio-go/rest/api/v2010"
)

type TwilioProvider struct {
	client     *twilio.RestClient
	fromNumber string
}

func NewTwilioProvider(accountSID, authToken, fromNumber string) *TwilioProvider {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioProvider{
		client:     client,
		fromNumber: fromNumber,
	}
}

func (t *TwilioProvider) SendSMS(ctx context.Context, request *MessageRequest) (*MessageResponse, error) {
	params := &api.CreateMessageParams{}
	params.SetTo(request.To)
	params.SetFrom(t.getFromNumber(request.From))
	params.SetBody(request.Message)

	resp, err := t.client.Api.CreateMessage(params)
	if err != nil {
		return &MessageResponse{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &MessageResponse{
		MessageID: *resp.Sid,
		Status:    string(*resp.Status),
	}, nil
}

func (t *TwilioProvider) PlaceCall(ctx context.Context, request *CallRequest) (*CallResponse, error) {
	params := &api.CreateCallParams{}
	params.SetTo(request.To)
	params.SetFrom(t.getFromNumber(request.From))
	params.SetTwiml(sayTwiml(request.Script))

	resp, err := t.client.Api.CreateCall(params)
	if err != nil {
		return &CallResponse{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &CallResponse{
		CallID: *resp.Sid,
		Status: string(*resp.Status),
	}, nil
}

func (t *TwilioProvider) getFromNumber(from string) string {
	if from != "" {
		return from
	}
	return t.fromNumber
}

// sayTwiml wraps the alert script in a minimal TwiML document. The script
// text is XML-escaped so template output cannot break the markup.
func sayTwiml(script string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(script))
	return fmt.Sprintf(`<Response><Say voice="alice">%s</Say></Response>`, b.String())
}
