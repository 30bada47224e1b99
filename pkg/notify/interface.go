package notify

import "context"

// Provider delivers alert notifications to drivers over SMS or a voice
// call. Implementations: Twilio (SMS + voice), AWS SNS (SMS only).
type Provider interface {
	SendSMS(ctx context.Context, request *MessageRequest) (*MessageResponse, error)
	PlaceCall(ctx context.Context, request *CallRequest) (*CallResponse, error)
}

type MessageRequest struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Message string `json:"message"`
}

type MessageResponse struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

type CallRequest struct {
	To     string `json:"to"`
	From   string `json:"from"`
	Script string `json:"script"` // spoken text for the call
}

type CallResponse struct {
	CallID string `json:"call_id"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
