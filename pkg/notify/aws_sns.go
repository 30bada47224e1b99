package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snsTypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

var ErrCallsUnsupported = errors.New("voice calls are not supported by the SNS provider")

type AWSSNSProvider struct {
	client *sns.Client
	region string
}

func NewAWSSNSProvider(region string) (*AWSSNSProvider, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSNSProvider{
		client: sns.NewFromConfig(cfg),
		region: region,
	}, nil
}

func (a *AWSSNSProvider) SendSMS(ctx context.Context, request *MessageRequest) (*MessageResponse, error) {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(request.To),
		Message:     aws.String(request.Message),
		MessageAttributes: map[string]snsTypes.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	}

	resp, err := a.client.Publish(ctx, input)
	if err != nil {
		return &MessageResponse{
			Status: "failed",
			Error:  err.Error(),
		}, err
	}

	return &MessageResponse{
		MessageID: *resp.MessageId,
		Status:    "sent",
	}, nil
}

// PlaceCall always fails: SNS has no voice channel. Callers configured
// with this provider fall back to SMS delivery.
func (a *AWSSNSProvider) PlaceCall(ctx context.Context, request *CallRequest) (*CallResponse, error) {
	return nil, ErrCallsUnsupported
}
