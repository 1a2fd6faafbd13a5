package smssvc

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/kingsolomonjunior/admissions/core"
)

type snsService struct {
	client   *sns.Client
	senderID string
	logger   core.Logger
}

var _ core.SMSService = (*snsService)(nil)

func NewSNSService(ctx context.Context, logger core.Logger) (core.SMSService, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(core.Conf.SNS.Region))
	if err != nil {
		return nil, err
	}
	return &snsService{
		client:   sns.NewFromConfig(cfg),
		senderID: core.Conf.SNS.SenderID,
		logger:   logger,
	}, nil
}

func (svc snsService) SendMessages(messages ...*core.SMSMessage) {
	for _, msg := range messages {
		msg := msg
		go func() {
			if msg.To == "" || msg.Body == "" {
				return
			}
			input := &sns.PublishInput{
				PhoneNumber: aws.String(msg.To),
				Message:     aws.String(msg.Body),
			}
			if svc.senderID != "" {
				input.MessageAttributes = map[string]types.MessageAttributeValue{
					"AWS.SNS.SMS.SenderID": {
						DataType:    aws.String("String"),
						StringValue: aws.String(svc.senderID),
					},
				}
			}
			if _, err := svc.client.Publish(context.Background(), input); err != nil {
				svc.logger.Error(fmt.Sprintf("sending sms to %s: %v", msg.To, err), err)
			}
		}()
	}
}
