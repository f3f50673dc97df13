// Package event は予約イベントを外部ワークフロー(AWS Step Functions)へ発行します
package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sfn"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/bilimhub/bilimhub-backend/internal/model"
	"github.com/google/uuid"
)

// Publisher は予約イベントを発行します
type Publisher interface {
	PublishBooking(ctx context.Context, event model.BookingEvent) error
}

// StartExecutionAPI は*sfn.Clientのうちイベント発行に必要な部分です
type StartExecutionAPI interface {
	StartExecution(ctx context.Context, params *sfn.StartExecutionInput, optFns ...func(*sfn.Options)) (*sfn.StartExecutionOutput, error)
}

// SFNPublisher は予約ごとにStep Functionsの実行を開始します
type SFNPublisher struct {
	client          StartExecutionAPI
	stateMachineARN string
}

// NewSFNPublisher は新しいSFNPublisherを作成します
func NewSFNPublisher(client StartExecutionAPI, stateMachineARN string) *SFNPublisher {
	return &SFNPublisher{
		client:          client,
		stateMachineARN: stateMachineARN,
	}
}

// PublishBooking は予約イベントを入力としてステートマシンの実行を開始します
func (p *SFNPublisher) PublishBooking(ctx context.Context, event model.BookingEvent) error {
	ctx, seg := xray.BeginSubsegment(ctx, "SFNPublisher.PublishBooking")
	defer seg.Close(nil)

	input, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	out, err := p.client.StartExecution(ctx, &sfn.StartExecutionInput{
		StateMachineArn: aws.String(p.stateMachineARN),
		Name:            aws.String(ExecutionName(event.RequestID)),
		Input:           aws.String(string(input)),
	})
	if err != nil {
		seg.Close(err)
		return fmt.Errorf("failed to start execution: %w", err)
	}

	if seg != nil && out.ExecutionArn != nil {
		_ = seg.AddMetadata("execution_arn", aws.ToString(out.ExecutionArn))
	}
	return nil
}

// ExecutionName は実行名を生成します。実行名はステートマシン内で一意である必要があります
func ExecutionName(requestID int64) string {
	return fmt.Sprintf("booking-%d-%s", requestID, uuid.NewString())
}
