package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
)

var codePipelineClient *codepipeline.Client

func init() {
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		panic(fmt.Sprintf("failed to load AWS config: %v", err))
	}
	codePipelineClient = codepipeline.NewFromConfig(cfg)
}

// alarmMessage is the CloudWatch alarm state change payload delivered
// through SNS.
type alarmMessage struct {
	AlarmName       string `json:"AlarmName"`
	NewStateValue   string `json:"NewStateValue"`
	NewStateReason  string `json:"NewStateReason"`
	StateChangeTime string `json:"StateChangeTime"`
}

func handler(ctx context.Context, event events.SNSEvent) error {
	for _, record := range event.Records {
		var msg alarmMessage
		if err := json.Unmarshal([]byte(record.SNS.Message), &msg); err != nil {
			log.Printf("Skipping non-alarm SNS record: %v", err)
			continue
		}
		log.Printf("Alarm %s is %s: %s", msg.AlarmName, msg.NewStateValue, msg.NewStateReason)
	}

	pipelineName := os.Getenv("PIPELINE_NAME")
	if pipelineName == "" {
		return fmt.Errorf("PIPELINE_NAME environment variable not set")
	}

	return logPipelineState(ctx, pipelineName)
}

// logPipelineState records the current stage statuses so the failure is
// diagnosable from the notifier's log alone.
func logPipelineState(ctx context.Context, pipelineName string) error {
	out, err := codePipelineClient.GetPipelineState(ctx, &codepipeline.GetPipelineStateInput{
		Name: aws.String(pipelineName),
	})
	if err != nil {
		return fmt.Errorf("failed to get pipeline state for %s: %w", pipelineName, err)
	}

	for _, stage := range out.StageStates {
		status := "Unknown"
		if stage.LatestExecution != nil {
			status = string(stage.LatestExecution.Status)
		}
		log.Printf("Stage %s: %s", aws.ToString(stage.StageName), status)
	}
	return nil
}

func main() {
	lambda.Start(handler)
}
