package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline"
	"github.com/aws/aws-sdk-go-v2/service/codepipeline/types"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// StatusCommand reports the latest execution status of every pipeline stage.
func StatusCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show the latest execution status of each pipeline stage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "pipeline",
				Aliases:  []string{"p"},
				Usage:    "CodePipeline name (the PipelineNameOutput stack output)",
				Required: true,
				EnvVars:  []string{"PIPELINE_NAME"},
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Poll until every stage reaches a terminal state",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Polling interval used with --watch",
				Value: 15 * time.Second,
			},
		},
		Action: func(c *cli.Context) error {
			return statusAction(c, logger)
		},
	}
}

func statusAction(c *cli.Context, logger *zerolog.Logger) error {
	ctx := c.Context

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}
	client := codepipeline.NewFromConfig(cfg)

	pipelineName := c.String("pipeline")
	for {
		settled, err := printPipelineState(ctx, client, logger, pipelineName)
		if err != nil {
			return err
		}
		if !c.Bool("watch") || settled {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.Duration("interval")):
		}
	}
}

// printPipelineState logs every stage and action status and reports whether
// all stages have reached a terminal state.
func printPipelineState(ctx context.Context, client *codepipeline.Client,
	logger *zerolog.Logger, pipelineName string) (bool, error) {

	out, err := client.GetPipelineState(ctx, &codepipeline.GetPipelineStateInput{
		Name: aws.String(pipelineName),
	})
	if err != nil {
		return false, fmt.Errorf("get pipeline state for %s: %w", pipelineName, err)
	}

	for _, stage := range out.StageStates {
		status := stageStatus(stage)

		event := logger.Info()
		if status == types.StageExecutionStatusFailed {
			event = logger.Error()
		}
		event.
			Str("stage", aws.ToString(stage.StageName)).
			Str("status", string(status)).
			Msg("Stage state")

		for _, action := range stage.ActionStates {
			if action.LatestExecution == nil {
				continue
			}
			logger.Info().
				Str("stage", aws.ToString(stage.StageName)).
				Str("action", aws.ToString(action.ActionName)).
				Str("status", string(action.LatestExecution.Status)).
				Msg("Action state")
		}
	}
	return stagesSettled(out.StageStates), nil
}

func stageStatus(stage types.StageState) types.StageExecutionStatus {
	if stage.LatestExecution == nil {
		// Never executed yet; still waiting on the orchestration service.
		return types.StageExecutionStatusInProgress
	}
	return stage.LatestExecution.Status
}

// stagesSettled reports whether every stage has reached a terminal state.
// Stopping is still in flight: the stage winds down before it settles.
func stagesSettled(stages []types.StageState) bool {
	for _, stage := range stages {
		switch stageStatus(stage) {
		case types.StageExecutionStatusInProgress, types.StageExecutionStatusStopping:
			return false
		}
	}
	return true
}
