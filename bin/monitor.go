package main

import (
	"path/filepath"
	"runtime"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatchactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslambda"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3assets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssns"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssnssubscriptions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssqs"
	"github.com/aws/jsii-runtime-go"
)

// Monitoring resources: failure alarms fan out through one SNS topic to the
// notifier Lambda.
func createMonitoringResources(stack awscdk.Stack, stackName string, resources *PipelineResources) awssns.ITopic {
	topic := awssns.NewTopic(stack, jsii.String("PipelineAlarmTopic"), &awssns.TopicProps{
		TopicName:   jsii.String(stackName + "-alarms"),
		DisplayName: jsii.String("Release pipeline alarms"),
	})

	notifier := createNotifierFunction(stack, resources)
	topic.AddSubscription(awssnssubscriptions.NewLambdaSubscription(notifier, nil))

	snsAction := awscloudwatchactions.NewSnsAction(topic)
	createPipelineFailureAlarm(stack, resources).AddAlarmAction(snsAction)
	createBuildFailureAlarm(stack, "BackendBuildFailureAlarm",
		resources.BackendProject.ProjectName()).AddAlarmAction(snsAction)
	createBuildFailureAlarm(stack, "FrontendBuildFailureAlarm",
		resources.FrontendProject.ProjectName()).AddAlarmAction(snsAction)

	return topic
}

func createNotifierFunction(stack awscdk.Stack, resources *PipelineResources) awslambda.Function {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("could not resolve caller file name")
	}
	notifyDir := filepath.Join(filepath.Dir(filename), "notify")

	dlq := awssqs.NewQueue(stack, jsii.String("NotifierDLQ"), &awssqs.QueueProps{
		RetentionPeriod: awscdk.Duration_Days(jsii.Number(7)),
	})

	notifier := awslambda.NewFunction(stack, jsii.String("PipelineNotifier"), &awslambda.FunctionProps{
		Runtime:         awslambda.Runtime_PROVIDED_AL2(),
		Handler:         jsii.String("bootstrap"),
		Architecture:    awslambda.Architecture_X86_64(),
		Timeout:         awscdk.Duration_Seconds(jsii.Number(30)),
		DeadLetterQueue: dlq,
		Code:            awslambda.Code_FromAsset(jsii.String(notifyDir), &awss3assets.AssetOptions{}),
		Environment: &map[string]*string{
			"PIPELINE_NAME": resources.Pipeline.PipelineName(),
		},
	})

	// Read-only look at the one pipeline, for alarm context.
	notifier.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:    awsiam.Effect_ALLOW,
		Actions:   jsii.Strings("codepipeline:GetPipelineState"),
		Resources: jsii.Strings(*resources.Pipeline.PipelineArn()),
	}))

	return notifier
}
