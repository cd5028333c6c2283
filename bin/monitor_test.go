package main

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
)

func newMonitoringTestStack(t *testing.T) awscdk.Stack {
	t.Helper()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("MonitoringTestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-1"),
		},
	})

	frontend := createFrontendResources(stack, &FrontendProps{})
	pipeline := createPipelineResources(stack, &PipelineProps{
		GithubOwner:     "acme",
		GithubRepo:      "site",
		GithubBranch:    "main",
		TokenSecretName: "github-token",
		StackName:       "acme-site",
		Frontend:        frontend,
	})
	createMonitoringResources(stack, "acme-site", pipeline)
	return stack
}

func TestAlarmTopicNameDerivesFromStackName(t *testing.T) {
	template := assertions.Template_FromStack(newMonitoringTestStack(t), nil)

	template.HasResourceProperties(jsii.String("AWS::SNS::Topic"), map[string]interface{}{
		"TopicName": "acme-site-alarms",
	})
}

func TestFailureAlarmsCoverPipelineAndBothBuilds(t *testing.T) {
	template := assertions.Template_FromStack(newMonitoringTestStack(t), nil)

	template.ResourceCountIs(jsii.String("AWS::CloudWatch::Alarm"), jsii.Number(3))

	template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"AlarmName":  "PipelineFailureAlarm",
		"Namespace":  "AWS/CodePipeline",
		"MetricName": "FailedPipelines",
	})
	for _, alarmName := range []string{"BackendBuildFailureAlarm", "FrontendBuildFailureAlarm"} {
		template.HasResourceProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
			"AlarmName":  alarmName,
			"Namespace":  "AWS/CodeBuild",
			"MetricName": "FailedBuilds",
		})
	}

	// Shared alarm shape: single breach fires, silence is healthy.
	template.AllResourcesProperties(jsii.String("AWS::CloudWatch::Alarm"), map[string]interface{}{
		"Threshold":          1,
		"EvaluationPeriods":  1,
		"ComparisonOperator": "GreaterThanOrEqualToThreshold",
		"TreatMissingData":   "notBreaching",
		"AlarmActions":       assertions.Match_AnyValue(),
	})
}

func TestAlarmTopicFansOutToNotifier(t *testing.T) {
	template := assertions.Template_FromStack(newMonitoringTestStack(t), nil)

	template.HasResourceProperties(jsii.String("AWS::SNS::Subscription"), map[string]interface{}{
		"Protocol": "lambda",
	})

	template.HasResourceProperties(jsii.String("AWS::Lambda::Function"), map[string]interface{}{
		"Handler": "bootstrap",
		"Runtime": "provided.al2",
		"DeadLetterConfig": map[string]interface{}{
			"TargetArn": assertions.Match_AnyValue(),
		},
		"Environment": map[string]interface{}{
			"Variables": map[string]interface{}{
				"PIPELINE_NAME": assertions.Match_AnyValue(),
			},
		},
	})
}
