package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudwatch"
	"github.com/aws/jsii-runtime-go"
)

func createPipelineFailureAlarm(stack awscdk.Stack, resources *PipelineResources) awscloudwatch.Alarm {
	return failureAlarm(stack, "PipelineFailureAlarm",
		"Alert when the release pipeline fails",
		awscloudwatch.NewMetric(&awscloudwatch.MetricProps{
			Namespace:  jsii.String("AWS/CodePipeline"),
			MetricName: jsii.String("FailedPipelines"),
			Statistic:  jsii.String("Sum"),
			Period:     awscdk.Duration_Minutes(jsii.Number(5)),
			DimensionsMap: &map[string]*string{
				"PipelineName": resources.Pipeline.PipelineName(),
			},
			Unit: awscloudwatch.Unit_COUNT,
		}))
}

func createBuildFailureAlarm(stack awscdk.Stack, id string, projectName *string) awscloudwatch.Alarm {
	return failureAlarm(stack, id,
		"Alert when a deploy build fails",
		awscloudwatch.NewMetric(&awscloudwatch.MetricProps{
			Namespace:  jsii.String("AWS/CodeBuild"),
			MetricName: jsii.String("FailedBuilds"),
			Statistic:  jsii.String("Sum"),
			Period:     awscdk.Duration_Minutes(jsii.Number(5)),
			DimensionsMap: &map[string]*string{
				"ProjectName": projectName,
			},
			Unit: awscloudwatch.Unit_COUNT,
		}))
}

func failureAlarm(stack awscdk.Stack, name string, description string,
	metric awscloudwatch.Metric) awscloudwatch.Alarm {
	return awscloudwatch.NewAlarm(stack, &name, &awscloudwatch.AlarmProps{
		AlarmName:          &name,
		AlarmDescription:   &description,
		Metric:             metric,
		Threshold:          jsii.Number(1),
		EvaluationPeriods:  jsii.Number(1),
		ComparisonOperator: awscloudwatch.ComparisonOperator_GREATER_THAN_OR_EQUAL_TO_THRESHOLD,
		TreatMissingData:   awscloudwatch.TreatMissingData_NOT_BREACHING,
	})
}
