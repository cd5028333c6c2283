package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
)

func createStackOutputs(stack awscdk.Stack, frontend *FrontendResources, pipeline *PipelineResources) {
	awscdk.NewCfnOutput(stack, jsii.String("FrontendURLOutput"), &awscdk.CfnOutputProps{
		Value: jsii.String(frontend.URL),
	})

	awscdk.NewCfnOutput(stack, jsii.String("SiteBucketNameOutput"), &awscdk.CfnOutputProps{
		Value: frontend.Bucket.BucketName(),
	})

	awscdk.NewCfnOutput(stack, jsii.String("PipelineNameOutput"), &awscdk.CfnOutputProps{
		Value: pipeline.Pipeline.PipelineName(),
	})
}
