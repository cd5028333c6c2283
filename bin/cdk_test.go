package main

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
)

func TestSitePipelineStackPublishesOperatorOutputs(t *testing.T) {
	app := awscdk.NewApp(nil)
	stack := NewSitePipelineStack(app, "SitePipelineTestStack", &SitePipelineStackProps{
		StackProps: awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: jsii.String("123456789012"),
				Region:  jsii.String("us-east-1"),
			},
		},
		GithubOwner:     "acme",
		GithubRepo:      "site",
		GithubBranch:    "main",
		TokenSecretName: "github-token",
		StackName:       "acme-site",
	})

	template := assertions.Template_FromStack(stack, nil)

	outputs := *template.FindOutputs(jsii.String("*"), nil)
	for _, name := range []string{"FrontendURLOutput", "SiteBucketNameOutput", "PipelineNameOutput"} {
		assert.Contains(t, outputs, name)
	}

	template.HasResourceProperties(jsii.String("AWS::CodePipeline::Pipeline"), map[string]interface{}{
		"Name": "acme-site-pipeline",
	})
	template.HasResourceProperties(jsii.String("AWS::SNS::Topic"), map[string]interface{}{
		"TopicName": "acme-site-alarms",
	})
}
