package main

import (
	"log"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/nordveil/site-pipeline/config"
)

// NewSitePipelineStack declares the static hosting bucket + distribution and
// the release pipeline that deploys into them. Hosting comes first: the
// frontend deploy stage needs the bucket name and distribution id.
func NewSitePipelineStack(scope constructs.Construct, id string, props *SitePipelineStackProps) awscdk.Stack {
	stack := awscdk.NewStack(scope, &id, &props.StackProps)

	frontend := createFrontendResources(stack, &FrontendProps{
		BucketName: props.SiteBucketName,
	})

	pipeline := createPipelineResources(stack, &PipelineProps{
		GithubOwner:     props.GithubOwner,
		GithubRepo:      props.GithubRepo,
		GithubBranch:    props.GithubBranch,
		TokenSecretName: props.TokenSecretName,
		StackName:       props.StackName,
		Frontend:        frontend,
	})

	createMonitoringResources(stack, props.StackName, pipeline)
	createStackOutputs(stack, frontend, pipeline)

	return stack
}

func main() {
	defer jsii.Close()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	app := awscdk.NewApp(nil)
	NewSitePipelineStack(app, "SitePipelineStack", &SitePipelineStackProps{
		StackProps: awscdk.StackProps{
			Env: env(cfg),
		},
		GithubOwner:     cfg.GithubOwner,
		GithubRepo:      cfg.GithubRepo,
		GithubBranch:    cfg.GithubBranch,
		TokenSecretName: cfg.TokenSecretName,
		StackName:       cfg.StackName,
		SiteBucketName:  cfg.SiteBucketName,
	})

	app.Synth(nil)
}

func env(cfg *config.Env) *awscdk.Environment {
	environment := &awscdk.Environment{
		Region: jsii.String(cfg.Region),
	}
	if cfg.AccountID != "" {
		environment.Account = jsii.String(cfg.AccountID)
	}
	return environment
}
