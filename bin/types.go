package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
)

type SitePipelineStackProps struct {
	awscdk.StackProps

	GithubOwner     string
	GithubRepo      string
	GithubBranch    string
	TokenSecretName string
	StackName       string
	SiteBucketName  string
}

// FrontendProps configures the static hosting definition.
type FrontendProps struct {
	// BucketName is optional; CloudFormation generates a name when empty.
	BucketName string
}

// FrontendResources is the handle the pipeline definition consumes.
type FrontendResources struct {
	Bucket       awss3.Bucket
	Distribution awscloudfront.Distribution
	URL          string
}

// PipelineProps configures the release pipeline. Every field is required.
type PipelineProps struct {
	GithubOwner     string
	GithubRepo      string
	GithubBranch    string
	TokenSecretName string
	StackName       string
	Frontend        *FrontendResources
}

type PipelineResources struct {
	Pipeline        awscodepipeline.Pipeline
	BackendProject  awscodebuild.PipelineProject
	FrontendProject awscodebuild.PipelineProject
}
