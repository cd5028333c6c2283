package main

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/jsii-runtime-go"
)

// The backend deployment tool writes its resource identifiers here; the
// frontend build reads the same file. The name is the tool's convention.
const backendOutputsFile = "amplify_outputs.json"

// Backend deploy project: runs the deployment tool in custom-pipeline mode
// and emits the outputs file as the stage artifact.
func createBackendProject(stack awscdk.Stack, props *PipelineProps) awscodebuild.PipelineProject {
	project := awscodebuild.NewPipelineProject(stack, jsii.String("BackendDeployProject"), &awscodebuild.PipelineProjectProps{
		ProjectName: jsii.String(props.StackName + "-backend"),
		Environment: &awscodebuild.BuildEnvironment{
			ComputeType: awscodebuild.ComputeType_SMALL,
			BuildImage:  awscodebuild.LinuxBuildImage_STANDARD_7_0(),
			EnvironmentVariables: &map[string]*awscodebuild.BuildEnvironmentVariable{
				"BRANCH": {
					Value: jsii.String(props.GithubBranch),
				},
				"STACK_NAME": {
					Value: jsii.String(props.StackName),
				},
			},
		},
		BuildSpec: awscodebuild.BuildSpec_FromObject(&map[string]interface{}{
			"version": "0.2",
			"phases": map[string]interface{}{
				"install": map[string]interface{}{
					"commands": []string{
						"npm ci",
					},
				},
				"build": map[string]interface{}{
					"commands": []string{
						"npx ampx pipeline-deploy --branch $BRANCH --app-id $STACK_NAME",
						"cat " + backendOutputsFile,
					},
				},
			},
			"artifacts": map[string]interface{}{
				"files": []string{backendOutputsFile},
			},
		}),
	})

	// The deployment tool provisions whatever the backend declares, so its
	// resource footprint is not known at definition time. Coarse grant.
	project.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect: awsiam.Effect_ALLOW,
		Actions: jsii.Strings(
			"cloudformation:*",
			"iam:*",
			"cognito-idp:*",
			"cognito-identity:*",
			"appsync:*",
			"dynamodb:*",
			"lambda:*",
			"s3:*",
			"ssm:*",
			"secretsmanager:GetSecretValue",
			"logs:*",
			"sts:AssumeRole",
		),
		Resources: jsii.Strings("*"),
	}))

	return project
}

// Frontend deploy project: builds the static site from source plus the
// backend outputs, syncs it to the hosting bucket and invalidates the CDN.
func createFrontendProject(stack awscdk.Stack, props *PipelineProps) awscodebuild.PipelineProject {
	frontend := props.Frontend

	project := awscodebuild.NewPipelineProject(stack, jsii.String("FrontendDeployProject"), &awscodebuild.PipelineProjectProps{
		ProjectName: jsii.String(props.StackName + "-frontend"),
		Environment: &awscodebuild.BuildEnvironment{
			ComputeType: awscodebuild.ComputeType_SMALL,
			BuildImage:  awscodebuild.LinuxBuildImage_STANDARD_7_0(),
			EnvironmentVariables: &map[string]*awscodebuild.BuildEnvironmentVariable{
				"BUCKET_NAME": {
					Value: frontend.Bucket.BucketName(),
				},
				"DISTRIBUTION_ID": {
					Value: frontend.Distribution.DistributionId(),
				},
			},
		},
		BuildSpec: awscodebuild.BuildSpec_FromObject(&map[string]interface{}{
			"version": "0.2",
			"phases": map[string]interface{}{
				"install": map[string]interface{}{
					"commands": []string{
						"npm ci",
					},
				},
				"pre_build": map[string]interface{}{
					"commands": []string{
						fmt.Sprintf("cp $CODEBUILD_SRC_DIR_%s/%s .", backendArtifactName, backendOutputsFile),
						"cat " + backendOutputsFile,
					},
				},
				"build": map[string]interface{}{
					"commands": []string{
						"npm run build",
					},
				},
				"post_build": map[string]interface{}{
					"commands": []string{
						"aws s3 sync dist/ s3://$BUCKET_NAME --delete",
						`aws cloudfront create-invalidation --distribution-id $DISTRIBUTION_ID --paths "/*"`,
					},
				},
			},
			"cache": map[string]interface{}{
				"paths": []string{"node_modules/**/*"},
			},
		}),
	})

	// Least privilege: this build touches the one bucket and the one
	// distribution, nothing else.
	frontend.Bucket.GrantReadWrite(project, nil)
	project.AddToRolePolicy(awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
		Effect:  awsiam.Effect_ALLOW,
		Actions: jsii.Strings("cloudfront:CreateInvalidation"),
		Resources: jsii.Strings(fmt.Sprintf("arn:aws:cloudfront::%s:distribution/%s",
			*stack.Account(), *frontend.Distribution.DistributionId())),
	}))

	return project
}
