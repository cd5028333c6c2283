package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodebuild"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipeline"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscodepipelineactions"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/jsii-runtime-go"
)

const (
	sourceArtifactName  = "SourceArtifact"
	backendArtifactName = "BackendOutput"
)

// Release pipeline: Source -> DeployBackend -> DeployFrontend
func createPipelineResources(stack awscdk.Stack, props *PipelineProps) *PipelineResources {
	githubSecret := createGithubSecret(stack, props.TokenSecretName)

	sourceArtifact := awscodepipeline.NewArtifact(jsii.String(sourceArtifactName), nil)
	backendArtifact := awscodepipeline.NewArtifact(jsii.String(backendArtifactName), nil)

	backendProject := createBackendProject(stack, props)
	frontendProject := createFrontendProject(stack, props)

	pipeline := createPipeline(stack, props, githubSecret,
		sourceArtifact, backendArtifact, backendProject, frontendProject)

	return &PipelineResources{
		Pipeline:        pipeline,
		BackendProject:  backendProject,
		FrontendProject: frontendProject,
	}
}

// The token value is resolved by the pipeline service at execution time;
// only the secret name is bound here.
func createGithubSecret(stack awscdk.Stack, secretName string) awssecretsmanager.ISecret {
	return awssecretsmanager.Secret_FromSecretNameV2(stack,
		jsii.String("GitHubTokenSecret"),
		jsii.String(secretName))
}

func createPipelineRole(stack awscdk.Stack) awsiam.Role {
	return awsiam.NewRole(stack, jsii.String("ReleasePipelineRole"), &awsiam.RoleProps{
		AssumedBy: awsiam.NewServicePrincipal(jsii.String("codepipeline.amazonaws.com"), nil),
	})
}

func createPipeline(stack awscdk.Stack, props *PipelineProps,
	githubSecret awssecretsmanager.ISecret,
	sourceArtifact awscodepipeline.Artifact, backendArtifact awscodepipeline.Artifact,
	backendProject awscodebuild.PipelineProject, frontendProject awscodebuild.PipelineProject) awscodepipeline.Pipeline {

	return awscodepipeline.NewPipeline(stack, jsii.String("ReleasePipeline"),
		&awscodepipeline.PipelineProps{
			PipelineName: jsii.String(props.StackName + "-pipeline"),
			Role:         createPipelineRole(stack),
			Stages: &[]*awscodepipeline.StageProps{
				createSourceStage(props, githubSecret, sourceArtifact),
				createBackendStage(sourceArtifact, backendArtifact, backendProject),
				createFrontendStage(sourceArtifact, backendArtifact, frontendProject),
			},
			CrossAccountKeys: jsii.Bool(false),
		})
}

func createSourceStage(props *PipelineProps, githubSecret awssecretsmanager.ISecret,
	sourceArtifact awscodepipeline.Artifact) *awscodepipeline.StageProps {
	return &awscodepipeline.StageProps{
		StageName: jsii.String("Source"),
		Actions: &[]awscodepipeline.IAction{
			awscodepipelineactions.NewGitHubSourceAction(&awscodepipelineactions.GitHubSourceActionProps{
				ActionName: jsii.String("Checkout"),
				Owner:      jsii.String(props.GithubOwner),
				Repo:       jsii.String(props.GithubRepo),
				Branch:     jsii.String(props.GithubBranch),
				OauthToken: githubSecret.SecretValue(),
				Output:     sourceArtifact,
				Trigger:    awscodepipelineactions.GitHubTrigger_WEBHOOK,
			}),
		},
	}
}

func createBackendStage(sourceArtifact awscodepipeline.Artifact,
	backendArtifact awscodepipeline.Artifact,
	backendProject awscodebuild.PipelineProject) *awscodepipeline.StageProps {
	return &awscodepipeline.StageProps{
		StageName: jsii.String("DeployBackend"),
		Actions: &[]awscodepipeline.IAction{
			awscodepipelineactions.NewCodeBuildAction(&awscodepipelineactions.CodeBuildActionProps{
				ActionName: jsii.String("DeployBackend"),
				Project:    backendProject,
				Input:      sourceArtifact,
				Outputs:    &[]awscodepipeline.Artifact{backendArtifact},
			}),
		},
	}
}

// The backend artifact rides along as an extra input so the stage dependency
// stays explicit rather than inferred.
func createFrontendStage(sourceArtifact awscodepipeline.Artifact,
	backendArtifact awscodepipeline.Artifact,
	frontendProject awscodebuild.PipelineProject) *awscodepipeline.StageProps {
	return &awscodepipeline.StageProps{
		StageName: jsii.String("DeployFrontend"),
		Actions: &[]awscodepipeline.IAction{
			awscodepipelineactions.NewCodeBuildAction(&awscodepipelineactions.CodeBuildActionProps{
				ActionName:  jsii.String("DeployFrontend"),
				Project:     frontendProject,
				Input:       sourceArtifact,
				ExtraInputs: &[]awscodepipeline.Artifact{backendArtifact},
			}),
		},
	}
}
