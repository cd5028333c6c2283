package config

import (
	"fmt"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

// Env holds everything the stack definition needs from the process
// environment. All pipeline fields are required on purpose: there is no
// sensible default for someone else's GitHub repository.
type Env struct {
	GithubOwner     string `env:"GITHUB_OWNER,required"`
	GithubRepo      string `env:"GITHUB_REPO,required"`
	GithubBranch    string `env:"GITHUB_BRANCH,required"`
	TokenSecretName string `env:"GITHUB_TOKEN_SECRET_NAME,required"`
	StackName       string `env:"STACK_NAME,required"`

	// Optional explicit bucket name; CloudFormation generates one when empty.
	SiteBucketName string `env:"SITE_BUCKET_NAME"`

	AccountID string `env:"ACCOUNT_ID"`
	Region    string `env:"AWS_REGION" envDefault:"us-east-1"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Env, error) {
	// A missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	var e Env
	if err := env.Parse(&e); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &e, nil
}
