package commands

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// VerifyCommand checks that the pieces the pipeline depends on actually
// exist: the deployed index document and the GitHub token secret.
func VerifyCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "verify",
		Usage: "Verify the hosting bucket holds the site and the token secret resolves",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "bucket",
				Aliases:  []string{"b"},
				Usage:    "Hosting bucket name (the SiteBucketNameOutput stack output)",
				Required: true,
				EnvVars:  []string{"BUCKET_NAME"},
			},
			&cli.StringFlag{
				Name:  "key",
				Usage: "Index document object key",
				Value: "index.html",
			},
			&cli.StringFlag{
				Name:     "secret",
				Aliases:  []string{"s"},
				Usage:    "Name of the GitHub token secret",
				Required: true,
				EnvVars:  []string{"GITHUB_TOKEN_SECRET_NAME"},
			},
		},
		Action: func(c *cli.Context) error {
			return verifyAction(c, logger)
		},
	}
}

func verifyAction(c *cli.Context, logger *zerolog.Logger) error {
	ctx := c.Context

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	bucket := c.String("bucket")
	key := c.String("key")
	head, err := s3.NewFromConfig(cfg).HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("head s3://%s/%s: %w", bucket, key, err)
	}
	logger.Info().
		Str("bucket", bucket).
		Str("key", key).
		Int64("size", aws.ToInt64(head.ContentLength)).
		Msg("Index document present")

	secretName := c.String("secret")
	secret, err := secretsmanager.NewFromConfig(cfg).DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(secretName),
	})
	if err != nil {
		return fmt.Errorf("describe secret %s: %w", secretName, err)
	}
	logger.Info().
		Str("secret", aws.ToString(secret.Name)).
		Str("arn", aws.ToString(secret.ARN)).
		Msg("Token secret resolvable")

	return nil
}
