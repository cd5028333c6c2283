package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/jsii-runtime-go"
)

// Static hosting resources: private bucket plus CloudFront front door
func createFrontendResources(stack awscdk.Stack, props *FrontendProps) *FrontendResources {
	bucket := createSiteBucket(stack, props)
	distribution := createSiteDistribution(stack, bucket)

	return &FrontendResources{
		Bucket:       bucket,
		Distribution: distribution,
		URL:          "https://" + *distribution.DistributionDomainName(),
	}
}

func createSiteBucket(stack awscdk.Stack, props *FrontendProps) awss3.Bucket {
	bucketProps := &awss3.BucketProps{
		// Only CloudFront reaches the bucket, via origin access control.
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		ObjectOwnership:   awss3.ObjectOwnership_BUCKET_OWNER_ENFORCED,
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		// Demo deployments tear down clean, contained objects included.
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
	}
	if props.BucketName != "" {
		bucketProps.BucketName = jsii.String(props.BucketName)
	}

	return awss3.NewBucket(stack, jsii.String("SiteBucket"), bucketProps)
}

func createSiteDistribution(stack awscdk.Stack, bucket awss3.Bucket) awscloudfront.Distribution {
	return awscloudfront.NewDistribution(stack, jsii.String("SiteDistribution"), &awscloudfront.DistributionProps{
		DefaultRootObject: jsii.String("index.html"),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(bucket, nil),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
		},
		// Client-side routing: unknown paths fall back to the SPA shell.
		ErrorResponses: &[]*awscloudfront.ErrorResponse{
			{
				HttpStatus:         jsii.Number(404),
				ResponseHttpStatus: jsii.Number(200),
				ResponsePagePath:   jsii.String("/index.html"),
			},
		},
	})
}
