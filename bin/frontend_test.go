package main

import (
	"strings"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/assertions"
	"github.com/aws/jsii-runtime-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrontendTestStack(t *testing.T, props *FrontendProps) (awscdk.Stack, *FrontendResources) {
	t.Helper()

	app := awscdk.NewApp(nil)
	stack := awscdk.NewStack(app, jsii.String("FrontendTestStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{
			Account: jsii.String("123456789012"),
			Region:  jsii.String("us-east-1"),
		},
	})
	return stack, createFrontendResources(stack, props)
}

func TestFrontendURLDerivedFromDistributionDomain(t *testing.T) {
	_, frontend := newFrontendTestStack(t, &FrontendProps{})

	assert.True(t, strings.HasPrefix(frontend.URL, "https://"))
	assert.Equal(t, "https://"+*frontend.Distribution.DistributionDomainName(), frontend.URL)
}

func TestSiteBucketIsLockedDown(t *testing.T) {
	tests := []struct {
		name  string
		props *FrontendProps
	}{
		{name: "generated bucket name", props: &FrontendProps{}},
		{name: "explicit bucket name", props: &FrontendProps{BucketName: "acme-site-web"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack, _ := newFrontendTestStack(t, tt.props)
			template := assertions.Template_FromStack(stack, nil)

			template.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
				"PublicAccessBlockConfiguration": map[string]interface{}{
					"BlockPublicAcls":       true,
					"BlockPublicPolicy":     true,
					"IgnorePublicAcls":      true,
					"RestrictPublicBuckets": true,
				},
			})

			// Full teardown, contained objects included.
			template.HasResource(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
				"DeletionPolicy":      "Delete",
				"UpdateReplacePolicy": "Delete",
			})
			template.ResourceCountIs(jsii.String("Custom::S3AutoDeleteObjects"), jsii.Number(1))
		})
	}
}

func TestSiteBucketExplicitNameIsUsed(t *testing.T) {
	stack, _ := newFrontendTestStack(t, &FrontendProps{BucketName: "acme-site-web"})
	template := assertions.Template_FromStack(stack, nil)

	template.HasResourceProperties(jsii.String("AWS::S3::Bucket"), map[string]interface{}{
		"BucketName": "acme-site-web",
	})
}

func TestDistributionServesSinglePageApp(t *testing.T) {
	stack, _ := newFrontendTestStack(t, &FrontendProps{})
	template := assertions.Template_FromStack(stack, nil)

	template.HasResourceProperties(jsii.String("AWS::CloudFront::Distribution"), map[string]interface{}{
		"DistributionConfig": map[string]interface{}{
			"DefaultRootObject": "index.html",
			"DefaultCacheBehavior": map[string]interface{}{
				"ViewerProtocolPolicy": "redirect-to-https",
			},
			"CustomErrorResponses": []interface{}{
				map[string]interface{}{
					"ErrorCode":        404,
					"ResponseCode":     200,
					"ResponsePagePath": "/index.html",
				},
			},
		},
	})
}

func TestDistributionUsesOriginAccessControl(t *testing.T) {
	stack, _ := newFrontendTestStack(t, &FrontendProps{})
	template := assertions.Template_FromStack(stack, nil)

	template.ResourceCountIs(jsii.String("AWS::CloudFront::OriginAccessControl"), jsii.Number(1))
}

func TestFrontendSynthesisIsIdempotent(t *testing.T) {
	first, _ := newFrontendTestStack(t, &FrontendProps{BucketName: "acme-site-web"})
	second, _ := newFrontendTestStack(t, &FrontendProps{BucketName: "acme-site-web"})

	firstJSON := assertions.Template_FromStack(first, nil).ToJSON()
	secondJSON := assertions.Template_FromStack(second, nil).ToJSON()

	require.NotNil(t, firstJSON)
	require.NotNil(t, secondJSON)
	assert.Equal(t, *firstJSON, *secondJSON)
}
