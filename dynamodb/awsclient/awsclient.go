// Package awsclient builds AWS SDK v2 clients from connection options.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// Options holds the service connection settings.
type Options struct {
	Region string `yaml:"region,omitempty" json:"region,omitempty"`
	// Endpoint overrides the DynamoDB endpoint, e.g. for DynamoDB Local.
	Endpoint string `yaml:"endpoint,omitempty" json:"endpoint,omitempty" validate:"omitempty,url"`
	Profile  string `yaml:"profile,omitempty" json:"profile,omitempty"`

	AccessKeyID     string `yaml:"accessKeyId,omitempty" json:"accessKeyId,omitempty" validate:"required_with=SecretAccessKey"`
	SecretAccessKey string `yaml:"secretAccessKey,omitempty" json:"secretAccessKey,omitempty" validate:"required_with=AccessKeyID"`
}

// LoadConfig resolves the AWS configuration for opts.
//
// With a custom endpoint and no explicit keys, static "local" credentials are
// used since DynamoDB Local accepts any.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(opts.Profile))
	}

	switch {
	case opts.AccessKeyID != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	case opts.Endpoint != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider("local", "local", ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}
	return cfg, nil
}

// NewDynamoDB returns a DynamoDB client for cfg, pointed at endpoint when set.
func NewDynamoDB(cfg aws.Config, endpoint string) *dynamodb.Client {
	var clientOpts []func(*dynamodb.Options)
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	return dynamodb.NewFromConfig(cfg, clientOpts...)
}

// IdentityAPI is the STS call used by CallerIdentity. *sts.Client implements it.
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

var _ IdentityAPI = (*sts.Client)(nil)

// Identity describes the principal behind the configured credentials.
type Identity struct {
	Account string `json:"account" yaml:"account"`
	Arn     string `json:"arn" yaml:"arn"`
	UserID  string `json:"userId" yaml:"userId"`
}

// NewSTS returns an STS client for cfg.
func NewSTS(cfg aws.Config) *sts.Client {
	return sts.NewFromConfig(cfg)
}

// CallerIdentity asks STS who the credentials belong to.
func CallerIdentity(ctx context.Context, client IdentityAPI) (Identity, error) {
	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return Identity{}, fmt.Errorf("get caller identity: %w", err)
	}
	return Identity{
		Account: aws.ToString(out.Account),
		Arn:     aws.ToString(out.Arn),
		UserID:  aws.ToString(out.UserId),
	}, nil
}
