package aws

import (
	"context"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/apigatewayv2"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/storage"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// MaxPackageBytes is the largest archive Lambda accepts through S3.
const MaxPackageBytes = 250 << 20

// Profile describes the Lambda runtimes.
var Profile = domain.Profile{
	Provider: domain.ProviderAWS,
	Languages: map[domain.Language]string{
		domain.LanguagePython: ">= 3.8, < 3.13",
		domain.LanguageNodeJS: ">= 16",
	},
	MaxPackageBytes: MaxPackageBytes,
	Settle: domain.SettlePolicy{
		PollInterval: 2 * time.Second,
		PollTimeout:  2 * time.Minute,
	},
	FormatName: domain.FormatLambdaName,
	Runtime:    Runtime,
}

// Runtime returns the Lambda runtime identifier, e.g. python3.9 or nodejs18.x.
func Runtime(lang domain.Language, version string) string {
	if lang == domain.LanguageNodeJS {
		major, _, _ := strings.Cut(version, ".")
		return lang.String() + major + ".x"
	}
	return lang.String() + version
}

func init() {
	provider.Register(provider.Descriptor{
		Name:        domain.ProviderAWS,
		Profile:     Profile,
		Resolve:     Resolve,
		Deserialize: Deserialize,
		Connect:     Connect,
	})
}

// Connect loads an SDK configuration for the static credentials and opens the
// Lambda, IAM, API Gateway and S3 clients.
func Connect(ctx context.Context, cfg ports.DeploymentConfig, s provider.Session) (*provider.Backend, error) {
	c, ok := cfg.(*Config)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, ""), "provider", cfg.Provider().String())
	}

	creds := c.AWSCredentials()
	sdk, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(c.Region()),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(creds.AccessKey, creds.SecretKey, "")),
	)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "load aws configuration"), "region", c.Region())
	}

	st, err := storage.NewS3(ctx, storage.S3Options{
		Region:    c.Region(),
		AccessKey: creds.AccessKey,
		SecretKey: creds.SecretKey,
	}, s.Logger)
	if err != nil {
		return nil, err
	}

	client := NewClient(lambda.NewFromConfig(sdk), iam.NewFromConfig(sdk), apigatewayv2.NewFromConfig(sdk), st, c, s.Logger)
	return &provider.Backend{
		Client:  client,
		Storage: st,
		Invoker: client,
	}, nil
}
