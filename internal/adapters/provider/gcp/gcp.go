package gcp

import (
	"context"
	"strings"
	"time"

	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/storage"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
	"google.golang.org/api/option"
)

// MaxPackageBytes is the largest source archive Cloud Functions accepts.
const MaxPackageBytes = 100 << 20

// Profile describes the Cloud Functions runtimes.
var Profile = domain.Profile{
	Provider: domain.ProviderGCP,
	Languages: map[domain.Language]string{
		domain.LanguagePython: ">= 3.8, < 3.13",
		domain.LanguageNodeJS: ">= 16",
	},
	MaxPackageBytes: MaxPackageBytes,
	Settle: domain.SettlePolicy{
		PollInterval: 2 * time.Second,
		PollTimeout:  2 * time.Minute,
	},
	FormatName: domain.FormatCloudFunctionName,
	Runtime: func(lang domain.Language, version string) string {
		return lang.String() + strings.ReplaceAll(version, ".", "")
	},
}

func init() {
	provider.Register(provider.Descriptor{
		Name:        domain.ProviderGCP,
		Profile:     Profile,
		Resolve:     Resolve,
		Deserialize: Deserialize,
		Connect:     Connect,
	})
}

// Connect opens the Cloud Functions and Cloud Storage clients.
func Connect(ctx context.Context, cfg ports.DeploymentConfig, s provider.Session) (*provider.Backend, error) {
	c, ok := cfg.(*Config)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, ""), "provider", cfg.Provider().String())
	}

	creds := c.GCPCredentials()
	var opts []option.ClientOption
	if creds.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(creds.CredentialsFile))
	}
	api, err := NewFunctionsAPI(ctx, opts...)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "connect cloud functions"), "project", creds.ProjectID)
	}

	gcs, err := storage.NewGCS(ctx, storage.GCSOptions{
		ProjectID:       creds.ProjectID,
		Region:          c.Region(),
		CredentialsFile: creds.CredentialsFile,
	}, s.Logger)
	if err != nil {
		return nil, err
	}

	client := NewClient(api, gcs, c, s.Logger)
	return &provider.Backend{
		Client:  client,
		Storage: gcs,
		Invoker: client,
		Close:   gcs.Close,
	}, nil
}
