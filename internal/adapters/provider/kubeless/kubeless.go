package kubeless

import (
	"context"
	"time"

	"go.trai.ch/faasbench/internal/adapters/kube"
	"go.trai.ch/faasbench/internal/adapters/provider"
	"go.trai.ch/faasbench/internal/adapters/storage"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

// MaxPackageBytes is the ConfigMap size limit functions are stored in.
const MaxPackageBytes = 1 << 20

// Profile describes the kubeless runtimes.
var Profile = domain.Profile{
	Provider: domain.ProviderKubeless,
	Languages: map[domain.Language]string{
		domain.LanguagePython: ">= 3.6, < 3.9",
		domain.LanguageNodeJS: ">= 10, < 15",
	},
	MaxPackageBytes: MaxPackageBytes,
	Settle: domain.SettlePolicy{
		CreateDelay:  5 * time.Second,
		UpdateDelay:  3 * time.Second,
		TriggerDelay: 3 * time.Second,
	},
	FormatName: domain.FormatKubernetesName,
	Runtime: func(lang domain.Language, version string) string {
		return lang.String() + version
	},
}

func init() {
	provider.Register(provider.Descriptor{
		Name:        domain.ProviderKubeless,
		Profile:     Profile,
		Resolve:     Resolve,
		Deserialize: Deserialize,
		Connect:     Connect,
	})
}

// Connect pins the kubeless CLI to the configured context and connects the
// MinIO storage when one is configured.
func Connect(ctx context.Context, cfg ports.DeploymentConfig, s provider.Session) (*provider.Backend, error) {
	c, ok := cfg.(*Config)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownProvider, ""), "provider", cfg.Provider().String())
	}

	env, cleanup, err := kube.Kubeconfig{}.Env(c.credentials.Context)
	if err != nil {
		return nil, err
	}

	backend := &provider.Backend{
		Client: NewClient(s.Runner, env, c.resources, s.Logger),
		Close: func() error {
			cleanup()
			return nil
		},
	}

	if st := c.resources.Storage; st.URL != "" {
		client, err := storage.NewS3(ctx, storage.S3Options{
			Endpoint:  storage.EndpointURL(st.URL),
			AccessKey: st.AccessKey,
			SecretKey: st.SecretKey,
		}, s.Logger)
		if err != nil {
			cleanup()
			return nil, err
		}
		backend.Storage = client
	}
	return backend, nil
}
