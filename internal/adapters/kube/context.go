// Package kube reads kubeconfig files for the Kubernetes-based platforms.
package kube

import (
	"errors"
	"fmt"
	"os"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
	"k8s.io/client-go/tools/clientcmd"
)

// Kubeconfig loads the kubeconfig the platform CLIs would use.
type Kubeconfig struct {
	// ExplicitPath overrides the KUBECONFIG and ~/.kube/config lookup when set.
	ExplicitPath string
}

// CurrentContext returns the current context, or "" when none is configured.
func (k Kubeconfig) CurrentContext() (string, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = k.ExplicitPath

	cfg, err := rules.Load()
	if err != nil {
		return "", zerr.Wrap(err, "failed to load kubeconfig")
	}
	return cfg.CurrentContext, nil
}

// PinContext writes a private copy of the kubeconfig whose current context is
// name and returns its path. The caller removes the file with cleanup.
func (k Kubeconfig) PinContext(name string) (path string, cleanup func(), err error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	rules.ExplicitPath = k.ExplicitPath

	cfg, err := rules.Load()
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to load kubeconfig")
	}
	if _, ok := cfg.Contexts[name]; !ok {
		return "", nil, errors.Join(
			domain.ErrMissingCredentials,
			zerr.With(zerr.New("kubernetes context not found in kubeconfig"), "context", name),
		)
	}
	cfg.CurrentContext = name

	f, err := os.CreateTemp("", "faasbench-kubeconfig-*.yaml")
	if err != nil {
		return "", nil, zerr.Wrap(err, "failed to create kubeconfig copy")
	}
	path = f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", nil, zerr.Wrap(err, "failed to create kubeconfig copy")
	}
	if err := clientcmd.WriteToFile(*cfg, path); err != nil {
		_ = os.Remove(path)
		return "", nil, zerr.With(zerr.Wrap(err, "failed to write kubeconfig copy"), "path", path)
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// Env returns the environment pinning the platform CLIs to context. An empty
// context keeps the ambient kubeconfig and returns no variables.
func (k Kubeconfig) Env(context string) (env []string, cleanup func(), err error) {
	if context == "" {
		return nil, func() {}, nil
	}
	path, cleanup, err := k.PinContext(context)
	if err != nil {
		return nil, nil, err
	}
	return []string{"KUBECONFIG=" + path}, cleanup, nil
}

// LogAmbient reports the context a platform without credentials falls back to.
func (k Kubeconfig) LogAmbient(logger ports.Logger, p domain.Provider) {
	current, err := k.CurrentContext()
	if err != nil || current == "" {
		logger.Warn(fmt.Sprintf("no credentials found for %s and no current kubernetes context", p))
		return
	}
	logger.Info(fmt.Sprintf("no credentials found for %s, assuming ambient kubernetes context %s", p, current))
}
