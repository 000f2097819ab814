package app

import (
	"context"
	"fmt"

	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/ui/style"
	"go.trai.ch/zerr"
)

// ShowConfig resolves the deployment configuration and prints it with
// secrets masked. No provider is contacted.
func (a *App) ShowConfig(ctx context.Context, opts Options) error {
	_, _, cfg, _, err := a.resolve(ctx, opts)
	if err != nil {
		return err
	}

	normalized, err := domain.Normalize(cfg.Serialize())
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigDecodeFailed.Error())
	}
	tree, ok := normalized.(map[string]any)
	if !ok {
		return zerr.With(zerr.Wrap(domain.ErrConfigDecodeFailed, ""), "provider", cfg.Provider().String())
	}

	if a.json {
		a.writeJSON(maskTree(tree))
		return nil
	}

	r := a.renderer()
	_, _ = fmt.Fprintln(a.out, style.Heading.Renderer(r).Render(cfg.Provider().String()))
	delete(tree, "name")
	renderTree(a.out, r, tree, 1)
	return nil
}
