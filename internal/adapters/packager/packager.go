// Package packager builds provider-deployable archives from benchmark source trees.
package packager

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"
	fsadapter "go.trai.ch/faasbench/internal/adapters/fs"
	"go.trai.ch/faasbench/internal/core/domain"
	"go.trai.ch/faasbench/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Packager = (*Packager)(nil)

// Packager implements ports.Packager with zip archives.
type Packager struct {
	logger ports.Logger
	hasher ports.Hasher
}

// New creates a new Packager.
func New(logger ports.Logger, hasher ports.Hasher) *Packager {
	return &Packager{logger: logger, hasher: hasher}
}

// Package stages req.Source below req.BuildDir, relocates the sources into the
// function directory and writes the archive next to the staging directory.
func (p *Packager) Package(ctx context.Context, req domain.PackageRequest) (*domain.CodePackage, error) {
	src := req.Source
	layout, ok := domain.LayoutFor(src.Language)
	if !ok {
		return nil, packagingError(domain.ErrUnsupportedLanguage, "language", src.Language.String())
	}

	staging := StagingDir(req)
	if err := p.stage(src.SourceDir, staging); err != nil {
		return nil, err
	}

	if _, err := os.Stat(filepath.Join(staging, layout.Handler)); err != nil {
		return nil, packagingError(domain.ErrMissingPackageFile, "file", layout.Handler)
	}

	if err := mergeManifest(staging, layout, src.LanguageVersion); err != nil {
		return nil, err
	}
	if err := relocate(staging, layout); err != nil {
		return nil, err
	}
	if req.BuildScript != "" {
		if err := writeBuildScript(staging, req.BuildScript); err != nil {
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hash, err := p.hasher.ComputeDirHash(staging, nil)
	if err != nil {
		return nil, errors.Join(domain.ErrPackaging, err)
	}

	archive := staging + ".zip"
	size, err := writeArchive(staging, archive)
	if err != nil {
		return nil, err
	}

	pkg := &domain.CodePackage{
		Benchmark:       src.Benchmark,
		Language:        src.Language,
		LanguageVersion: src.LanguageVersion,
		SourceDir:       src.SourceDir,
		StagingDir:      staging,
		ArtifactPath:    archive,
		Hash:            hash,
		Size:            size,
		Config:          src.Config,
	}
	p.logger.Info(fmt.Sprintf("created archive %s (%.2f MB)", archive, pkg.SizeMB()))
	return pkg, nil
}

// StagingDir returns <build>/<provider>/<benchmark>/<language>-<version>.
func StagingDir(req domain.PackageRequest) string {
	return filepath.Join(
		req.BuildDir,
		req.Provider.String(),
		req.Source.Benchmark,
		fmt.Sprintf("%s-%s", req.Source.Language, req.Source.LanguageVersion),
	)
}

func (p *Packager) stage(src, staging string) error {
	if err := os.RemoveAll(staging); err != nil {
		return packagingWrap(err, "clear staging directory", staging)
	}
	if err := os.MkdirAll(filepath.Dir(staging), domain.DirPerm); err != nil {
		return packagingWrap(err, "create build directory", staging)
	}

	err := copy.Copy(src, staging, copy.Options{
		Skip: func(info os.FileInfo, path, _ string) (bool, error) {
			return path != src && fsadapter.Ignored(info.Name(), nil), nil
		},
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
	})
	if err != nil {
		return packagingWrap(err, "copy sources", src)
	}
	return nil
}

// mergeManifest appends the manifest fragment of version to the generic
// manifest, separated by a newline. Missing fragments are not an error.
func mergeManifest(staging string, layout domain.PackageLayout, version string) error {
	name := layout.VersionManifest(version)
	if name == "" {
		return nil
	}

	//nolint:gosec // staging path is built by the packager
	fragment, err := os.ReadFile(filepath.Join(staging, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return packagingWrap(err, "read version manifest", name)
	}

	manifest := filepath.Join(staging, layout.Manifest)
	//nolint:gosec // staging path is built by the packager
	f, err := os.OpenFile(manifest, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return packagingWrap(err, "open manifest", layout.Manifest)
	}
	if _, err := f.Write(append([]byte("\n"), fragment...)); err != nil {
		_ = f.Close()
		return packagingWrap(err, "append manifest", layout.Manifest)
	}
	if err := f.Close(); err != nil {
		return packagingWrap(err, "close manifest", layout.Manifest)
	}
	return nil
}

// relocate moves every root entry except the layout's root files into the
// function directory and drops per-version manifests.
func relocate(staging string, layout domain.PackageLayout) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return packagingWrap(err, "list staging directory", staging)
	}

	tmp := filepath.Join(staging, ".faasbench-"+domain.FunctionDirName)
	if err := os.Mkdir(tmp, domain.DirPerm); err != nil {
		return packagingWrap(err, "create function directory", tmp)
	}

	for _, entry := range entries {
		name := entry.Name()
		from := filepath.Join(staging, name)
		switch {
		case layout.KeepsAtRoot(name):
			continue
		case layout.IsVersionManifest(name):
			if err := os.Remove(from); err != nil {
				return packagingWrap(err, "remove version manifest", name)
			}
		default:
			if err := os.Rename(from, filepath.Join(tmp, name)); err != nil {
				return packagingWrap(err, "move source", name)
			}
		}
	}

	final := filepath.Join(staging, domain.FunctionDirName)
	if err := os.Rename(tmp, final); err != nil {
		return packagingWrap(err, "rename function directory", final)
	}
	return nil
}

func writeBuildScript(staging, script string) error {
	path := filepath.Join(staging, domain.BuildScriptName)
	if err := os.WriteFile(path, []byte(script), domain.ExecPerm); err != nil {
		return packagingWrap(err, "write build script", path)
	}
	// WriteFile honours the umask.
	if err := os.Chmod(path, domain.ExecPerm); err != nil {
		return packagingWrap(err, "chmod build script", path)
	}
	return nil
}

func packagingError(kind error, key, value string) error {
	return errors.Join(domain.ErrPackaging, zerr.With(zerr.Wrap(kind, ""), key, value))
}

func packagingWrap(err error, op, path string) error {
	return errors.Join(domain.ErrPackaging, zerr.With(zerr.Wrap(err, op), "path", path))
}
