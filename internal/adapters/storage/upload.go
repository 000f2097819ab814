package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"go.trai.ch/faasbench/internal/adapters/fs"
	"go.trai.ch/faasbench/internal/core/ports"
)

// UploadDirectory uploads every file below dir to bucket under prefix and
// reports progress on w. It returns the uploaded keys.
func UploadDirectory(ctx context.Context, st ports.Storage, bucket, prefix, dir string, w io.Writer) ([]string, error) {
	var files []string
	for name, err := range fs.NewWalker().WalkFiles(dir, nil) {
		if err != nil {
			return nil, storageError(err, "walk "+dir, bucket)
		}
		rel, err := filepath.Rel(dir, name)
		if err != nil {
			return nil, storageError(err, "walk "+dir, bucket)
		}
		files = append(files, rel)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("uploading to "+bucket),
		progressbar.OptionShowCount(),
	)
	defer func() { _ = bar.Finish() }()

	keys := make([]string, 0, len(files))
	for _, rel := range files {
		key := path.Join(prefix, filepath.ToSlash(rel))
		if err := uploadFile(ctx, st, bucket, key, filepath.Join(dir, rel)); err != nil {
			return keys, err
		}
		keys = append(keys, key)
		_ = bar.Add(1)
	}
	return keys, nil
}

func uploadFile(ctx context.Context, st ports.Storage, bucket, key, name string) error {
	f, err := os.Open(name) //nolint:gosec // paths come from walking the data directory
	if err != nil {
		return storageError(err, "open "+name, bucket)
	}
	defer func() { _ = f.Close() }()
	return st.Upload(ctx, bucket, key, f)
}
