package packager

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/faasbench/internal/adapters/fs"
)

// archiveEpoch is stamped on every entry so archives of equal trees are byte-identical.
var archiveEpoch = time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)

// writeArchive zips the tree below root into path and returns the archive size.
func writeArchive(root, path string) (int64, error) {
	//nolint:gosec // archive path is built by the packager
	out, err := os.Create(path)
	if err != nil {
		return 0, packagingWrap(err, "create archive", path)
	}

	zw := zip.NewWriter(out)
	for file, err := range fs.NewWalker().WalkFiles(root, nil) {
		if err != nil {
			_ = out.Close()
			return 0, packagingWrap(err, "walk staging directory", root)
		}
		if err := addFile(zw, root, file); err != nil {
			_ = out.Close()
			return 0, err
		}
	}

	if err := zw.Close(); err != nil {
		_ = out.Close()
		return 0, packagingWrap(err, "finish archive", path)
	}
	if err := out.Close(); err != nil {
		return 0, packagingWrap(err, "close archive", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, packagingWrap(err, "stat archive", path)
	}
	return info.Size(), nil
}

func addFile(zw *zip.Writer, root, file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return packagingWrap(err, "stat file", file)
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return packagingWrap(err, "relativize file", file)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return packagingWrap(err, "build archive header", file)
	}
	header.Name = filepath.ToSlash(rel)
	header.Method = zip.Deflate
	header.Modified = archiveEpoch

	w, err := zw.CreateHeader(header)
	if err != nil {
		return packagingWrap(err, "add archive entry", file)
	}

	//nolint:gosec // file comes from walking the staging directory
	in, err := os.Open(file)
	if err != nil {
		return packagingWrap(err, "open file", file)
	}
	defer in.Close() //nolint:errcheck // read-only file

	if _, err := io.Copy(w, in); err != nil {
		return packagingWrap(err, "write archive entry", file)
	}
	return nil
}
