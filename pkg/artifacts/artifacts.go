// Package artifacts collects build outputs after a builder has run. Artifacts
// are copied under their logical names so downstream tooling never depends on
// the build tree layout, and whole artifact sets can be bundled into a
// compressed archive per target.
package artifacts

import (
	"archive/tar"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/chipbuild/chipbuild/pkg/builder"
	"github.com/chipbuild/chipbuild/pkg/errors"
	"github.com/chipbuild/chipbuild/pkg/logging"
)

// Copy copies every artifact of b into destDir under its logical name,
// preserving the source file mode. It returns the destination paths in
// stable order.
func Copy(b builder.Builder, destDir string) ([]string, error) {
	logger := logging.GetLogger("artifacts")

	outputs, err := b.Outputs()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create artifact directory %s", destDir)
	}

	var copied []string
	for _, name := range sortedNames(outputs) {
		destPath := filepath.Join(destDir, name)
		if err := copyFile(outputs[name], destPath); err != nil {
			return nil, err
		}

		logger.Info().
			Str("artifact", name).
			Str("dest", destPath).
			Msg("Copied artifact")
		copied = append(copied, destPath)
	}
	return copied, nil
}

// Archive bundles every artifact of b into destDir/<identifier>.tar.gz,
// storing each file under its logical name. It returns the archive path.
func Archive(b builder.Builder, destDir string) (string, error) {
	logger := logging.GetLogger("artifacts")

	outputs, err := b.Outputs()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create archive directory %s", destDir)
	}

	archivePath := filepath.Join(destDir, b.Identifier()+".tar.gz")
	f, err := os.Create(archivePath)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileCreate, "failed to create archive %s", archivePath)
	}

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for _, name := range sortedNames(outputs) {
		if err := addEntry(tw, name, outputs[name]); err != nil {
			_ = tw.Close()
			_ = gz.Close()
			_ = f.Close()
			return "", err
		}
	}

	// Close order matters: tar flushes into gzip, gzip into the file.
	if err := tw.Close(); err != nil {
		_ = gz.Close()
		_ = f.Close()
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to finalize archive %s", archivePath)
	}
	if err := gz.Close(); err != nil {
		_ = f.Close()
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to finalize archive %s", archivePath)
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileWrite, "failed to finalize archive %s", archivePath)
	}

	logger.Info().
		Str("archive", archivePath).
		Int("artifacts", len(outputs)).
		Msg("Created artifact archive")
	return archivePath, nil
}

func sortedNames(outputs builder.ArtifactMap) []string {
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func copyFile(sourcePath, destPath string) error {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "artifact not found: %s", sourcePath).
			WithDetail("dest", destPath)
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open artifact %s", sourcePath)
	}
	defer func() { _ = source.Close() }()

	dest, err := os.Create(destPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "failed to create %s", destPath)
	}
	defer func() { _ = dest.Close() }()

	if _, err := io.Copy(dest, source); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy artifact to %s", destPath)
	}

	if err := os.Chmod(destPath, info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to set mode on %s", destPath)
	}
	return nil
}

func addEntry(tw *tar.Writer, name, sourcePath string) error {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "artifact not found: %s", sourcePath).
			WithDetail("artifact", name)
	}

	header, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to describe artifact %s", sourcePath)
	}
	header.Name = name

	if err := tw.WriteHeader(header); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to add %s to archive", name)
	}

	source, err := os.Open(sourcePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to open artifact %s", sourcePath)
	}
	defer func() { _ = source.Close() }()

	if _, err := io.Copy(tw, source); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to add %s to archive", name)
	}
	return nil
}
