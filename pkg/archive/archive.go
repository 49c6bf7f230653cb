// Package archive unpacks package sources into a destination directory.
// It supports zip, tar (plain, gzip, xz, and zstd compressed) archives,
// and plain directories, dispatching on the filename suffix.
package archive

import (
	"archive/tar"
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/scarlettos/scpkg/pkg/errors"
	"github.com/scarlettos/scpkg/pkg/logging"
)

// Format identifies a supported archive format
type Format string

const (
	FormatZip    Format = "zip"
	FormatTar    Format = "tar"
	FormatTarGz  Format = "tar.gz"
	FormatTarXz  Format = "tar.xz"
	FormatTarZst Format = "tar.zst"
	FormatDir    Format = "dir"
)

// suffixes maps filename suffixes to formats. Longer suffixes are listed
// first so .tar.gz wins over .gz style matches.
var suffixes = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tar.xz", FormatTarXz},
	{".tar.zst", FormatTarZst},
	{".tgz", FormatTarGz},
	{".txz", FormatTarXz},
	{".tzst", FormatTarZst},
	{".tar", FormatTar},
	{".zip", FormatZip},
}

// DetectFormat determines the archive format of a source path. Directories
// are a supported source; anything else is matched by suffix.
func DetectFormat(sourcePath string) (Format, error) {
	if info, err := os.Stat(sourcePath); err == nil && info.IsDir() {
		return FormatDir, nil
	}

	name := strings.ToLower(filepath.Base(sourcePath))
	for _, s := range suffixes {
		if strings.HasSuffix(name, s.suffix) {
			return s.format, nil
		}
	}

	return "", errors.Newf(errors.ErrUnsupportedFormat, "unsupported archive format: %s", filepath.Base(sourcePath))
}

// FallbackName derives a package name from a source path by stripping the
// directory and the recognized archive suffix. It is used when a package
// ships no manifest.
func FallbackName(sourcePath string) string {
	base := filepath.Base(filepath.Clean(sourcePath))
	lower := strings.ToLower(base)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, s.suffix) {
			return base[:len(base)-len(s.suffix)]
		}
	}
	// Unknown suffixes and directories keep the base name
	if ext := filepath.Ext(base); ext != "" && ext != base {
		if info, err := os.Stat(sourcePath); err != nil || !info.IsDir() {
			return strings.TrimSuffix(base, ext)
		}
	}
	return base
}

// Extract unpacks sourcePath into destDir. destDir must already exist.
// Directory sources are copied recursively, merging with existing content.
func Extract(sourcePath, destDir string) error {
	logger := logging.GetLogger("archive")

	format, err := DetectFormat(sourcePath)
	if err != nil {
		return err
	}

	logger.Debug().
		Str("source", sourcePath).
		Str("format", string(format)).
		Str("dest", destDir).
		Msg("Extracting source")

	switch format {
	case FormatZip:
		return extractZip(sourcePath, destDir)
	case FormatTar, FormatTarGz, FormatTarXz, FormatTarZst:
		return extractTar(sourcePath, destDir, format)
	case FormatDir:
		return copyTree(sourcePath, destDir)
	default:
		return errors.Newf(errors.ErrUnsupportedFormat, "unsupported archive format: %s", filepath.Base(sourcePath))
	}
}

// confine joins name onto destDir and rejects entries that would escape it.
// Entries naming the destination itself ("." or "./") yield an empty path
// and are skipped by callers.
func confine(destDir, name string) (string, error) {
	destPath := filepath.Join(destDir, name)
	clean := filepath.Clean(destDir)
	if destPath == clean {
		return "", nil
	}
	if !strings.HasPrefix(destPath, clean+string(os.PathSeparator)) {
		return "", errors.Newf(errors.ErrExtractFailed, "archive entry escapes destination: %s", name)
	}
	return destPath, nil
}

// extractZip unpacks a zip archive
func extractZip(archivePath, destDir string) error {
	logger := logging.GetLogger("archive")

	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractFailed, "failed to open zip archive %s", archivePath)
	}
	defer func() { _ = reader.Close() }()

	for _, file := range reader.File {
		destPath, err := confine(destDir, file.Name)
		if err != nil {
			return err
		}
		if destPath == "" {
			continue
		}

		info := file.FileInfo()
		if info.IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExtractFailed, "failed to create directory %s", destPath)
			}
			continue
		}

		if !info.Mode().IsRegular() {
			logger.Debug().Str("entry", file.Name).Msg("Skipping non-regular zip entry")
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to create directory for %s", destPath)
		}

		srcFile, err := file.Open()
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to read zip entry %s", file.Name)
		}

		err = writeFileFrom(destPath, srcFile, info.Mode().Perm())
		_ = srcFile.Close()
		if err != nil {
			return err
		}

		if !file.Modified.IsZero() {
			_ = os.Chtimes(destPath, file.Modified, file.Modified)
		}
	}

	return nil
}

// extractTar unpacks a tar archive, decompressing according to format
func extractTar(archivePath, destDir string, format Format) error {
	logger := logging.GetLogger("archive")

	f, err := os.Open(archivePath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractFailed, "failed to open archive %s", archivePath)
	}
	defer func() { _ = f.Close() }()

	var tarReader *tar.Reader
	switch format {
	case FormatTarGz:
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to read gzip stream in %s", archivePath)
		}
		defer func() { _ = gzReader.Close() }()
		tarReader = tar.NewReader(gzReader)
	case FormatTarXz:
		xzReader, err := xz.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to read xz stream in %s", archivePath)
		}
		tarReader = tar.NewReader(xzReader)
	case FormatTarZst:
		zstdReader, err := zstd.NewReader(f)
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to read zstd stream in %s", archivePath)
		}
		defer zstdReader.Close()
		tarReader = tar.NewReader(zstdReader)
	default:
		tarReader = tar.NewReader(f)
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to read tar entry in %s", archivePath)
		}

		destPath, err := confine(destDir, header.Name)
		if err != nil {
			return err
		}
		if destPath == "" {
			continue
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExtractFailed, "failed to create directory %s", destPath)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExtractFailed, "failed to create directory for %s", destPath)
			}
			if err := writeFileFrom(destPath, tarReader, header.FileInfo().Mode().Perm()); err != nil {
				return err
			}
			if !header.ModTime.IsZero() {
				_ = os.Chtimes(destPath, header.ModTime, header.ModTime)
			}
		default:
			logger.Debug().Str("entry", header.Name).Msg("Skipping non-regular tar entry")
		}
	}

	return nil
}

// copyTree recursively copies a directory source into destDir, merging
// with whatever is already there
func copyTree(sourceDir, destDir string) error {
	logger := logging.GetLogger("archive")

	return filepath.WalkDir(sourceDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to walk source directory %s", sourceDir)
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to resolve %s", path)
		}
		if rel == "." {
			return nil
		}
		destPath := filepath.Join(destDir, rel)

		if d.IsDir() {
			if err := os.MkdirAll(destPath, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrExtractFailed, "failed to create directory %s", destPath)
			}
			return nil
		}

		if !d.Type().IsRegular() {
			logger.Debug().Str("entry", rel).Msg("Skipping non-regular file in source directory")
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to stat %s", path)
		}

		srcFile, err := os.Open(path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrExtractFailed, "failed to open %s", path)
		}

		err = writeFileFrom(destPath, srcFile, info.Mode().Perm())
		_ = srcFile.Close()
		if err != nil {
			return err
		}

		mtime := info.ModTime()
		_ = os.Chtimes(destPath, mtime, mtime)
		return nil
	})
}

// writeFileFrom streams r into a new file at destPath with the given mode
func writeFileFrom(destPath string, r io.Reader, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0644
	}
	outFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return errors.Wrapf(err, errors.ErrExtractFailed, "failed to create %s", destPath)
	}

	_, copyErr := io.Copy(outFile, r)
	closeErr := outFile.Close()
	if copyErr != nil {
		return errors.Wrapf(copyErr, errors.ErrExtractFailed, "failed to write %s", destPath)
	}
	if closeErr != nil {
		return errors.Wrapf(closeErr, errors.ErrExtractFailed, "failed to write %s", destPath)
	}

	// Archives created on other systems may carry masked modes; make sure
	// the result matches the entry's permission bits exactly.
	if err := os.Chmod(destPath, mode); err != nil {
		return errors.Wrapf(err, errors.ErrExtractFailed, "failed to set mode on %s", destPath)
	}

	return nil
}
