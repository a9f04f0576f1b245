package export

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// Artifact is one checksummed output file.
type Artifact struct {
	Path   string `json:"path"`
	SHA256 string `json:"sha256"`
	Size   int64  `json:"size"`
}

type manifest struct {
	DatasetVersion string     `json:"dataset_version"`
	GeneratedAt    string     `json:"generated_at"`
	ArtifactCount  int        `json:"artifact_count"`
	Artifacts      []Artifact `json:"artifacts"`
}

// Manifest hashes every file under the output directory and writes
// manifest.json at its root. The manifest itself is excluded from the
// listing. Returns the number of artifacts recorded.
func Manifest(opts Options) (int, error) {
	artifacts := []Artifact{}

	err := filepath.WalkDir(opts.OutputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(opts.OutputDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "manifest.json" {
			return nil
		}
		sum, size, err := hashFile(path)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, Artifact{Path: rel, SHA256: sum, Size: size})
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("checksum walk: %w", err)
	}

	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].Path < artifacts[j].Path })

	m := manifest{
		DatasetVersion: opts.Version,
		GeneratedAt:    opts.GeneratedAt,
		ArtifactCount:  len(artifacts),
		Artifacts:      artifacts,
	}
	if err := writeJSONFile(filepath.Join(opts.OutputDir, "manifest.json"), m); err != nil {
		return 0, err
	}

	opts.logger().Info("wrote manifest", zap.Int("artifacts", len(artifacts)))
	return len(artifacts), nil
}

func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
