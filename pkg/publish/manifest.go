package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/eunmann/assoc-bench/internal/logctx"
)

// ManifestName is the object name of the run manifest.
const ManifestName = "manifest.json"

// File describes one uploaded report file.
type File struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	MD5Checksum string `json:"MD5checksum"`
	ContentType string `json:"contentType"`
}

// Manifest describes one published sweep.
type Manifest struct {
	RunID     string    `json:"runId"`
	Bucket    string    `json:"bucket"`
	CreatedAt time.Time `json:"createdAt"`
	Seed      int64     `json:"seed"`
	Sizes     []int     `json:"sizes"`
	Entries   []string  `json:"entries"`
	Files     []File    `json:"files"`
}

// ParseManifest parses a run manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if m.RunID == "" {
		return errors.New("manifest missing runId")
	}
	if m.Bucket == "" {
		return errors.New("manifest missing bucket")
	}
	if len(m.Files) == 0 {
		return errors.New("manifest has no files")
	}
	return nil
}

// Artifact is one report file waiting to be published.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Publish uploads every artifact under prefix/runID and then a manifest
// listing them. The manifest is written last so its presence means the
// run is complete.
func (c *Client) Publish(ctx context.Context, bucket, prefix string, m Manifest, artifacts []Artifact) (*Manifest, error) {
	if len(artifacts) == 0 {
		return nil, errors.New("nothing to publish")
	}

	log := logctx.FromContext(logctx.WithStr(ctx, "bucket", bucket))
	m.Bucket = bucket
	m.Files = m.Files[:0]
	for _, a := range artifacts {
		f, err := c.Upload(ctx, bucket, Key(prefix, m.RunID, a.Name), a.ContentType, a.Data)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("key", f.Key).Int64("size", f.Size).Msg("uploaded report file")
		m.Files = append(m.Files, f)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	mf, err := c.Upload(ctx, bucket, Key(prefix, m.RunID, ManifestName), "application/json", data)
	if err != nil {
		return nil, err
	}
	log.Info().Str("manifest", mf.Key).Int("files", len(m.Files)).Msg("published sweep")
	return &m, nil
}
