package genome

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/fsutil"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func (m *Module) downloadGenome(ctx context.Context, in registry.Inputs) (registry.Outputs, error) {
	url, err := in.String(GenomeURL)
	if err != nil {
		return nil, err
	}
	name, err := in.String(GenomeName)
	if err != nil {
		return nil, err
	}
	root, err := in.String(DataRoot)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data root '%s': %w", root, err)
	}
	target := artifactPath(root, name, ".fa.gz")
	out := registry.Outputs{GenomePathGz: cty.StringVal(target)}

	logger := ctxlog.FromContext(ctx).With("path", target)
	exists, err := fsutil.FileExists(target)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Info("Genome archive already present, skipping download.")
		return out, nil
	}

	logger.Info("Downloading genome", "url", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create download request: %w", err)
	}
	resp, err := m.client().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute download request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download of %s failed with status: %s", url, resp.Status)
	}

	var written int64
	err = fsutil.WriteFileAtomic(target, func(w io.Writer) error {
		n, err := io.Copy(w, resp.Body)
		written = n
		if err != nil {
			return fmt.Errorf("failed to read download body: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Successfully downloaded genome", "bytes", written)
	return out, nil
}
