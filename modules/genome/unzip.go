package genome

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/fsutil"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func unzipReference(ctx context.Context, in registry.Inputs) (registry.Outputs, error) {
	src, err := in.String(GenomePathGz)
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

	target := artifactPath(root, name, ".fa")
	out := registry.Outputs{GenomePath: cty.StringVal(target)}

	logger := ctxlog.FromContext(ctx).With("path", target)
	exists, err := fsutil.FileExists(target)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Info("Reference already decompressed, skipping.")
		return out, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open genome archive '%s': %w", src, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read gzip header of '%s': %w", src, err)
	}
	defer zr.Close()

	logger.Info("Decompressing reference", "source", src)
	err = fsutil.WriteFileAtomic(target, func(w io.Writer) error {
		// io.Copy reads to EOF, which is where the gzip checksum is verified.
		if _, err := io.Copy(w, zr); err != nil {
			return fmt.Errorf("failed to decompress '%s': %w", src, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
