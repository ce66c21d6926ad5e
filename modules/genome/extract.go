package genome

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/genomeprep/internal/ctxlog"
	"github.com/vk/genomeprep/internal/fsutil"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

func extractChromosomeNames(ctx context.Context, in registry.Inputs) (registry.Outputs, error) {
	src, err := in.String(GenomePath)
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

	target := artifactPath(root, name, ".chromosomes.txt")
	out := registry.Outputs{ChromosomesPath: cty.StringVal(target)}

	logger := ctxlog.FromContext(ctx).With("path", target)
	exists, err := fsutil.FileExists(target)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.Info("Chromosome list already present, skipping.")
		return out, nil
	}

	f, err := os.Open(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference '%s': %w", src, err)
	}
	defer f.Close()

	var count int
	err = fsutil.WriteFileAtomic(target, func(w io.Writer) error {
		n, err := copyHeaderLines(w, f)
		count = n
		if err != nil {
			return fmt.Errorf("failed to extract headers from '%s': %w", src, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Extracted chromosome names", "count", count)
	return out, nil
}

// copyHeaderLines writes every line of r that starts with '>' to w, line
// ending included, and returns how many it wrote. Sequence lines can be
// arbitrarily long, so lines are read with ReadSlice rather than a Scanner.
func copyHeaderLines(w io.Writer, r io.Reader) (int, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	bw := bufio.NewWriter(w)

	count := 0
	atLineStart := true
	copying := false
	for {
		chunk, err := br.ReadSlice('\n')
		if len(chunk) > 0 {
			if atLineStart {
				copying = chunk[0] == '>'
				if copying {
					count++
				}
			}
			if copying {
				if _, werr := bw.Write(chunk); werr != nil {
					return count, werr
				}
			}
			atLineStart = chunk[len(chunk)-1] == '\n'
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, err
		}
	}
	return count, bw.Flush()
}
