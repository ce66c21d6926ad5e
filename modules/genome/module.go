// Package genome provides the reference-genome preparation steps: download
// a gzip-compressed FASTA file, decompress it, and list its chromosome
// header lines. Every step checks for its artifact on disk first and does
// no work when it already exists.
package genome

import (
	"net/http"
	"path/filepath"

	"github.com/vk/genomeprep/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Names of the config values and outputs the steps are wired by.
const (
	GenomeURL       = "genome_url"
	GenomeName      = "genome_name"
	DataRoot        = "data_root"
	GenomePathGz    = "genome_path_gz"
	GenomePath      = "genome_path"
	ChromosomesPath = "chromosomes_path"
)

// FinalOutputs are the names requested when running the whole pipeline.
var FinalOutputs = []string{ChromosomesPath}

// Module implements the registry.Module interface for this package.
type Module struct {
	// Client is used for downloads. http.DefaultClient when nil.
	Client *http.Client
}

// Register registers the genome steps.
func (m *Module) Register(r *registry.Registry) error {
	steps := []registry.StepDefinition{
		registry.NewStep("download_genome", m.downloadGenome).
			Requires(GenomeURL, GenomeName, DataRoot).
			Provides(GenomePathGz, cty.String),
		registry.NewStep("unzip_reference", unzipReference).
			Requires(GenomePathGz, GenomeName, DataRoot).
			Provides(GenomePath, cty.String),
		registry.NewStep("extract_chromosome_names", extractChromosomeNames).
			Requires(GenomePath, GenomeName, DataRoot).
			Provides(ChromosomesPath, cty.String),
	}
	for _, s := range steps {
		if err := r.Register(s); err != nil {
			return err
		}
	}
	return nil
}

func (m *Module) client() *http.Client {
	if m.Client != nil {
		return m.Client
	}
	return http.DefaultClient
}

// artifactPath returns <data_root>/<genome_name><suffix>.
func artifactPath(dataRoot, genomeName, suffix string) string {
	return filepath.Join(dataRoot, genomeName+suffix)
}
