package app

import (
	"github.com/vk/genomeprep/internal/config"
	"github.com/vk/genomeprep/internal/hcl_adapter"
	"github.com/vk/genomeprep/internal/registry"
	"github.com/vk/genomeprep/internal/yaml_adapter"
	"github.com/vk/genomeprep/modules/genome"
)

// coreModules are registered when NewApp is given no modules.
func coreModules() []registry.Module {
	return []registry.Module{&genome.Module{}}
}

// coreTargets are requested when the config names no targets.
var coreTargets = genome.FinalOutputs

func configLoaders() []config.Loader {
	return []config.Loader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
}
