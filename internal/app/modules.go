package app

import (
	"github.com/vk/seriesreg/internal/registry"
	"github.com/vk/seriesreg/modules/poissonseries"
	"github.com/vk/seriesreg/modules/polynomial"
)

// coreModules is the definitive list of all engine modules that are compiled
// into the seriesreg binary.
var coreModules = []registry.Module{
	&polynomial.Module{},
	&poissonseries.Module{},
}
