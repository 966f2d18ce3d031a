package native

import (
	"github.com/specialistvlad/jsonlang/internal/registry"
	"github.com/specialistvlad/jsonlang/modules/arrayops"
	"github.com/specialistvlad/jsonlang/modules/convops"
	"github.com/specialistvlad/jsonlang/modules/ioops"
	"github.com/specialistvlad/jsonlang/modules/mathops"
	"github.com/specialistvlad/jsonlang/modules/predops"
	"github.com/specialistvlad/jsonlang/modules/strops"
	"github.com/specialistvlad/jsonlang/modules/sysops"
)

// coreModules is the definitive list of all operation families compiled
// into the provider.
var coreModules = []registry.Module{
	&ioops.Module{},
	&mathops.Module{},
	&strops.Module{},
	&arrayops.Module{},
	&sysops.Module{},
	&convops.Module{},
	&predops.Module{},
}
