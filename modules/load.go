package modules

import (
	"github.com/voltify-hq/voltify-sdk/modules/org"
	"github.com/voltify-hq/voltify-sdk/modules/sales"
	"github.com/voltify-hq/voltify-sdk/pkg/application"
)

// BuiltInModules is ordered: sales resolves org services out of the
// registry, so org registers first.
var BuiltInModules = []application.Module{
	org.NewModule(),
	sales.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := app.RegisterModule(module); err != nil {
			return err
		}
	}
	return nil
}
