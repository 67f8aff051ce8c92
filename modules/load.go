package modules

import (
	"github.com/iota-uz/orgchart/modules/orgchart"
	"github.com/iota-uz/orgchart/pkg/application"
	"github.com/iota-uz/orgchart/pkg/configuration"
)

func BuiltInModules(conf *configuration.Configuration) []application.Module {
	return []application.Module{
		orgchart.NewModule(&orgchart.ModuleOptions{OrgChart: conf.OrgChart}),
	}
}

func Load(app application.Application, conf *configuration.Configuration, externalModules ...application.Module) error {
	return application.Load(app, append(BuiltInModules(conf), externalModules...)...)
}
