package app

import (
	"errors"
	"fmt"

	"github.com/bethropolis/gotags/internal/logger"
	"github.com/bethropolis/gotags/internal/plugin"
	"github.com/bethropolis/gotags/plugins/gotags"
	"github.com/bethropolis/gotags/plugins/tagstats"
)

// defaultPlugins are loaded when Options.Plugins is nil.
var defaultPlugins = []func() plugin.Plugin{
	gotags.New,
	tagstats.New,
}

// registerPlugins registers one plugin per constructor. Failures do not
// stop the others.
func registerPlugins(pm *plugin.Manager, constructors []func() plugin.Plugin) error {
	var errs []error
	for _, newPlugin := range constructors {
		p := newPlugin()
		logger.Debugf("registering plugin: %s", p.Name())
		if err := pm.Register(p); err != nil {
			errs = append(errs, fmt.Errorf("failed to register plugin '%s': %w", p.Name(), err))
		}
	}
	return errors.Join(errs...)
}
