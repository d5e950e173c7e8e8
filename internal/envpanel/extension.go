package envpanel

import "envmanager/internal/host"

// ExtensionName identifies the panel in the shell's extension registry.
const ExtensionName = "envmanager.panel"

// MenuButton is the entry the panel adds to the host menu.
func MenuButton(d *Dialog) host.Button {
	return host.Button{
		Icon:    "▣",
		Label:   "Env",
		Tooltip: "Environment Manager",
		Key:     "e",
		Action:  d.Show,
	}
}

// Extension wires d into the host: the stylesheet on Init, the menu button on
// Setup, and fetch results through Update.
func Extension(d *Dialog) host.Extension {
	return host.Extension{
		Name: ExtensionName,
		Init: func(styles host.StyleInjector) {
			styles.InjectStylesheet(StylesheetName, Stylesheet())
		},
		Setup: func(menu host.Menu) {
			if !menu.AddButton(MenuButton(d)) {
				d.logger.Warn("envpanel.menu.unavailable", "Could not add menu button", map[string]interface{}{
					"menu": menu.Kind.String(),
				})
				return
			}
			d.logger.Debug("envpanel.menu.added", "Menu button added", map[string]interface{}{
				"menu": menu.Kind.String(),
			})
		},
		Update: d.Update,
	}
}
