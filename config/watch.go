package config

import "github.com/fsnotify/fsnotify"

// Watch reports rewrites of the config file. Secret and DSN changes only
// take effect after a restart, so callers typically just log the event.
func (c *Config) Watch(notify func(file string)) {
	if c.v == nil {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) { notify(e.Name) })
	c.v.WatchConfig()
}
