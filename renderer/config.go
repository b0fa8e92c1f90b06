package renderer

import (
	"bytes"

	"github.com/Mattojjo/graphz/config"
	md "github.com/nao1215/markdown"
)

// ConfigMarkdown renders the effective configuration.
func ConfigMarkdown(cfg *config.Config) string {
	registry := cfg.RegistryFile
	if registry == "" {
		registry = "built-in"
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Configuration")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft},
		Header:    []string{"Setting", "Value"},
		Rows: [][]string{
			{"Tick interval", cfg.TickInterval.String()},
			{"Notification lifetime", cfg.NotificationLifetime.String()},
			{"Registry", registry},
			{"HTTP address", cfg.HTTPAddr},
			{"Log level", cfg.LogLevel},
			{"Log format", cfg.LogFormat},
		},
	})
	return doc.String()
}
