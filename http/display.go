package http

import (
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"churnpredict/config"
)

// displaySnapshot is one consistent view of the display settings.
type displaySnapshot struct {
	config.DisplayConfig
	printer *message.Printer
}

// Display holds the current display settings. It is swapped atomically when
// the config file changes, so each request reads one snapshot.
type Display struct {
	current atomic.Pointer[displaySnapshot]
}

func NewDisplay(cfg config.DisplayConfig) *Display {
	d := &Display{}
	d.Set(cfg)
	return d
}

// Set publishes new display settings.
func (d *Display) Set(cfg config.DisplayConfig) {
	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		tag = language.English
	}
	d.current.Store(&displaySnapshot{
		DisplayConfig: cfg,
		printer:       message.NewPrinter(tag),
	})
}

func (d *Display) snapshot() *displaySnapshot {
	return d.current.Load()
}

// formatScore renders a probability with two decimals in the display locale.
func (s *displaySnapshot) formatScore(p float64) string {
	return s.printer.Sprintf("%.2f", p)
}

func (s *displaySnapshot) formatAmount(v float64) string {
	return s.printer.Sprintf("%.2f", v)
}
