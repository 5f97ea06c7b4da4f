package layout

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/dsl"
)

// Config is the resolved content of a .layout file.
type Config struct {
	Name     string                `json:"name"`
	Version  string                `json:"version"`
	Meta     document.Meta         `json:"meta"`
	Settings document.PageSettings `json:"settings"`
	Budgets  map[string]Budget     `json:"budgets"`
	// order of declaration, used by Default
	order []string
}

// Budget returns a declared budget or, failing that, a built-in preset.
func (c *Config) Budget(name string) (Budget, error) {
	if c != nil {
		if b, ok := c.Budgets[name]; ok {
			return b, nil
		}
	}
	return PresetByName(name)
}

// Default returns the first declared budget. Files without budgets fall back
// to the preset matching the page orientation.
func (c *Config) Default() Budget {
	if c != nil && len(c.order) > 0 {
		return c.Budgets[c.order[0]]
	}
	if c != nil && c.Settings.Width > c.Settings.Height {
		return A4Landscape()
	}
	return A4Portrait()
}

// BudgetNames lists the declared budgets in sorted order.
func (c *Config) BudgetNames() []string {
	names := make([]string, 0, len(c.Budgets))
	for name := range c.Budgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadConfig parses a layout file and resolves its page settings and budgets.
// Every budget is validated here so a broken file fails before any document is built.
func LoadConfig(r io.Reader) (*Config, error) {
	file, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return Resolve(file)
}

// LoadConfigString is LoadConfig for in-memory sources.
func LoadConfigString(src string) (*Config, error) {
	return LoadConfig(strings.NewReader(src))
}

// Resolve turns a parsed layout file into a Config.
func Resolve(file *dsl.File) (*Config, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: empty layout file", ErrInvalidConfig)
	}
	cfg := &Config{
		Name:     file.Name,
		Version:  file.Version,
		Meta:     document.Meta{Creator: "ledger"},
		Settings: document.DefaultPageSettings(),
		Budgets:  map[string]Budget{},
	}

	for _, section := range file.Sections {
		switch {
		case section.Meta != nil:
			collectMeta(section.Meta.Block, &cfg.Meta)
		case section.Page != nil:
			settings, err := resolvePage(section.Page)
			if err != nil {
				return nil, err
			}
			cfg.Settings = settings
		}
	}

	// budgets are resolved after the page so a budget without a base inherits the paper size
	for _, section := range file.Sections {
		if section.Budget == nil {
			continue
		}
		bs := section.Budget
		if _, dup := cfg.Budgets[bs.Name]; dup {
			return nil, fmt.Errorf("%w: budget %q declared twice (line %d)", ErrInvalidConfig, bs.Name, bs.Pos.Line)
		}
		b, err := resolveBudget(bs, cfg)
		if err != nil {
			return nil, err
		}
		cfg.Budgets[bs.Name] = b
		cfg.order = append(cfg.order, bs.Name)
	}
	return cfg, nil
}

func collectMeta(block *dsl.Block, meta *document.Meta) {
	if block == nil {
		return
	}
	for _, a := range block.Assignments {
		switch strings.ToLower(a.Key) {
		case "title":
			meta.Title = a.Value.Text()
		case "author":
			meta.Author = a.Value.Text()
		case "subject":
			meta.Subject = a.Value.Text()
		case "creator":
			meta.Creator = a.Value.Text()
		case "keywords":
			meta.Keywords = a.Value.Strings()
		}
	}
}

var pageSizes = map[string][2]float64{
	"A4":         {210, 297},
	"A5":         {148, 210},
	"CONTINUOUS": {241, 140},
}

func resolvePage(section *dsl.PageSection) (document.PageSettings, error) {
	settings := document.DefaultPageSettings()
	size, ok := pageSizes[strings.ToUpper(section.Spec.Size)]
	if !ok {
		return settings, fmt.Errorf("%w: unsupported page size %q (line %d)", ErrInvalidConfig, section.Spec.Size, section.Pos.Line)
	}
	settings.Width, settings.Height = size[0], size[1]
	for _, token := range section.Spec.Params {
		switch token.Value {
		case "landscape":
			settings.Width, settings.Height = settings.Height, settings.Width
		case "portrait":
			if settings.Width > settings.Height {
				settings.Width, settings.Height = settings.Height, settings.Width
			}
		}
	}
	if m, ok := resolveMargin(section.Spec.Params); ok {
		settings.Margins = m
	}

	if section.Block != nil {
		if a := section.Block.Lookup("font"); a != nil {
			settings.FontName = a.Value.Text()
		}
		if a := section.Block.Lookup("font-size"); a != nil {
			l, ok := ParseLength(a.Value.Text())
			if !ok || l.Value <= 0 {
				return settings, fmt.Errorf("%w: invalid font-size %q (line %d)", ErrInvalidConfig, a.Value.Text(), a.Pos.Line)
			}
			settings.DefaultFontSize = l.ToPT()
		}
	}
	return settings, nil
}

// resolveMargin reads up to four lengths after the 'margin' keyword:
// 1 value sets all sides, 2 values are top/bottom then left/right,
// 3 values are top, left/right, bottom and 4 values go clockwise from top.
func resolveMargin(params []*dsl.Lexeme) (document.Margin, bool) {
	for i, token := range params {
		if token.Value != "margin" {
			continue
		}
		var vals []float64
		for j := i + 1; j < len(params) && len(vals) < 4; j++ {
			l, ok := ParseLength(params[j].Value)
			if !ok {
				break
			}
			vals = append(vals, l.ToMM())
		}
		switch len(vals) {
		case 1:
			v := vals[0]
			return document.Margin{Top: v, Right: v, Bottom: v, Left: v}, true
		case 2:
			return document.Margin{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, true
		case 3:
			return document.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, true
		case 4:
			return document.Margin{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, true
		}
	}
	return document.Margin{}, false
}

func resolveBudget(bs *dsl.BudgetSection, cfg *Config) (Budget, error) {
	var b Budget
	switch {
	case bs.Extends == "":
		b = Budget{PageWidth: cfg.Settings.Width, PageHeight: cfg.Settings.Height}
	default:
		base, ok := cfg.Budgets[bs.Extends]
		if !ok {
			preset, err := PresetByName(bs.Extends)
			if err != nil {
				return Budget{}, fmt.Errorf("%w: budget %q extends %q (line %d): %w", ErrInvalidConfig, bs.Name, bs.Extends, bs.Pos.Line, err)
			}
			base = preset
		}
		b = base
	}
	b.Name = bs.Name

	if bs.Block != nil {
		for _, a := range bs.Block.Assignments {
			field := budgetField(&b, a.Key)
			if field == nil {
				return Budget{}, fmt.Errorf("%w: budget %q: unknown key %q (line %d)", ErrInvalidConfig, bs.Name, a.Key, a.Pos.Line)
			}
			l, ok := ParseLength(a.Value.Text())
			if !ok {
				return Budget{}, fmt.Errorf("%w: budget %q: %s: invalid length %q (line %d)", ErrInvalidConfig, bs.Name, a.Key, a.Value.Text(), a.Pos.Line)
			}
			*field = l.ToMM()
		}
	}
	if err := b.Validate(); err != nil {
		return Budget{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return b, nil
}

func budgetField(b *Budget, key string) *float64 {
	switch strings.ToLower(key) {
	case "page-width":
		return &b.PageWidth
	case "page-height":
		return &b.PageHeight
	case "header":
		return &b.Header
	case "info-section":
		return &b.InfoSection
	case "table-header":
		return &b.TableHeader
	case "row-base":
		return &b.RowBase
	case "row-calculation":
		return &b.RowCalculation
	case "summary":
		return &b.Summary
	case "signature":
		return &b.Signature
	case "safety-margin":
		return &b.SafetyMargin
	default:
		return nil
	}
}
