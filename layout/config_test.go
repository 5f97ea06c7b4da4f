package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/ledger/document"
	"github.com/ByLCY/ledger/layout"
)

const purchaseLayout = `
layout PurchaseOrder v1 {
  meta {
    title: "Purchase Order"
    author: "Procurement"
    keywords: ["purchase", "internal"]
  }

  page A4 landscape margin 12mm 8mm {
    font: "Body"
    font-size: 9pt
  }

  budget compact extends a4-landscape {
    header: 20mm
    row-calculation: 2cm
    row-base: 10mm
  }

  budget tighter extends compact {
    safety-margin: 5mm
  }

  budget label {
    header: 5mm
    row-base: 5mm
    row-calculation: 5mm
  }
}
`

func TestLoadConfig(t *testing.T) {
	cfg, err := layout.LoadConfig(strings.NewReader(purchaseLayout))
	require.NoError(t, err)

	assert.Equal(t, "PurchaseOrder", cfg.Name)
	assert.Equal(t, "Purchase Order", cfg.Meta.Title)
	assert.Equal(t, "Procurement", cfg.Meta.Author)
	assert.Equal(t, []string{"purchase", "internal"}, cfg.Meta.Keywords)

	assert.Equal(t, 297.0, cfg.Settings.Width)
	assert.Equal(t, 210.0, cfg.Settings.Height)
	assert.Equal(t, document.Margin{Top: 12, Right: 8, Bottom: 12, Left: 8}, cfg.Settings.Margins)
	assert.Equal(t, 9.0, cfg.Settings.DefaultFontSize)

	compact := cfg.Budgets["compact"]
	assert.Equal(t, "compact", compact.Name)
	assert.Equal(t, 20.0, compact.Header)
	assert.Equal(t, 20.0, compact.RowCalculation)
	assert.Equal(t, layout.A4Landscape().InfoSection, compact.InfoSection, "unset keys come from the base")

	tighter := cfg.Budgets["tighter"]
	assert.Equal(t, 20.0, tighter.Header, "extends an earlier budget")
	assert.Equal(t, 5.0, tighter.SafetyMargin)

	label := cfg.Budgets["label"]
	assert.Equal(t, 297.0, label.PageWidth, "budgets without a base take the page size")
	assert.Equal(t, 210.0, label.PageHeight)

	assert.Equal(t, []string{"compact", "label", "tighter"}, cfg.BudgetNames())
	assert.Equal(t, "compact", cfg.Default().Name)
}

func TestConfigBudgetFallsBackToPreset(t *testing.T) {
	cfg, err := layout.LoadConfigString(purchaseLayout)
	require.NoError(t, err)

	b, err := cfg.Budget(layout.PresetContinuousForm)
	require.NoError(t, err)
	assert.Equal(t, layout.ContinuousForm(), b)

	_, err = cfg.Budget("missing")
	assert.ErrorIs(t, err, layout.ErrUnknownPreset)
}

func TestConfigDefaultWithoutBudgets(t *testing.T) {
	cfg, err := layout.LoadConfigString(`layout X v1 { page continuous { } }`)
	require.NoError(t, err)
	assert.Equal(t, 241.0, cfg.Settings.Width)
	assert.Equal(t, layout.A4Landscape().Name, cfg.Default().Name)
	assert.Equal(t, document.DefaultPageSettings().Margins, cfg.Settings.Margins)
}

func TestMarginForms(t *testing.T) {
	cases := map[string]document.Margin{
		"margin 5mm":                 {Top: 5, Right: 5, Bottom: 5, Left: 5},
		"margin 5mm 1cm":             {Top: 5, Right: 10, Bottom: 5, Left: 10},
		"margin 5mm 6mm 7mm":         {Top: 5, Right: 6, Bottom: 7, Left: 6},
		"margin 1mm 2mm 3mm 4mm":     {Top: 1, Right: 2, Bottom: 3, Left: 4},
		"margin 1mm 2mm 3mm 4mm 5mm": {Top: 1, Right: 2, Bottom: 3, Left: 4},
	}
	for spec, want := range cases {
		cfg, err := layout.LoadConfigString("layout X v1 { page A5 portrait " + spec + " { } }")
		require.NoError(t, err, spec)
		assert.Equal(t, want, cfg.Settings.Margins, spec)
		assert.Equal(t, 148.0, cfg.Settings.Width)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	cases := map[string]struct {
		src    string
		budget bool
	}{
		"syntax":          {src: `layout X v1 {`},
		"page size":       {src: `layout X v1 { page B7 { } }`},
		"font size":       {src: `layout X v1 { page A4 { font-size: big } }`},
		"unknown base":    {src: `layout X v1 { budget b extends letter { } }`},
		"unknown key":     {src: `layout X v1 { budget b extends a4-portrait { footer: 3mm } }`},
		"bad length":      {src: `layout X v1 { budget b extends a4-portrait { header: tall } }`},
		"duplicate":       {src: "layout X v1 {\n budget b extends a4-portrait { }\n budget b extends a4-portrait { }\n}"},
		"negative":        {src: `layout X v1 { budget b extends a4-portrait { summary: -1mm } }`, budget: true},
		"no room":         {src: `layout X v1 { budget b extends a4-portrait { header: 300mm } }`, budget: true},
		"row calculation": {src: `layout X v1 { budget b { header: 5mm } }`, budget: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := layout.LoadConfigString(tc.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, layout.ErrInvalidConfig)
			if tc.budget {
				assert.ErrorIs(t, err, layout.ErrInvalidBudget)
			}
		})
	}
}
