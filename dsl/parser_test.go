package dsl_test

import (
	"testing"

	"github.com/ByLCY/ledger/dsl"
)

const sampleLayout = `
// 采购单版式
layout PurchaseOrder v1 {
  meta {
    title: "Purchase Order"
    keywords: [
      "purchase"
      "internal"
    ]
  }

  page A4 landscape margin 12mm 10mm {
    font: "Body"
    font-size: 9pt
  }

  budget compact extends a4-landscape {
    header: 20mm; info-section: 22mm
    row-calculation: 7mm
    summary: -1mm
  }

  budget plain {
    page-width: 210mm
  }
}
`

func TestParseLayoutFile(t *testing.T) {
	f, err := dsl.ParseString(sampleLayout)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if f.Name != "PurchaseOrder" || f.Version != "v1" {
		t.Fatalf("unexpected header: %s %s", f.Name, f.Version)
	}
	if len(f.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(f.Sections))
	}
	kinds := []string{"meta", "page", "budget", "budget"}
	for i, want := range kinds {
		if got := f.Sections[i].Kind(); got != want {
			t.Fatalf("section %d: expected %s, got %s", i, want, got)
		}
	}

	meta := f.Sections[0].Meta
	if got := meta.Block.Lookup("title").Value.Text(); got != "Purchase Order" {
		t.Fatalf("expected title, got %q", got)
	}
	kw := meta.Block.Lookup("keywords").Value.Strings()
	if len(kw) != 2 || kw[0] != "purchase" || kw[1] != "internal" {
		t.Fatalf("unexpected keywords: %v", kw)
	}

	page := f.Sections[1].Page
	if page.Spec.Size != "A4" {
		t.Fatalf("expected page size A4, got %s", page.Spec.Size)
	}
	if len(page.Spec.Params) != 4 {
		t.Fatalf("expected 4 page params, got %d", len(page.Spec.Params))
	}
	if page.Spec.Params[0].Value != "landscape" || page.Spec.Params[2].Value != "12mm" || page.Spec.Params[3].Type != "Number" {
		t.Fatalf("unexpected page params: %+v", page.Spec.Params)
	}
	if got := page.Block.Lookup("font-size").Value.Text(); got != "9pt" {
		t.Fatalf("expected font-size 9pt, got %q", got)
	}

	compact := f.Sections[2].Budget
	if compact.Name != "compact" || compact.Extends != "a4-landscape" {
		t.Fatalf("unexpected budget header: %+v", compact)
	}
	if len(compact.Block.Assignments) != 4 {
		t.Fatalf("expected 4 budget assignments, got %d", len(compact.Block.Assignments))
	}
	if got := compact.Block.Lookup("info-section").Value.Text(); got != "22mm" {
		t.Fatalf("semicolon separated assignment lost: %q", got)
	}
	if got := compact.Block.Lookup("summary").Value.Text(); got != "-1mm" {
		t.Fatalf("negative length should survive as expression text, got %q", got)
	}
	if compact.Block.Lookup("signature") != nil {
		t.Fatalf("absent key should yield nil")
	}

	if plain := f.Sections[3].Budget; plain.Extends != "" {
		t.Fatalf("budget without extends should have empty base, got %q", plain.Extends)
	}
}

func TestParseRejectsUnknownSection(t *testing.T) {
	_, err := dsl.ParseString(`layout X v1 { resources { a: 1 } }`)
	if err == nil {
		t.Fatalf("expected error for unknown section")
	}
}

func TestLookupLastWins(t *testing.T) {
	f, err := dsl.ParseString("layout X v1 {\n budget b { header: 1mm\n header: 2mm }\n}")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got := f.Sections[0].Budget.Block.Lookup("header").Value.Text(); got != "2mm" {
		t.Fatalf("expected later assignment to win, got %q", got)
	}
}
