package canvasrenderer

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"

	"github.com/ByLCY/ledger/document"
)

// barcodeDPMM is the raster resolution barcodes are scaled to before drawing.
const barcodeDPMM = 12

// encodeBarcode rasterises b at its printed size.
func encodeBarcode(b document.Barcode) (image.Image, error) {
	if b.Payload == "" {
		return nil, fmt.Errorf("barcode: empty payload")
	}
	var (
		code barcode.Barcode
		err  error
	)
	switch b.Symbology {
	case document.QR:
		code, err = qr.Encode(b.Payload, qr.M, qr.Auto)
	case document.Code39:
		code, err = code39.Encode(b.Payload, true, true)
	case document.EAN:
		code, err = ean.Encode(b.Payload)
	default:
		code, err = code128.Encode(b.Payload)
	}
	if err != nil {
		return nil, fmt.Errorf("barcode: encode %s %q: %w", b.Symbology, b.Payload, err)
	}

	w, h := barcodeSize(b)
	px, py := int(w*barcodeDPMM), int(h*barcodeDPMM)
	// 缩放尺寸不能小于码元数量
	bounds := code.Bounds()
	px = max(px, bounds.Dx())
	py = max(py, bounds.Dy())
	scaled, err := barcode.Scale(code, px, py)
	if err != nil {
		return nil, fmt.Errorf("barcode: scale %s: %w", b.Symbology, err)
	}
	return scaled, nil
}

// barcodeSize returns the drawn size in mm. QR codes are square.
func barcodeSize(b document.Barcode) (float64, float64) {
	w, h := b.Width, b.Height
	if b.Symbology == document.QR {
		side := 20.0
		switch {
		case w > 0 && h > 0:
			side = min(w, h)
		case w > 0:
			side = w
		case h > 0:
			side = h
		}
		return side, side
	}
	if w <= 0 {
		w = 40
	}
	if h <= 0 {
		h = 10
	}
	return w, h
}
