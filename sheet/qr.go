package sheet

import (
	"fmt"
	"image/color"

	"github.com/boombuler/barcode/qr"

	"github.com/ByLCY/omrkit/layout"
)

// qrPayload identifies the template a printed sheet was generated from so a
// scanner can pick matching geometry.
func qrPayload(doc *layout.Document) string {
	return fmt.Sprintf("omr;v=%s;t=%s;q=%d;id=%s", doc.Version, doc.Variant, doc.QuestionCount, doc.Fingerprint)
}

// drawQR renders content as filled module rectangles inside the square
// (x, y, size), in builder units. Horizontal runs of dark modules are merged.
// It reports false when the content cannot be encoded.
func drawQR(b *layout.PageBuilder, content string, x, y, size float64) bool {
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return false
	}
	bounds := code.Bounds()
	n := bounds.Dx()
	if n == 0 || bounds.Dy() != n {
		return false
	}
	module := size / float64(n)
	b.Fill(x, y, size, size, layout.White)
	for row := 0; row < n; row++ {
		run := -1
		for col := 0; col <= n; col++ {
			on := col < n && dark(code.At(bounds.Min.X+col, bounds.Min.Y+row))
			switch {
			case on && run < 0:
				run = col
			case !on && run >= 0:
				b.Fill(x+float64(run)*module, y+float64(row)*module, float64(col-run)*module, module, layout.Black)
				run = -1
			}
		}
	}
	return true
}

func dark(c color.Color) bool {
	return color.GrayModel.Convert(c).(color.Gray).Y < 128
}
