package export

import (
	"fmt"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/listview/pkg/model"
)

const (
	chartWidth   = 800
	chartHeight  = 400
	chartMargin  = 50.0
	valueBuckets = 10
)

// SaveValueChart renders a histogram of item values as a PNG.
func SaveValueChart(items []model.Item, filename string) error {
	buckets, minVal, bucketWidth := bucketValues(items)

	maxCount := 0
	for _, n := range buckets {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetHexColor("#282a36")
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	dc.SetHexColor("#f8f8f2")
	dc.DrawString(fmt.Sprintf("Value distribution (%d items)", len(items)), chartMargin, 24)

	plotW := float64(chartWidth) - 2*chartMargin
	plotH := float64(chartHeight) - 2*chartMargin - 24
	baseY := float64(chartHeight) - chartMargin
	slot := plotW / float64(len(buckets))

	dc.SetHexColor("#6272a4")
	dc.SetLineWidth(1)
	dc.DrawLine(chartMargin, baseY, chartMargin+plotW, baseY)
	dc.Stroke()

	for i, n := range buckets {
		h := float64(n) / float64(maxCount) * plotH
		x := chartMargin + float64(i)*slot

		dc.SetHexColor("#bd93f9")
		dc.DrawRectangle(x+2, baseY-h, slot-4, h)
		dc.Fill()

		dc.SetHexColor("#f8f8f2")
		dc.DrawStringAnchored(fmt.Sprintf("%d", minVal+i*bucketWidth), x, baseY+16, 0, 0.5)
		if n > 0 {
			dc.DrawStringAnchored(fmt.Sprintf("%d", n), x+slot/2, baseY-h-10, 0.5, 0.5)
		}
	}

	return dc.SavePNG(filename)
}

// bucketValues splits item values into fixed-width buckets spanning the
// observed range. Values may be negative, so buckets start at the minimum.
func bucketValues(items []model.Item) (buckets []int, minVal, bucketWidth int) {
	buckets = make([]int, valueBuckets)
	if len(items) == 0 {
		return buckets, 0, 1
	}

	minVal, maxVal := items[0].Value, items[0].Value
	for _, it := range items {
		if it.Value < minVal {
			minVal = it.Value
		}
		if it.Value > maxVal {
			maxVal = it.Value
		}
	}

	bucketWidth = (maxVal-minVal)/valueBuckets + 1
	for _, it := range items {
		buckets[(it.Value-minVal)/bucketWidth]++
	}
	return buckets, minVal, bucketWidth
}
