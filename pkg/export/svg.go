package export

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/vanderheijden86/listview/pkg/model"
)

const (
	svgWidth   = 640
	svgHeight  = 360
	svgPadding = 48
)

// categoryColors matches the dark UI theme so exports look like the screen.
var categoryColors = map[model.Category]string{
	model.CategoryUrgent: "#ff5555",
	model.CategoryNormal: "#50fa7b",
	model.CategoryLow:    "#6272a4",
}

// SaveCategorySVG writes a bar chart of item counts per category.
func SaveCategorySVG(items []model.Item, filename string) error {
	counts := make(map[model.Category]int)
	maxCount := 0
	for _, it := range items {
		counts[it.Category]++
		if counts[it.Category] > maxCount {
			maxCount = counts[it.Category]
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	f, err := os.Create(filename)
	if err != nil {
		return err
	}

	canvas := svg.New(f)
	canvas.Start(svgWidth, svgHeight)
	canvas.Rect(0, 0, svgWidth, svgHeight, "fill:#282a36")
	canvas.Text(svgPadding, 28, fmt.Sprintf("Items by category (%d total)", len(items)),
		"font-family:monospace;font-size:14px;fill:#f8f8f2")

	cats := model.Categories()
	plotW := svgWidth - 2*svgPadding
	plotH := svgHeight - 2*svgPadding - 24
	slot := plotW / len(cats)
	barW := slot * 3 / 5
	baseY := svgHeight - svgPadding

	canvas.Line(svgPadding, baseY, svgPadding+plotW, baseY, "stroke:#6272a4;stroke-width:1")

	for i, cat := range cats {
		n := counts[cat]
		h := n * plotH / maxCount
		slotX := svgPadding + i*slot
		x := slotX + (slot-barW)/2

		canvas.Rect(x, baseY-h, barW, h, "fill:"+categoryColors[cat])
		canvas.Text(slotX+slot/2, baseY+18, string(cat),
			"font-family:monospace;font-size:12px;fill:#f8f8f2;text-anchor:middle")
		canvas.Text(slotX+slot/2, baseY-h-6, fmt.Sprintf("%d", n),
			"font-family:monospace;font-size:12px;fill:#f8f8f2;text-anchor:middle")
	}

	canvas.End()
	return f.Close()
}
