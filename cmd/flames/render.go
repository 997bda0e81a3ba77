package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/baditaflorin/go_flames/internal/core/domain"
)

var (
	headingColor = color.New(color.FgMagenta, color.Bold)
	resultColor  = color.New(color.FgRed, color.Bold)
	mutedColor   = color.New(color.FgHiBlack)
	barColor     = color.New(color.FgMagenta)
	highlightBar = color.New(color.FgRed, color.Bold)
)

const barWidth = 40

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTrace(w io.Writer, trace []domain.Category) {
	labels := make([]string, len(trace))
	for i, c := range trace {
		labels[i] = string(c)
	}
	fmt.Fprintf(w, "%s %s\n", mutedColor.Sprint("Eliminated:"), strings.Join(labels, " → "))
}

// renderDistribution draws one bar per category; highlight is drawn in the
// result color.
func renderDistribution(w io.Writer, d domain.Distribution, highlight domain.Category) {
	for _, share := range d {
		n := int(share.Percent / 100 * barWidth * 3)
		if n > barWidth {
			n = barWidth
		}
		bar := barColor
		if share.Category == highlight {
			bar = highlightBar
		}
		fmt.Fprintf(w, "  %s %5.1f%% %s\n",
			share.Category,
			share.Percent,
			bar.Sprint(strings.Repeat("█", n)),
		)
	}
}
