package visualization

import (
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"
)

const border = 5
const headerHeight = 60

const graphWidth = 300
const graphTextX = 60
const graphBinX = 65
const binHeight = 14
const binSpacing = 2
const maxBinLength = graphWidth - graphBinX

const unitWidth = 4
const slotHeight = 10
const allocationWidth = unitWidth * 70

const ReportCardWidth = border*3 + allocationWidth + graphWidth
const ReportCardHeight = 260

var utilityBoundaries = []float64{math.Inf(-1), -15, -5, -2, 0, 1, 2, 3, 4, 5, math.Inf(1)}
var utilityLabels = []string{"decline", "-15..-5", "-5..-2", "-2..0", "0..1", "1..2", "2..3", "3..4", "4..5", ">5"}

type SVGReport struct {
	SVG       *svg.SVG
	means     []float64
	winRates  []float64
	drawnCard int
}

func NewSVGReport(w io.Writer, numCards int) *SVGReport {
	s := svg.New(w)
	s.Start(ReportCardWidth, headerHeight+numCards*ReportCardHeight)
	return &SVGReport{
		SVG: s,
	}
}

func (r *SVGReport) DrawHeader(title string) {
	r.SVG.Text(border, 40, title, `text-anchor:start;font-size:32px;font-family:Helvetica Neue`)
}

func (r *SVGReport) Done() {
	r.SVG.Text(border, headerHeight+r.drawnCard*ReportCardHeight+20, r.summary(), `text-anchor:start;font-size:16px;font-family:Helvetica Neue`)
	r.SVG.End()
}

func (r *SVGReport) summary() string {
	mean, winRate := 0.0, 0.0
	for i := range r.means {
		mean += r.means[i]
		winRate += r.winRates[i]
	}
	if len(r.means) > 0 {
		mean /= float64(len(r.means))
		winRate /= float64(len(r.means))
	}
	return fmt.Sprintf("Cards: %d | Mean Utility: %.3f | Win Rate: %.1f%%", len(r.means), mean, winRate*100)
}

func (r *SVGReport) DrawReportCard(report *Report) {
	r.SVG.Translate(0, headerHeight+r.drawnCard*ReportCardHeight)

	r.drawAllocations(report)
	y := r.drawUtilityHistogram(report)
	r.drawText(report, y+binSpacing*4)

	r.means = append(r.means, report.UtilityStats().Mean)
	r.winRates = append(r.winRates, report.WinRate())
	r.drawnCard++

	r.SVG.Gend()
}

func (r *SVGReport) drawAllocations(report *Report) {
	y := border
	slots := report.SlotUnits()
	for i, mean := range slots {
		style := "fill:#333"
		if i == len(slots)-1 {
			style = "fill:#2a9d8f"
		}
		r.SVG.Rect(border, y, allocationWidth, slotHeight, "fill:#f7f7f7")
		r.SVG.Rect(border, y, int(mean*unitWidth), slotHeight, style)
		y += slotHeight + binSpacing
	}
}

func (r *SVGReport) drawUtilityHistogram(report *Report) int {
	utilities := report.Utilities()
	sort.Float64s(utilities)

	r.SVG.Translate(border*2+allocationWidth, border)
	yBottom := r.drawHistogram(binUp(utilityBoundaries, utilities), utilityLabels)
	r.SVG.Gend()

	return yBottom + border
}

func (r *SVGReport) drawText(report *Report, y int) {
	utility := report.UtilityStats()
	units := report.WonUnitsStats()

	lines := []string{
		fmt.Sprintf("%s: %d contests", report.Name, report.NSamples()),
		fmt.Sprintf("%.2fs (%.2f c/s)", report.Duration.Seconds(), report.SamplesPerSecond()),
		fmt.Sprintf("Won %d | Infeasible %d | Skipped %d", report.NWon(), report.NInfeasible(), report.NSkipped()),
	}
	statLines := []string{
		"Utility",
		fmt.Sprintf("...%.3f ± %.3f", utility.Mean, utility.StdDev),
		fmt.Sprintf("...%.3f - %.3f", utility.Min, utility.Max),
		"Units Won",
		fmt.Sprintf("...%.1f ± %.1f", units.Mean, units.StdDev),
	}

	r.SVG.Translate(border*2+allocationWidth, y)
	r.SVG.Gstyle("font-family:Helvetica Neue")
	r.SVG.Textlines(8, 8, lines, 13, 16, "#333", "start")
	r.SVG.Textlines(8, 64, statLines, 11, 14, "#333", "start")
	r.SVG.Gend()
	r.SVG.Gend()
}

func (r *SVGReport) drawHistogram(bins []float64, labels []string) int {
	y := 0
	for i, percentage := range bins {
		r.SVG.Rect(graphBinX, y, maxBinLength, binHeight, `fill:#eee`)
		r.SVG.Text(graphTextX, y+binHeight-4, labels[i], `text-anchor:end;font-size:10px;font-family:Helvetica Neue`)
		if percentage > 0 {
			r.SVG.Rect(graphBinX, y, int(percentage*float64(maxBinLength)), binHeight, `fill:#333`)
			r.SVG.Text(graphBinX+binSpacing, y+binHeight-4, fmt.Sprintf("%.1f%%", percentage*100.0), `text-anchor:start;font-size:10px;font-family:Helvetica Neue;fill:#fff`)
		}
		y += binHeight + binSpacing
	}

	return y
}

// binUp returns the fraction of sortedData falling in each (lower, upper] bin.
func binUp(binBoundaries []float64, sortedData []float64) []float64 {
	bins := make([]float64, len(binBoundaries)-1)
	if len(sortedData) == 0 {
		return bins
	}

	currentBin := 0
	for _, d := range sortedData {
		for currentBin < len(bins)-1 && binBoundaries[currentBin+1] < d {
			currentBin += 1
		}
		bins[currentBin] += 1
	}

	for i := range bins {
		bins[i] = bins[i] / float64(len(sortedData))
	}

	return bins
}
