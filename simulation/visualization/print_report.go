package visualization

import (
	"fmt"
	"io"
	"strings"
)

const defaultStyle = "\x1b[0m"
const boldStyle = "\x1b[1m"
const redColor = "\x1b[91m"
const greenColor = "\x1b[32m"
const cyanColor = "\x1b[36m"
const grayColor = "\x1b[90m"

const barWidth = 35

func PrintReport(w io.Writer, report *Report) {
	if report.NSamples() == 0 {
		fmt.Fprintln(w, "Got no results!")
		return
	}

	fmt.Fprintf(w, "%s%s%s: %d contests (%d won, %d infeasible, %d skipped) in %s\n", boldStyle, report.Name, defaultStyle, report.NSamples(), report.NWon(), report.NInfeasible(), report.NSkipped(), report.Duration)
	fmt.Fprintln(w)

	utility := report.UtilityStats()
	fmt.Fprintf(w, "%14s  Min: %10.3f | Max: %10.3f | Mean: %10.3f | StdDev: %10.3f\n", "Utility:", utility.Min, utility.Max, utility.Mean, utility.StdDev)

	units := report.WonUnitsStats()
	fmt.Fprintf(w, "%14s  Min: %10.0f | Max: %10.0f | Mean: %10.2f | StdDev: %10.3f\n", "Units won:", units.Min, units.Max, units.Mean, units.StdDev)

	allocated := report.AllocatedStats()
	fmt.Fprintf(w, "%14s  Min: %10.0f | Max: %10.0f | Mean: %10.2f | StdDev: %10.3f\n", "Companies:", allocated.Min, allocated.Max, allocated.Mean, allocated.StdDev)

	winColor := greenColor
	if report.WinRate() < 0.5 {
		winColor = redColor
	}
	fmt.Fprintf(w, "%14s  %s%.1f%%%s\n", "Win rate:", winColor, report.WinRate()*100, defaultStyle)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Mean allocation")
	slots := report.SlotUnits()
	for i, mean := range slots {
		label := fmt.Sprintf("slot %d", i+1)
		if i == len(slots)-1 {
			label = "custom"
		}
		filled := int(mean + 0.5)
		if filled > barWidth {
			filled = barWidth
		}
		bar := strings.Repeat(cyanColor+"+"+defaultStyle, filled) + strings.Repeat(grayColor+"."+defaultStyle, barWidth-filled)
		fmt.Fprintf(w, "  %8s: %s %.2f\n", label, bar, mean)
	}
}
