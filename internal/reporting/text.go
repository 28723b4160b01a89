package reporting

import (
	"fmt"
	"math"
	"strings"

	"ipv4-waitlist-lab/internal/domain"
)

// RenderText renders a single snapshot's statistics as a narrative report.
func RenderText(row *domain.AggregateRow) string {
	var sb strings.Builder

	sb.WriteString("### Current Waitlist Summary ###\n")
	fmt.Fprintf(&sb, "As of the most recent data, the waitlist has **%d requests**.\n", row.TotalRequests)
	sb.WriteString("The requests are for the following network sizes:\n")
	fmt.Fprintf(&sb, "* **/22:** %d requests\n", row.Requests22)
	fmt.Fprintf(&sb, "* **/23:** %d requests\n", row.Requests23)
	fmt.Fprintf(&sb, "* **/24:** %d requests\n", row.Requests24)
	sb.WriteString("\n---\n")

	sb.WriteString("### Queue Composition ###\n")
	fmt.Fprintf(&sb, "* **%d** flexible requests, **%d** exact requests (average flexibility %.2f)\n",
		row.FlexibleCount, row.ExactCount, row.AvgFlexibility)
	fmt.Fprintf(&sb, "* Average request age: **%.1f days** (median %.1f, oldest %.1f)\n",
		row.MeanAgeDays, row.MedianAgeDays, row.MaxAgeDays)
	sb.WriteString("\n---\n")

	sb.WriteString("### Historical Analysis ###\n")
	sb.WriteString("Over the analyzed period, an average of the following was cleared:\n")
	fmt.Fprintf(&sb, "* **%.1f** /22 blocks per quarter\n", row.AvgCleared22)
	fmt.Fprintf(&sb, "* **%.1f** /23 blocks per quarter\n", row.AvgCleared23)
	fmt.Fprintf(&sb, "* **%.1f** /24 blocks per quarter\n", row.AvgCleared24)
	sb.WriteString("\n---\n")

	sb.WriteString("### Estimated Wait Time ###\n")
	sb.WriteString("Based on the current queue and historical rates, here are the estimated wait times:\n")
	writeWait(&sb, 22, row.Requests22, row.AvgCleared22, row.Quarters22, row.Years22)
	writeWait(&sb, 23, row.Requests23, row.AvgCleared23, row.Quarters23, row.Years23)
	writeWait(&sb, 24, row.Requests24, row.AvgCleared24, row.Quarters24, row.Years24)

	return sb.String()
}

func writeWait(sb *strings.Builder, class, depth int, rate, quarters, years float64) {
	fmt.Fprintf(sb, "* **For a /%d network:**\n", class)
	fmt.Fprintf(sb, "    * There are **%d requests** in the queue.\n", depth)
	if math.IsInf(quarters, 1) {
		fmt.Fprintf(sb, "    * No /%d blocks have cleared in the analyzed period, so no wait time can be estimated.\n", class)
		return
	}
	fmt.Fprintf(sb, "    * At a rate of **%.1f blocks cleared per quarter**, the estimated wait time is approximately **%.0f quarters**, or **%.1f years**.\n",
		rate, quarters, years)
}
