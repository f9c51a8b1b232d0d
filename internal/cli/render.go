package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ogurasousui/dwrecords/internal/core/employment"
	"github.com/ogurasousui/dwrecords/internal/core/worker"
)

var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")

	styleLabel  = lipgloss.NewStyle().Foreground(colorDim).Width(22)
	styleHeader = lipgloss.NewStyle().Foreground(colorHeader).Bold(true).Padding(0, 1)
	styleCell   = lipgloss.NewStyle().Padding(0, 1)
)

// categoryStyle は表示区分ごとの色を返します。
func categoryStyle(c employment.Category) lipgloss.Style {
	switch c {
	case employment.CategoryConfirmed, employment.CategoryReady:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case employment.CategoryApproaching:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case employment.CategoryAdverse:
		return lipgloss.NewStyle().Foreground(colorRed)
	case employment.CategoryEarly:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case employment.CategoryNeutral:
		return lipgloss.NewStyle().Foreground(colorDim)
	}
	return lipgloss.NewStyle()
}

func formatCalculation(status employment.Status, c employment.Calculation) string {
	presentation := employment.Classify(status, c.DaysWorked)
	display := employment.DisplayDaysWorked(c)

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(styleLabel.Render(label) + value + "\n")
	}

	row("Status", categoryStyle(presentation.Category).Render(presentation.Label))
	row("Days worked", fmt.Sprintf("%d (%s)", display, employment.FormatDuration(display)))
	if c.ActualDaysWorked != nil {
		row("Actual days worked", strconv.Itoa(*c.ActualDaysWorked))
	}
	if !c.IsResignedOrTerminated {
		row("Eligible for permanent", yesNo(c.IsEligibleForPermanent))
		row("Days until permanent", strconv.Itoa(c.DaysUntilPermanent))
	}

	return b.String()
}

func renderReviewTable(entries []*worker.EmploymentStatusResult) string {
	rows := make([][]string, 0, len(entries))
	categories := make([]employment.Category, 0, len(entries))
	for _, e := range entries {
		start := "-"
		if e.Worker.StartDate != nil {
			start = e.Worker.StartDate.Format(employment.DateLayout)
		}
		rows = append(rows, []string{
			e.Worker.WorkerCode,
			e.Worker.FullName,
			start,
			strconv.Itoa(e.DisplayDays),
			e.DisplayDuration,
			strconv.Itoa(e.Calculation.DaysUntilPermanent),
			e.Presentation.Label,
		})
		categories = append(categories, e.Presentation.Category)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("CODE", "NAME", "START", "DAYS", "DURATION", "UNTIL PERMANENT", "STATUS").
		Rows(rows...).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == table.HeaderRow {
				return styleHeader
			}
			if col == 6 && r >= 0 && r < len(categories) {
				return categoryStyle(categories[r]).Padding(0, 1)
			}
			return styleCell
		})

	return t.Render()
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
