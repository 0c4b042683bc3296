package regression

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	summaryTitleStyle = lipgloss.NewStyle().Bold(true)
	summaryCellStyle  = lipgloss.NewStyle().Padding(0, 1)
)

func formatStat(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// Summary は係数表（係数、標準誤差、t/z 値、p 値）と当てはめ統計量を返す
func (r *Regressor) Summary() (string, error) {
	if err := r.RequireFitted(r.name, "Summary"); err != nil {
		return "", err
	}

	var header strings.Builder
	for _, s := range r.fitStats {
		fmt.Fprintf(&header, "%-18s %s\n", s.label+":", formatStat(s.value))
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return summaryCellStyle }).
		Headers("", "coef", "std err", r.statName, fmt.Sprintf("P>|%s|", r.statName))
	for i, name := range r.names {
		tbl.Row(name,
			formatStat(r.params[i]),
			formatStat(r.stderr[i]),
			formatStat(r.tvalues[i]),
			formatStat(r.pvalues[i]))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		summaryTitleStyle.Render(r.name+" results"),
		strings.TrimRight(header.String(), "\n"),
		tbl.String(),
	), nil
}
