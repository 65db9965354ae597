/*
 * Copyright 2026 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Dracula theme colors.
const (
	draculaForeground = "#F8F8F2"
	draculaCyan       = "#8BE9FD"
	draculaGreen      = "#50FA7B"
	draculaPink       = "#FF79C6"
	draculaPurple     = "#BD93F9"
	draculaRed        = "#FF5555"
	draculaYellow     = "#F1FA8C"
	draculaComment    = "#6272A4"
)

type styles struct {
	focused lipgloss.Style
	help    lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	label   lipgloss.Style
	app     lipgloss.Style
}

func newStyles() styles {
	return styles{
		focused: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaPink)).
			Bold(true),
		help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaComment)),
		header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaCyan)).
			Bold(true).
			Padding(0, 1),
		cell: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaForeground)).
			Padding(0, 1),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(draculaYellow)),
		app: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(draculaCyan)).
			Foreground(lipgloss.Color(draculaForeground)),
	}
}

// renderTable prints rows under headers with a rounded lipgloss border.
func renderTable(headers []string, rows [][]string) {
	s := newStyles()

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple))).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}

			return s.cell
		}).
		Headers(headers...).
		Rows(rows...)

	fmt.Println(t.Render())
}

// renderKV prints a two-column detail view for a single record.
func renderKV(pairs [][2]string) {
	s := newStyles()

	width := 0
	for _, p := range pairs {
		if len(p[0]) > width {
			width = len(p[0])
		}
	}

	var b strings.Builder

	for _, p := range pairs {
		b.WriteString(s.label.Render(fmt.Sprintf("%-*s", width, p[0])))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}

	fmt.Print(b.String())
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}

	return "no"
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// mb renders a megabyte count with a unit, or "-" when unknown.
func mb(v int) string {
	if v <= 0 {
		return "-"
	}

	return strconv.Itoa(v) + " MB"
}
