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
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptModel struct {
	input    textinput.Model
	styles   styles
	done     bool
	canceled bool
}

func newPromptModel() *promptModel {
	pi := textinput.New()
	pi.Placeholder = "Enter password"
	pi.EchoMode = textinput.EchoPassword
	pi.EchoCharacter = '•'
	pi.Focus()
	pi.Width = 40
	pi.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaCyan))
	pi.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaForeground))
	pi.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(draculaComment))

	return &promptModel{
		input:  pi,
		styles: newStyles(),
	}
}

func (*promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // Default case handles all unlisted keys
		switch keyMsg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		case tea.KeyEnter:
			if strings.TrimSpace(m.input.Value()) != "" {
				m.done = true
				return m, tea.Quit
			}
		}
	}

	return m, cmd
}

func (m *promptModel) View() string {
	if m.done || m.canceled {
		return ""
	}

	var content strings.Builder

	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		lipgloss.NewStyle().Foreground(lipgloss.Color(draculaPurple)).Render("🔒 "),
		m.styles.focused.Render("godrac: Controller Password"),
	)

	content.WriteString(title + "\n\n")
	content.WriteString(m.input.View())
	content.WriteString("\n\n")
	content.WriteString(m.styles.help.Render("Enter → connect | Ctrl+C/Esc → quit"))

	return m.styles.app.Align(lipgloss.Left).Render(content.String())
}

// PromptPassword runs the interactive password prompt and returns the
// entered value. Canceling the prompt is an error; every command needs
// credentials.
func PromptPassword() (string, error) {
	m := newPromptModel()

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return "", err
	}

	pm, ok := final.(*promptModel)
	if !ok || pm.canceled || !pm.done {
		return "", errPromptCanceled
	}

	return strings.TrimSpace(pm.input.Value()), nil
}
