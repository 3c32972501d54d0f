package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aide-sh/aide/internal/logger"
	"github.com/aide-sh/aide/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := msg.Height - m.textarea.Height() - 4
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = newViewport(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(msg.Width)
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			if m.waiting {
				return m, nil
			}
			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			m.conv.Messages = append(m.conv.Messages, models.Human(input))
			m.textarea.Reset()
			m.waiting = true
			m.err = nil
			if m.ready {
				m.viewport.SetContent(m.renderTranscript())
				m.viewport.GotoBottom()
			}
			return m, tea.Batch(m.spinner.Tick, chatCmd(m.provider, m.conv.Messages))
		}

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.err = msg.err
			// Drop the unanswered message so the transcript and the
			// store never hold a dangling human turn.
			m.conv.Messages = m.conv.Messages[:len(m.conv.Messages)-1]
		} else {
			m.conv.Messages = append(m.conv.Messages, models.Assistant(msg.content))
			if err := m.store.SaveConversation(m.conv.ID, m.conv.Messages, ""); err != nil {
				logger.Error("Failed to save conversation", "id", m.conv.ID, "error", err)
				m.err = err
			}
		}
		if m.ready {
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)

	if m.ready {
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.waiting {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}
