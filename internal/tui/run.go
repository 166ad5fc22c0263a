package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Result 返回 TUI 运行后的必要信息。
type Result struct {
	SessionID string
	Executed  int
}

// Run 封装 Bubble Tea 入口，返回最终的 UI 结果。
func Run(opts Options) (Result, error) {
	programOptions := []tea.ProgramOption{tea.WithMouseAllMotion()}
	if opts.AltScreen {
		programOptions = append(programOptions, tea.WithAltScreen())
	}
	program := tea.NewProgram(New(opts), programOptions...)
	m, err := program.Run()
	if err != nil {
		return Result{}, err
	}
	tuiModel, ok := m.(*Model)
	if !ok {
		return Result{}, errors.New("unexpected tui model")
	}
	tuiModel.log.WithField("executed", tuiModel.Executed()).Info("terminal closed")
	return Result{
		SessionID: tuiModel.SessionID(),
		Executed:  tuiModel.Executed(),
	}, nil
}
