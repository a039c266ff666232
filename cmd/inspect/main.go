// Command inspect loads a small built-in demonstration program, runs it to
// completion, and renders one static view of the resulting register
// snapshot and disassembly. It is not a debugger: there is no stepping,
// breakpoint, or REPL grammar here, only a quit key.
package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sixfive"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

type model struct {
	snapshot string
	disasm   []string
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("sixfive — register snapshot"))
	b.WriteString("\n")
	b.WriteString(m.snapshot)
	b.WriteString("\n")
	b.WriteString(headerStyle.Render("disassembly"))
	b.WriteString("\n")
	for _, line := range m.disasm {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render("press q to quit"))
	b.WriteString("\n")
	return b.String()
}

func main() {
	e, err := sixfive.Create(sixfive.MOS6502)
	if err != nil {
		fmt.Fprintln(os.Stderr, "create:", err)
		os.Exit(1)
	}

	// A = 0x42, written to zero page, then halt.
	e.LoadProgram(0x0600, []byte{0xA9, 0x42, 0x85, 0x0F, 0x00}, false)
	start := uint16(0x0600)
	if _, err := e.Run(&start); err != nil {
		fmt.Fprintln(os.Stderr, "run:", err)
		os.Exit(1)
	}

	snap := e.GetRegisterSnapshot()
	lines, _ := e.Disassemble(0x0600, 3)

	m := model{
		snapshot: fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X SP=%04X status=%08b",
			snap.ProgramCounter, snap.Accumulator, snap.XRegister, snap.YRegister,
			snap.StackPointer, snap.Status),
		disasm: lines,
	}

	if _, err := tea.NewProgram(m).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "inspect:", err)
		os.Exit(1)
	}
}
