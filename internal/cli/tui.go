package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/netlearn/pkg/pipeline"
	"github.com/matzehuels/netlearn/pkg/search"
)

// learnUpdateMsg carries one search progress update into the TUI.
type learnUpdateMsg search.Update

// learnDoneMsg signals that the pipeline finished (successfully or not).
type learnDoneMsg struct{}

// learnModel is the bubbletea model showing live search progress: a bar over
// ordering positions, the node being processed, and the running score.
type learnModel struct {
	cancel  context.CancelFunc
	update  search.Update
	started bool
	done    bool
}

func newLearnModel(cancel context.CancelFunc) learnModel {
	return learnModel{cancel: cancel}
}

func (m learnModel) Init() tea.Cmd {
	return nil
}

func (m learnModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case learnUpdateMsg:
		m.update = search.Update(msg)
		m.started = true
	case learnDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

const progressBarWidth = 30

func (m learnModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Learning structure"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q cancel"))
	b.WriteString("\n\n")

	if !m.started {
		b.WriteString(StyleDim.Render("  loading dataset..."))
		b.WriteString("\n")
		return b.String()
	}

	u := m.update
	filled := 0
	if u.Total > 0 {
		filled = (u.Position + 1) * progressBarWidth / u.Total
	}
	bar := StyleHighlight.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", progressBarWidth-filled))

	fmt.Fprintf(&b, "  %s %s\n", bar,
		StyleDim.Render(fmt.Sprintf("%d/%d", u.Position+1, u.Total)))
	fmt.Fprintf(&b, "  %s\n",
		StyleDim.Render(fmt.Sprintf("node %d · %d parents · family score %.4f", u.Node, u.Parents, u.Score)))

	return b.String()
}

// runLearnTUI executes the pipeline while showing live progress. Search
// updates stream into the program; pressing q cancels the underlying
// context, which stops the search between ordering positions.
func runLearnTUI(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (*pipeline.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newLearnModel(cancel), tea.WithOutput(os.Stderr))
	opts.Progress = func(u search.Update) {
		p.Send(learnUpdateMsg(u))
	}

	var (
		result  *pipeline.Result
		execErr error
		done    = make(chan struct{})
	)
	go func() {
		defer close(done)
		result, execErr = runner.Execute(ctx, opts)
		p.Send(learnDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return nil, err
	}
	cancel()
	<-done
	return result, execErr
}
