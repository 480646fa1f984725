package report

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"quiz-reflect/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleReporter prints session progress for a human watching the loop.
// Styling follows the color profile of the writer, so output to a pipe or
// file stays plain text.
type ConsoleReporter struct {
	mu  sync.Mutex
	out io.Writer

	bannerStyle   lipgloss.Style
	approvedStyle lipgloss.Style
	issuesStyle   lipgloss.Style
	dimStyle      lipgloss.Style
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	r := lipgloss.NewRenderer(out)
	return &ConsoleReporter{
		out: out,
		bannerStyle: r.NewStyle().
			Foreground(lipgloss.Color("51")).
			Bold(true),
		approvedStyle: r.NewStyle().
			Foreground(lipgloss.Color("46")).
			Bold(true),
		issuesStyle: r.NewStyle().
			Foreground(lipgloss.Color("214")),
		dimStyle: r.NewStyle().
			Foreground(lipgloss.Color("245")),
	}
}

func (c *ConsoleReporter) InitialQuiz(_ string, quiz string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner("--- Initial Quiz Generated ---")
	c.println(quiz)
}

func (c *ConsoleReporter) Reflection(_ string, iteration, maxIterations int, critique string, approved bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner(fmt.Sprintf("--- Reflection Iteration %d/%d ---", iteration, maxIterations))
	if approved {
		c.println(c.approvedStyle.Render("Quiz approved by reflection agent."))
		return
	}
	c.println(c.issuesStyle.Render("Reflection found issues:"))
	c.println(critique)
}

func (c *ConsoleReporter) RegeneratedQuiz(_ string, _ int, quiz string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.banner("--- Regenerated Quiz ---")
	c.println(quiz)
}

func (c *ConsoleReporter) Finished(result *domain.SessionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !result.Approved {
		c.banner("Max iterations reached. Final quiz:")
		c.println(result.Quiz)
	}
	c.println(c.dimStyle.Render(fmt.Sprintf(
		"session %s: %d reflection(s), %d regeneration(s) in %s",
		result.ID, result.Reflections, result.Regenerations, result.Duration.Round(time.Millisecond),
	)))
}

func (c *ConsoleReporter) banner(title string) {
	c.println("\n" + c.bannerStyle.Render(title))
}

func (c *ConsoleReporter) println(s string) {
	fmt.Fprintln(c.out, strings.TrimRight(s, "\n"))
}

var _ domain.SessionObserver = (*ConsoleReporter)(nil)
