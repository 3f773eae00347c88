package ui

import (
	"fmt"
	"strings"

	"guideme/pkg/ui/styles"
	"guideme/pkg/version"

	"github.com/mattn/go-runewidth"
)

// QuickPrompts are the canned starter questions, prefilled into the input
// with the digit keys while the welcome panel is showing.
var QuickPrompts = []string{
	"Tell me about the best time to visit India",
	"What are the must-visit destinations in India?",
	"Tell me about Indian cuisine and food",
	"What are the transport options in India?",
}

var quickPromptLabels = []string{
	"Best time to visit",
	"Must-visit places",
	"Indian cuisine",
	"Transport guide",
}

// WelcomePanel returns the welcome box shown before the first message and
// after the conversation is cleared.
func WelcomePanel() string {
	const boxWidth = 57 // Total inner width

	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return styles.WelcomeBorderStyle.Render("│") + content + strings.Repeat(" ", pad) + styles.WelcomeBorderStyle.Render("│")
	}

	centered := func(text string, style func(...string) string) string {
		w := runewidth.StringWidth(text)
		leftPad := (boxWidth - w) / 2
		if leftPad < 0 {
			leftPad = 0
		}
		return makeLine(strings.Repeat(" ", leftPad)+style(text), leftPad+w)
	}

	top := styles.WelcomeBorderStyle.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := styles.WelcomeBorderStyle.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	var lines []string
	lines = append(lines, top)
	lines = append(lines, centered("🧭 Welcome to Guide Me 🧭", styles.WelcomeTitleStyle.Render))
	lines = append(lines, centered("Your personal AI guide to exploring incredible India", styles.TextMutedStyle.Render))
	lines = append(lines, empty)

	header := "  Quick prompts:"
	lines = append(lines, makeLine(styles.WelcomeHeaderStyle.Render(header), runewidth.StringWidth(header)))

	for i, label := range quickPromptLabels {
		key := fmt.Sprintf("    %d  ", i+1)
		line := styles.WelcomeKeyStyle.Render(key) + styles.TextStyle.Render(label)
		lines = append(lines, makeLine(line, runewidth.StringWidth(key)+runewidth.StringWidth(label)))
	}

	lines = append(lines, empty)
	lines = append(lines, centered(version.Summary(), styles.WelcomeVersionStyle.Render))
	lines = append(lines, bottom)

	return strings.Join(lines, "\n")
}
