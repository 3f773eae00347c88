// Package styles provides the centralized theme for the guideme UI, so every
// component styles message content the same way.
package styles

import (
	"charm.land/lipgloss/v2"
)

// Color palette - ANSI 256 colors used throughout the application
var (
	// Primary accent color (saffron)
	ColorAccent = lipgloss.Color("214")

	// Text colors
	ColorText       = lipgloss.Color("252") // Primary text
	ColorTextMuted  = lipgloss.Color("245") // Secondary/muted text
	ColorTextBright = lipgloss.Color("15")  // Bright/highlighted text

	// Semantic colors
	ColorError   = lipgloss.Color("196") // Error messages
	ColorSuccess = lipgloss.Color("42")  // Success/confirmation messages

	// Code/syntax colors
	ColorCode   = lipgloss.Color("213") // Code text
	ColorCodeBg = lipgloss.Color("235") // Code background
	ColorLink   = lipgloss.Color("39")  // Anchors

	// Border colors
	ColorBorder = lipgloss.Color("214")
)

// Text styles
var (
	// TitleStyle for panel/section titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	// TextStyle for normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	// TextMutedStyle for secondary/helper text
	TextMutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// UserStyle for the user's own messages
	UserStyle = lipgloss.NewStyle().
			Foreground(ColorTextBright).
			Bold(true)
)

// Formatted message content styles, one per markup element.
var (
	StrongStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Bold(true)

	EmStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Italic(true)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CodeStyle = lipgloss.NewStyle().
			Foreground(ColorCode).
			Background(ColorCodeBg)

	CodeHeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	LinkStyle = lipgloss.NewStyle().
			Foreground(ColorLink).
			Underline(true)
)

// Feedback styles
var (
	// ErrorStyle for inline exchange errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	// SuccessStyle for confirmations ("Copied!")
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// FooterStyle for footer/help text
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	// BannerStyle for the validation status banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Welcome panel styles
var (
	// WelcomeBorderStyle for welcome box borders
	WelcomeBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("99"))

	// WelcomeTitleStyle for the welcome title
	WelcomeTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true)

	// WelcomeKeyStyle for quick prompt keys
	WelcomeKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")).
			Bold(true)

	// WelcomeHeaderStyle for section headers
	WelcomeHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("248"))

	// WelcomeVersionStyle for version info (dimmed)
	WelcomeVersionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("244"))
)
