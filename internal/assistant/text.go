package assistant

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/carboloom/carboloom/internal/habits"
)

var (
	hashtagPattern   = regexp.MustCompile(`#\w+`)
	quotePrefix      = regexp.MustCompile(`(?m)^> `)
	boldStars        = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldUnderscores  = regexp.MustCompile(`__(.*?)__`)
	italicStars      = regexp.MustCompile(`\*(.*?)\*`)
	italicUnderscore = regexp.MustCompile(`_(.*?)_`)
	extraBlankLines  = regexp.MustCompile(`\n{3,}`)
)

// cleanGeneratedText strips the markdown decoration models like to add.
func cleanGeneratedText(text string) string {
	cleaned := strings.TrimSpace(text)
	cleaned = hashtagPattern.ReplaceAllString(cleaned, "")
	cleaned = quotePrefix.ReplaceAllString(cleaned, "")
	cleaned = boldStars.ReplaceAllString(cleaned, "$1")
	cleaned = boldUnderscores.ReplaceAllString(cleaned, "$1")
	cleaned = italicStars.ReplaceAllString(cleaned, "$1")
	cleaned = italicUnderscore.ReplaceAllString(cleaned, "$1")
	cleaned = strings.TrimSpace(cleaned)

	if len(cleaned) >= 2 {
		first, last := cleaned[0], cleaned[len(cleaned)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			cleaned = cleaned[1 : len(cleaned)-1]
		}
	}

	cleaned = extraBlankLines.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

func formatHabitsForPrompt(h habits.DailyHabits) string {
	travel := make([]string, 0, len(h.Travel))
	for _, t := range h.Travel {
		travel = append(travel, fmt.Sprintf("%s: %gkm", t.Mode, t.Distance))
	}
	shopping := make([]string, 0, len(h.Shopping))
	for _, s := range h.Shopping {
		shopping = append(shopping, fmt.Sprintf("%s (%s)", s.Item, s.Material))
	}
	electronics := make([]string, 0, len(h.Electronics))
	for _, e := range h.Electronics {
		electronics = append(electronics, e.Item)
	}
	return fmt.Sprintf("The user's recent habits include: Travel -> %s. Clothing -> %s. Electronics -> %s.",
		joinOr(travel, "No travel logged."),
		joinOr(shopping, "No clothing shopping logged."),
		joinOr(electronics, "No electronics purchased."),
	)
}

func joinOr(parts []string, empty string) string {
	if len(parts) == 0 {
		return empty
	}
	return strings.Join(parts, ", ")
}

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore (all )?previous instructions`),
	regexp.MustCompile(`(?i)forget all previous`),
	regexp.MustCompile(`(?i)new instructions:`),
	regexp.MustCompile(`(?i)system:`),
	regexp.MustCompile(`(?i)you are now`),
	regexp.MustCompile(`(?i)pretend you are`),
}

const maxInputLength = 2000

// sanitizeInput redacts common prompt injection phrases and caps length.
func sanitizeInput(input string) string {
	sanitized := input
	for _, re := range injectionPatterns {
		sanitized = re.ReplaceAllString(sanitized, "[redacted]")
	}
	if runes := []rune(sanitized); len(runes) > maxInputLength {
		sanitized = string(runes[:maxInputLength]) + "..."
	}
	return sanitized
}
