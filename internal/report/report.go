// Package report renders the student's progress as markdown and exports
// it to PDF.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"

	"github.com/kmatsui/studypal/internal/catalog"
	"github.com/kmatsui/studypal/internal/profile"
	"github.com/kmatsui/studypal/internal/qalog"
	"github.com/kmatsui/studypal/internal/studyplan"
)

// Summary is a snapshot of everything the progress report shows.
type Summary struct {
	Name              string
	Points            int
	Streak            int
	Badges            []catalog.Badge
	QuestionsAsked    int
	QuestionsAnswered int
	TodayPlan         *studyplan.StudyPlan
}

// Build collects the report summary from the profile, the question log and
// the plan engine. Without a profile there is nothing to report on.
func Build(profiles *profile.Store, log *qalog.Log, plans *studyplan.Engine) (Summary, bool) {
	current, ok := profiles.Profile()
	if !ok {
		return Summary{}, false
	}

	badges := make([]catalog.Badge, 0, len(current.Badges))
	for _, badgeID := range current.Badges {
		if badge, ok := catalog.BadgeByID(badgeID); ok {
			badges = append(badges, badge)
		}
	}

	summary := Summary{
		Name:              current.Name,
		Points:            current.Points,
		Streak:            current.Streak,
		Badges:            badges,
		QuestionsAsked:    log.QuestionCount(),
		QuestionsAnswered: log.AnsweredCount(),
	}
	if plan, ok := plans.TodayPlan(); ok {
		summary.TodayPlan = &plan
	}
	return summary, true
}

// RenderMarkdown renders the summary as a markdown document.
func RenderMarkdown(summary Summary) string {
	var builder strings.Builder

	fmt.Fprintf(&builder, "# Progress Report for %s\n\n", summary.Name)
	fmt.Fprintf(&builder, "- Points: %d\n", summary.Points)
	fmt.Fprintf(&builder, "- Streak: %d days\n", summary.Streak)
	fmt.Fprintf(&builder, "- Questions asked: %d\n", summary.QuestionsAsked)
	fmt.Fprintf(&builder, "- Questions answered: %d\n\n", summary.QuestionsAnswered)

	builder.WriteString("## Badges\n\n")
	if len(summary.Badges) == 0 {
		builder.WriteString("No badges earned yet.\n\n")
	} else {
		for _, badge := range summary.Badges {
			fmt.Fprintf(&builder, "- **%s**: %s\n", badge.Name, badge.Description)
		}
		builder.WriteString("\n")
	}

	builder.WriteString("## Today's Study Plan\n\n")
	if summary.TodayPlan == nil {
		builder.WriteString("No plan for today.\n")
	} else {
		for _, task := range summary.TodayPlan.Tasks {
			mark := " "
			if task.Completed {
				mark = "x"
			}
			fmt.Fprintf(&builder, "- [%s] %s\n", mark, task.Description)
		}
	}
	return builder.String()
}

// Export writes the summary as a markdown file in dir and converts it to
// PDF next to it. Returns the PDF path.
func Export(summary Summary, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
	}

	markdownPath := filepath.Join(dir, "progress.md")
	if err := os.WriteFile(markdownPath, []byte(RenderMarkdown(summary)), 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", markdownPath, err)
	}
	return convertMarkdownToPDF(markdownPath)
}

// convertMarkdownToPDF converts a markdown file to PDF. The PDF file is
// created next to the markdown file.
func convertMarkdownToPDF(markdownPath string) (string, error) {
	if !strings.HasSuffix(markdownPath, ".md") {
		return "", fmt.Errorf("input file must have .md extension: %s", markdownPath)
	}

	content, err := os.ReadFile(markdownPath)
	if err != nil {
		return "", fmt.Errorf("os.ReadFile(%s) > %w", markdownPath, err)
	}

	pdfPath := strings.TrimSuffix(markdownPath, ".md") + ".pdf"

	renderer := mdtopdf.NewPdfRenderer("P", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process(content); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}

	return absPath, nil
}
