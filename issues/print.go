package issues

import (
	"fmt"
	"io"
	"strconv"
)

const (
	NotSet      = "Not set"
	NotAssigned = "Not assigned"

	maxDescriptionLength = 100
	truncatedLength      = 97
	ellipsis             = "..."
)

// Print renders each issue as an aligned block. Absent optional fields print
// a placeholder rather than being left out.
func Print(w io.Writer, list []Issue) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No issues found.")
		return err
	}

	if _, err := fmt.Fprintf(w, "\nFound %d issues:\n\n", len(list)); err != nil {
		return err
	}
	for i, issue := range list {
		if err := printIssue(w, i+1, issue); err != nil {
			return err
		}
	}
	return nil
}

func printIssue(w io.Writer, n int, issue Issue) error {
	lines := []struct {
		label string
		value string
	}{
		{"ID", displayID(issue)},
		{"Title", issue.Title},
		{"Status", orPlaceholder(issue.Status, NotSet)},
		{"Created at", orPlaceholder(issue.CreatedAt, NotSet)},
		{"Created by", orPlaceholder(issue.CreatedBy, NotSet)},
		{"Assigned to", orPlaceholder(issue.AssignedTo, NotAssigned)},
		{"Due date", orPlaceholder(issue.DueDate, NotSet)},
		{"Description", description(issue.Description)},
		{"Comments", intOrPlaceholder(issue.CommentCount)},
		{"Attachments", intOrPlaceholder(issue.AttachmentCount)},
		{"Updated at", orPlaceholder(issue.UpdatedAt, NotSet)},
	}

	if _, err := fmt.Fprintf(w, "Issue %d:\n", n); err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "  %-12s %s\n", l.label+":", l.value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func displayID(issue Issue) string {
	if issue.DisplayID == nil {
		return fmt.Sprintf("%s (%s)", NotSet, issue.ID)
	}
	return fmt.Sprintf("%d (%s)", *issue.DisplayID, issue.ID)
}

// TruncateDescription shortens text longer than 100 characters to its first
// 97 characters followed by "...". Length is counted in runes.
func TruncateDescription(text string) string {
	r := []rune(text)
	if len(r) <= maxDescriptionLength {
		return text
	}
	return string(r[:truncatedLength]) + ellipsis
}

func description(d *string) string {
	if d == nil || *d == "" {
		return NotSet
	}
	return TruncateDescription(*d)
}

func orPlaceholder(v *string, placeholder string) string {
	if v == nil || *v == "" {
		return placeholder
	}
	return *v
}

func intOrPlaceholder(v *int) string {
	if v == nil {
		return NotSet
	}
	return strconv.Itoa(*v)
}
