package portal

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/justsurfingit/recruitment-tracker/internal/models"
)

const dateLayout = "Jan 2, 2006 15:04"

// RenderApplications writes apps as a table. The recruiter queue also shows who applied.
func RenderApplications(w io.Writer, apps []models.Application, withCandidate bool) error {
	if len(apps) == 0 {
		_, err := fmt.Fprintln(w, "No applications yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if withCandidate {
		fmt.Fprintln(tw, "ID\tCANDIDATE\tEMAIL\tPOSITION\tSTATUS\tUPDATED\tNOTES")
	} else {
		fmt.Fprintln(tw, "ID\tPOSITION\tCV\tSTATUS\tSUBMITTED\tNOTES")
	}
	for _, app := range apps {
		if withCandidate {
			fmt.Fprintf(tw, "%d\t%s (%s)\t%s\t%s\t%s\t%s\t%s\n",
				app.ID, app.FullName, app.CandidateName, app.Email, app.Position,
				StatusLabel(app.Status), formatTime(app.UpdatedAt), deref(app.Notes))
		} else {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
				app.ID, app.Position, deref(app.CVFilename),
				StatusLabel(app.Status), formatTime(app.CreatedAt), deref(app.Notes))
		}
	}
	return tw.Flush()
}

// StatusLabel capitalises a status for display.
func StatusLabel(s models.Status) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return strings.ReplaceAll(*s, "\n", " ")
}
