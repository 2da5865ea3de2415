// Package adminview derives operator views from a snapshot of the
// record set. Every function here is a pure, read-only derivation:
// filtering, sorting, pagination, stats, and CSV export all operate on
// the slice they are given and never touch the store.
package adminview

import (
	"time"

	"github.com/purnalakshitha99/location-app/internal/model"
)

// Column identifiers, in declared display/export order.
const (
	ColName        = "name"
	ColEmail       = "email"
	ColMessage     = "message"
	ColSubmittedAt = "submittedAt"
	ColIP          = "ip"
	ColLocation    = "location"
	ColDevice      = "device"
)

// Columns is the declared column order used for display, export
// headers, and the visible-column mapping.
var Columns = []string{ColName, ColEmail, ColMessage, ColSubmittedAt, ColIP, ColLocation, ColDevice}

// timeDisplayFormat is the string representation of submission times
// used for filtering, sorting, and export.
const timeDisplayFormat = "2006-01-02 15:04:05"

// FieldString returns the string representation of one column of a
// submission, and whether the field is present at all. Records with no
// telemetry report ip/location/device as absent and degrade to blank.
func FieldString(sub *model.ContactSubmission, col string) (string, bool) {
	switch col {
	case ColName:
		return sub.Name, true
	case ColEmail:
		return sub.Email, true
	case ColMessage:
		return sub.Message, true
	case ColSubmittedAt:
		return sub.SubmittedAt.Format(timeDisplayFormat), true
	case ColIP:
		if sub.VisitorData == nil || sub.VisitorData.IP == "" {
			return "", false
		}
		return sub.VisitorData.IP, true
	case ColLocation:
		if sub.VisitorData == nil {
			return "", false
		}
		return sub.VisitorData.Location.Display(), true
	case ColDevice:
		if sub.VisitorData == nil {
			return "", false
		}
		return sub.VisitorData.DeviceDetails.UserAgent, true
	}
	return "", false
}

// ExportFilename names an export deterministically by the current date,
// e.g. submissions_2026-08-28.csv.
func ExportFilename(now time.Time) string {
	return "submissions_" + now.Format("2006-01-02") + ".csv"
}
