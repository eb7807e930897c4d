// Package extract recognizes support-desk identifiers in free text by fixed
// patterns. A miss is an absence, never an error.
package extract

import "regexp"

var (
	// 10 digit phone number
	phonePattern = regexp.MustCompile(`\b\d{10}\b`)

	// 5 digit number followed by 3 uppercase letters
	orderIDPattern = regexp.MustCompile(`\b\d{5}[A-Z]{3}\b`)

	// 2 uppercase letters followed by 4 digits, the ticket format the model is
	// instructed to emit
	ticketNoPattern = regexp.MustCompile(`\b[A-Z]{2}\d{4}\b`)

	// text following the "Issue:" marker up to the next sentence terminator
	issuePattern = regexp.MustCompile(`Issue:\s*([^.]*)`)
)

// IssueNotFound is stored on the complaint when the model's reply carries a
// ticket number but no recognizable issue clause.
const IssueNotFound = "Issue details not found."

// PhoneNumber returns the first 10-digit run in text, or "" when absent.
func PhoneNumber(text string) string {
	return phonePattern.FindString(text)
}

// OrderID returns the first order code in text, or "" when absent.
func OrderID(text string) string {
	return orderIDPattern.FindString(text)
}

// TicketNo returns the first ticket code in text, or "" when absent.
func TicketNo(text string) string {
	return ticketNoPattern.FindString(text)
}

// Issue returns the issue description following the "Issue:" marker, or the
// IssueNotFound placeholder when no marker is present.
func Issue(text string) string {
	m := issuePattern.FindStringSubmatch(text)
	if m == nil {
		return IssueNotFound
	}
	return m[1]
}
