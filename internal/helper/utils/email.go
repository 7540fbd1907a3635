package utils

import "strings"

// StudentEmail derives the outbound address for a student identifier:
// the identifier lowercased at the institute mail domain.
func StudentEmail(studentID, mailDomain string) string {
	studentID = strings.ToLower(strings.TrimSpace(studentID))
	mailDomain = strings.TrimPrefix(strings.TrimSpace(mailDomain), "@")
	if studentID == "" || mailDomain == "" {
		return ""
	}
	return studentID + "@" + mailDomain
}
