package services

import "strings"

// SanitizeAddress turns a project address into a filename stem: every
// character outside [A-Za-z0-9] becomes "_", and an empty address becomes
// "Untitled".
func SanitizeAddress(address string) string {
	if address == "" {
		return "Untitled"
	}
	var b strings.Builder
	for _, r := range address {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

func ExcelFilename(address string) string {
	return "Estimate_" + SanitizeAddress(address) + ".xlsx"
}

func ProposalFilename(address string) string {
	return "Proposal_" + SanitizeAddress(address) + ".pdf"
}

func ItemizedFilename(address string) string {
	return "Estimate_" + SanitizeAddress(address) + ".pdf"
}
