package utils

const (
	accountMask    = "****"
	accountVisible = 4
	accountDisplay = "Account: "
)

// MaskAccount keeps the last four characters of acct behind a fixed mask.
// Identifiers shorter than four characters are prefixed whole:
// "1234567890" -> "****7890", "12" -> "****12".
func MaskAccount(acct string) string {
	r := []rune(acct)
	if len(r) <= accountVisible {
		return accountMask + acct
	}
	return accountMask + string(r[len(r)-accountVisible:])
}

// AccountDisplay renders an identifier for user-facing text.
func AccountDisplay(acct string) string {
	return accountDisplay + MaskAccount(acct)
}
