package models

// Transaction directions. Charges on the card are debits; payments and
// refunds are credits.
const (
	DirectionDebit  = "DBIT"
	DirectionCredit = "CRDT"
)

// Duplicate reasons, in detection precedence order.
const (
	DuplicateReasonFileHash        = "file_hash"
	DuplicateReasonFilename        = "filename"
	DuplicateReasonStatementPeriod = "statement_period"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionExportFile = 0644
)
