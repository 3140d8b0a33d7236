package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	// Parameter validation error messages
	ErrMsgInvalidLimit  = "Invalid limit parameter"
	ErrMsgInvalidItemID = "Invalid item id '%s'"
)

// Success messages for API responses
const (
	MsgUpgradeWon  = "Upgrade succeeded! Enjoy your new item."
	MsgUpgradeLost = "Upgrade failed. Better luck next time."
)
