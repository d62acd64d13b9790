package outbound

import "context"

// NotificationPort delivers organization emails.
// Callers treat failures as non-fatal.
type NotificationPort interface {
	// SendInvitation sends an invitation with the accept token.
	SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error

	// SendWelcome sends a welcome message after an invitation is accepted.
	SendWelcome(ctx context.Context, email, userName, orgName string) error
}
