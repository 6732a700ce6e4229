package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/polltech/smarttutors/internal/domain/ledger"
)

// LedgerNotifier pushes balance changes to the owning user's sockets.
// Implements ledger.Notifier.
type LedgerNotifier struct {
	hub *Hub
}

// NewLedgerNotifier creates the ledger-to-hub bridge.
func NewLedgerNotifier(hub *Hub) *LedgerNotifier {
	return &LedgerNotifier{hub: hub}
}

func (n *LedgerNotifier) BalanceChanged(ctx context.Context, userID uuid.UUID, balance int, cause ledger.Cause) {
	n.hub.SendToUser(userID, &Event{
		Type:    EventBalanceChanged,
		Balance: balance,
		Cause:   string(cause),
	})
}
