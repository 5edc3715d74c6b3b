package entity

const (
	OrderPending   = "pending"
	OrderReceived  = "received"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// NextStatuses maps each status to the statuses staff may move it to.
// pending is advanced by the payment webhook, never by staff, so its only
// staff exit is cancel.
var NextStatuses = map[string][]string{
	OrderPending:   {OrderCancelled},
	OrderReceived:  {OrderPreparing, OrderCancelled},
	OrderPreparing: {OrderReady, OrderCancelled},
	OrderReady:     {OrderCompleted, OrderCancelled},
	OrderCompleted: {},
	OrderCancelled: {},
}

func CanTransition(from, to string) bool {
	for _, s := range NextStatuses[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminalStatus(s string) bool {
	return s == OrderCompleted || s == OrderCancelled
}
