package models

// reconcile one transfer against the provider's current view
type ReconcileTransferArgs struct {
	ExternalTransferId string `json:"external_transfer_id"`
}

func (ReconcileTransferArgs) Kind() string { return "reconcile_transfer" }

// periodic job that enqueues a reconcile task for every non-terminal transfer
type ReconcileSweepArgs struct{}

func (ReconcileSweepArgs) Kind() string { return "reconcile_sweep" }
