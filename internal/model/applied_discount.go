package model

import "github.com/shopspring/decimal"

// DiscountState classifies the approval workflow position of a single item.
// It is derived from field presence on AppliedDiscount, never stored.
type DiscountState string

const (
	DiscountUnset        DiscountState = "UNSET"
	DiscountProposedBySE DiscountState = "PROPOSED_BY_SE"
	DiscountDecided      DiscountState = "DECIDED"
)

// Workflow status labels surfaced to the UI and the audit trail.
const (
	DiscountLabelNone       = "no discount"
	DiscountLabelPending    = "pending approval"
	DiscountLabelApproved   = "approved"
	DiscountLabelOverridden = "overridden"
)

// AppliedDiscount is the durable audit record of the two-role discount
// workflow for one item. A nil field means that role has not decided yet.
// Records accrete over time and are amended, never deleted.
type AppliedDiscount struct {
	SalesEngineerPercent *decimal.Decimal `json:"salesEngineer,omitempty"`
	SalesDirectorPercent *decimal.Decimal `json:"salesDirector,omitempty"`
}

// State derives the workflow state from field presence. A Sales Director
// decision marks the record Decided even if the Sales Engineer later
// re-proposes; the mismatch is surfaced via StatusLabel instead.
func (a AppliedDiscount) State() DiscountState {
	switch {
	case a.SalesDirectorPercent != nil:
		return DiscountDecided
	case a.SalesEngineerPercent != nil:
		return DiscountProposedBySE
	default:
		return DiscountUnset
	}
}

// EffectivePercent resolves the discount the pricing engine applies for the
// given viewer role. Sales Engineers always see their own proposal; Sales
// Directors see their decision, falling back to the pending SE proposal.
// An item with no record at all prices at 0%, never a manufacturer default.
func (a AppliedDiscount) EffectivePercent(role string) decimal.Decimal {
	switch role {
	case RoleSalesEngineer:
		if a.SalesEngineerPercent != nil {
			return *a.SalesEngineerPercent
		}
	case RoleSalesDirector:
		if a.SalesDirectorPercent != nil {
			return *a.SalesDirectorPercent
		}
		if a.SalesEngineerPercent != nil {
			return *a.SalesEngineerPercent
		}
	}
	return decimal.Zero
}

// StatusLabel computes the audit label from the SE/SD value comparison.
// Equal values mean the director approved the proposal; differing values mean
// an override — which also covers an SE re-proposal awaiting re-approval,
// since the stored layout cannot tell the two apart.
func (a AppliedDiscount) StatusLabel() string {
	switch a.State() {
	case DiscountUnset:
		return DiscountLabelNone
	case DiscountProposedBySE:
		return DiscountLabelPending
	default:
		if a.SalesEngineerPercent != nil && a.SalesEngineerPercent.Equal(*a.SalesDirectorPercent) {
			return DiscountLabelApproved
		}
		return DiscountLabelOverridden
	}
}

// AppliedDiscountLedger maps item id to its discount record for one document.
// The ledger is shared by every user with the document open.
type AppliedDiscountLedger map[string]AppliedDiscount

// PendingCount reports how many items have an SE proposal still awaiting a
// Sales Director decision.
func (l AppliedDiscountLedger) PendingCount() int {
	n := 0
	for _, a := range l {
		if a.State() == DiscountProposedBySE {
			n++
		}
	}
	return n
}
