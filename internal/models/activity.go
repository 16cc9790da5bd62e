package models

import "fmt"

// Activity identifies one of the balance-changing activity categories that sit
// between the beginning balance and payments. The iota order is the roll-forward
// order and must not change.
type Activity int

const (
	Charges Activity = iota
	AdminAdj
	BadDebtWO
	CharityAdj
	ContractualAdj
	DenialWO
)

var activityOrder = []Activity{Charges, AdminAdj, BadDebtWO, CharityAdj, ContractualAdj, DenialWO}

// Activities returns the activity categories in roll-forward order.
func Activities() []Activity {
	out := make([]Activity, len(activityOrder))
	copy(out, activityOrder)
	return out
}

// String returns the column header used for the activity amount.
func (a Activity) String() string {
	switch a {
	case Charges:
		return FieldCharges
	case AdminAdj:
		return FieldAdmin
	case BadDebtWO:
		return FieldBadDebt
	case CharityAdj:
		return FieldCharity
	case ContractualAdj:
		return FieldContractuals
	case DenialWO:
		return FieldDenials
	default:
		return fmt.Sprintf("Activity(%d)", int(a))
	}
}

// ReserveField returns the column header of the reserve counterpart, e.g. "Rsv: Charges".
func (a Activity) ReserveField() string {
	return FieldReservePrefix + a.String()
}
