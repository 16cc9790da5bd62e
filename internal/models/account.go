package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is one patient account in a roll-forward extract.
//
// Source fields are populated by the loader. ReserveBegin and ReserveEnd are
// stored with the sign flipped from the extract so the reserve shares the
// account balance's debit-positive convention. The engine fills the reserve
// activity fields and the classifier fills NRV, Description and Theme.
type Account struct {
	Number    int64
	Facility  string
	Aging     string
	FCBegin   string
	FCEnd     string
	StartDate time.Time
	EndDate   time.Time

	BeginBalance   decimal.Decimal
	Charges        decimal.Decimal
	AdminAdj       decimal.Decimal
	BadDebtWO      decimal.Decimal
	CharityAdj     decimal.Decimal
	ContractualAdj decimal.Decimal
	DenialWO       decimal.Decimal
	Payments       decimal.Decimal
	EndBalance     decimal.Decimal

	ReserveBegin decimal.Decimal
	ReserveEnd   decimal.Decimal

	ReserveCharges     decimal.Decimal
	ReserveAdminAdj    decimal.Decimal
	ReserveBadDebtWO   decimal.Decimal
	ReserveCharityAdj  decimal.Decimal
	ReserveContractual decimal.Decimal
	ReserveDenialWO    decimal.Decimal
	ReserveReleases    decimal.Decimal
	ReserveValuation   decimal.Decimal
	NPSRImpact         decimal.Decimal

	NRVBegin    decimal.Decimal
	NRVEnd      decimal.Decimal
	Description string
	Theme       Theme

	// SourceFile and SourceLine locate the extract row for diagnostics.
	SourceFile string
	SourceLine int
}

// Amount returns the activity amount for a.
func (acct *Account) Amount(a Activity) decimal.Decimal {
	switch a {
	case Charges:
		return acct.Charges
	case AdminAdj:
		return acct.AdminAdj
	case BadDebtWO:
		return acct.BadDebtWO
	case CharityAdj:
		return acct.CharityAdj
	case ContractualAdj:
		return acct.ContractualAdj
	case DenialWO:
		return acct.DenialWO
	}
	return decimal.Zero
}

// SetAmount sets the activity amount for a.
func (acct *Account) SetAmount(a Activity, v decimal.Decimal) {
	switch a {
	case Charges:
		acct.Charges = v
	case AdminAdj:
		acct.AdminAdj = v
	case BadDebtWO:
		acct.BadDebtWO = v
	case CharityAdj:
		acct.CharityAdj = v
	case ContractualAdj:
		acct.ContractualAdj = v
	case DenialWO:
		acct.DenialWO = v
	}
}

// Reserve returns the reserve apportioned to activity a.
func (acct *Account) Reserve(a Activity) decimal.Decimal {
	switch a {
	case Charges:
		return acct.ReserveCharges
	case AdminAdj:
		return acct.ReserveAdminAdj
	case BadDebtWO:
		return acct.ReserveBadDebtWO
	case CharityAdj:
		return acct.ReserveCharityAdj
	case ContractualAdj:
		return acct.ReserveContractual
	case DenialWO:
		return acct.ReserveDenialWO
	}
	return decimal.Zero
}

// SetReserve records the reserve apportioned to activity a.
func (acct *Account) SetReserve(a Activity, v decimal.Decimal) {
	switch a {
	case Charges:
		acct.ReserveCharges = v
	case AdminAdj:
		acct.ReserveAdminAdj = v
	case BadDebtWO:
		acct.ReserveBadDebtWO = v
	case CharityAdj:
		acct.ReserveCharityAdj = v
	case ContractualAdj:
		acct.ReserveContractual = v
	case DenialWO:
		acct.ReserveDenialWO = v
	}
}

// TotalActivity is the sum of the six activity amounts, excluding payments.
func (acct *Account) TotalActivity() decimal.Decimal {
	total := decimal.Zero
	for _, a := range activityOrder {
		total = total.Add(acct.Amount(a))
	}
	return total
}

// TotalReserveActivity is the sum of the apportioned reserve, excluding
// releases and valuation.
func (acct *Account) TotalReserveActivity() decimal.Decimal {
	total := decimal.Zero
	for _, a := range activityOrder {
		total = total.Add(acct.Reserve(a))
	}
	return total
}

// IsNew reports whether the account had no financial class and no balance at
// the start of the period.
func (acct *Account) IsNew() bool {
	return acct.FCBegin == "" && acct.BeginBalance.IsZero()
}
