package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_PostAccumulates(t *testing.T) {
	l := NewLedger(FieldBeginBalance, decimal.NewFromInt(1000))

	assert.Equal(t, "1200", l.Post(FieldCharges, decimal.NewFromInt(200)).String())
	assert.Equal(t, "1150", l.Post(FieldContractuals, decimal.NewFromInt(-50)).String())
	assert.Equal(t, "0", l.Post(FieldPayments, decimal.NewFromInt(-1150)).String())

	steps := l.Steps()
	require.Len(t, steps, 4)
	assert.Equal(t, FieldBeginBalance, steps[0].Name)
	assert.True(t, steps[0].Delta.IsZero())
	assert.Equal(t, FieldPayments, steps[3].Name)
	assert.True(t, l.Balance().IsZero())
}

func TestLedger_StepsIsACopy(t *testing.T) {
	l := NewLedger("open", decimal.NewFromInt(5))
	steps := l.Steps()
	steps[0].Name = "changed"
	assert.Equal(t, "open", l.Steps()[0].Name)
}

func TestLedger_String(t *testing.T) {
	l := NewLedger(FieldReserveBegin, decimal.NewFromInt(-900))
	l.Post(Charges.ReserveField(), decimal.NewFromInt(-180))

	out := l.String()
	assert.Contains(t, out, "Rsv: Begin Bal")
	assert.Contains(t, out, "-900.00")
	assert.Contains(t, out, "Rsv: Charges")
	assert.Contains(t, out, "-1080.00")
}

func TestActivities_FixedOrder(t *testing.T) {
	got := Activities()
	assert.Equal(t, []Activity{Charges, AdminAdj, BadDebtWO, CharityAdj, ContractualAdj, DenialWO}, got)

	names := make([]string, 0, len(got))
	for _, a := range got {
		names = append(names, a.String())
	}
	assert.Equal(t, []string{"Charges", "Admin", "Bad Debt", "Charity", "Contractuals", "Denials"}, names)
	assert.Equal(t, "Rsv: Denials", DenialWO.ReserveField())

	// Mutating the returned slice must not affect the roll-forward order.
	got[0] = DenialWO
	assert.Equal(t, Charges, Activities()[0])
}

func TestAccount_AmountAndReserveAccessors(t *testing.T) {
	acct := &Account{}
	for i, a := range Activities() {
		acct.SetAmount(a, decimal.NewFromInt(int64(i+1)))
		acct.SetReserve(a, decimal.NewFromInt(int64(-(i + 1))))
	}

	assert.Equal(t, "1", acct.Charges.String())
	assert.Equal(t, "6", acct.DenialWO.String())
	assert.Equal(t, "-5", acct.ReserveContractual.String())
	assert.Equal(t, "21", acct.TotalActivity().String())
	assert.Equal(t, "-21", acct.TotalReserveActivity().String())
}

func TestAccount_IsNew(t *testing.T) {
	assert.True(t, (&Account{}).IsNew())
	assert.False(t, (&Account{FCBegin: "MCR"}).IsNew())
	assert.False(t, (&Account{BeginBalance: decimal.NewFromInt(1)}).IsNew())
}
