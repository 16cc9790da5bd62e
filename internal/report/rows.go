package report

import (
	"strconv"

	"arac/ar-rollforward/internal/dateutils"
	"arac/ar-rollforward/internal/models"

	"github.com/shopspring/decimal"
)

// Money is a report amount. It is already rounded to cents and always renders
// with two decimals in text output.
type Money float64

// NewMoney converts an amount to Money, rounding to cents.
func NewMoney(d decimal.Decimal) Money {
	return Money(models.Round2(d).InexactFloat64())
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (m Money) MarshalCSV() (string, error) {
	return m.String(), nil
}

func (m Money) String() string {
	return strconv.FormatFloat(float64(m), 'f', 2, 64)
}

// DetailRow is one account in the roll-forward table. Field order is column
// order. Description and Theme are both carried; which one is shown depends
// on the report mode.
type DetailRow struct {
	Number    int64  `csv:"Number" parquet:"number"`
	Facility  string `csv:"Facility" parquet:"facility"`
	Aging     string `csv:"Aging" parquet:"aging"`
	FCBegin   string `csv:"FC Begin" parquet:"fc_begin"`
	FCEnd     string `csv:"FC End" parquet:"fc_end"`
	StartDate string `csv:"Start Date" parquet:"start_date"`
	EndDate   string `csv:"End Date" parquet:"end_date"`

	BeginBalance Money `csv:"Begin Bal" parquet:"begin_bal"`
	Charges      Money `csv:"Charges" parquet:"charges"`
	Admin        Money `csv:"Admin" parquet:"admin"`
	BadDebt      Money `csv:"Bad Debt" parquet:"bad_debt"`
	Charity      Money `csv:"Charity" parquet:"charity"`
	Contractuals Money `csv:"Contractuals" parquet:"contractuals"`
	Denials      Money `csv:"Denials" parquet:"denials"`
	Payments     Money `csv:"Payments" parquet:"payments"`
	EndBalance   Money `csv:"End Bal" parquet:"end_bal"`

	ReserveBegin        Money `csv:"Rsv: Begin Bal" parquet:"rsv_begin_bal"`
	ReserveCharges      Money `csv:"Rsv: Charges" parquet:"rsv_charges"`
	ReserveAdmin        Money `csv:"Rsv: Admin" parquet:"rsv_admin"`
	ReserveBadDebt      Money `csv:"Rsv: Bad Debt" parquet:"rsv_bad_debt"`
	ReserveCharity      Money `csv:"Rsv: Charity" parquet:"rsv_charity"`
	ReserveContractuals Money `csv:"Rsv: Contractuals" parquet:"rsv_contractuals"`
	ReserveDenials      Money `csv:"Rsv: Denials" parquet:"rsv_denials"`
	ReserveReleases     Money `csv:"Rsv: Releases" parquet:"rsv_releases"`
	ReserveValuation    Money `csv:"Rsv: Valuation" parquet:"rsv_valuation"`
	ReserveEnd          Money `csv:"Rsv: End Bal" parquet:"rsv_end_bal"`

	NPSRImpact Money `csv:"NPSR Impact" parquet:"npsr_impact"`
	NRVBegin   Money `csv:"NRV Begin" parquet:"nrv_begin"`
	NRVEnd     Money `csv:"NRV End" parquet:"nrv_end"`

	Description string `csv:"-" parquet:"description"`
	Theme       string `csv:"-" parquet:"theme"`
}

// NewDetailRow flattens an enriched account.
func NewDetailRow(acct *models.Account) DetailRow {
	return DetailRow{
		Number:    acct.Number,
		Facility:  acct.Facility,
		Aging:     acct.Aging,
		FCBegin:   acct.FCBegin,
		FCEnd:     acct.FCEnd,
		StartDate: dateutils.FormatUS(acct.StartDate),
		EndDate:   dateutils.FormatUS(acct.EndDate),

		BeginBalance: NewMoney(acct.BeginBalance),
		Charges:      NewMoney(acct.Charges),
		Admin:        NewMoney(acct.AdminAdj),
		BadDebt:      NewMoney(acct.BadDebtWO),
		Charity:      NewMoney(acct.CharityAdj),
		Contractuals: NewMoney(acct.ContractualAdj),
		Denials:      NewMoney(acct.DenialWO),
		Payments:     NewMoney(acct.Payments),
		EndBalance:   NewMoney(acct.EndBalance),

		ReserveBegin:        NewMoney(acct.ReserveBegin),
		ReserveCharges:      NewMoney(acct.ReserveCharges),
		ReserveAdmin:        NewMoney(acct.ReserveAdminAdj),
		ReserveBadDebt:      NewMoney(acct.ReserveBadDebtWO),
		ReserveCharity:      NewMoney(acct.ReserveCharityAdj),
		ReserveContractuals: NewMoney(acct.ReserveContractual),
		ReserveDenials:      NewMoney(acct.ReserveDenialWO),
		ReserveReleases:     NewMoney(acct.ReserveReleases),
		ReserveValuation:    NewMoney(acct.ReserveValuation),
		ReserveEnd:          NewMoney(acct.ReserveEnd),

		NPSRImpact: NewMoney(acct.NPSRImpact),
		NRVBegin:   NewMoney(acct.NRVBegin),
		NRVEnd:     NewMoney(acct.NRVEnd),

		Description: acct.Description,
		Theme:       acct.Theme.String(),
	}
}

// Label returns the classification shown for mode.
func (r DetailRow) Label(mode models.Mode) string {
	if mode == models.ModeTheme {
		return r.Theme
	}
	return r.Description
}

// detailHeaders are the leading columns of the detail table; the label column
// is appended per mode.
var detailHeaders = []string{
	models.FieldNumber,
	models.FieldFacility,
	models.FieldAging,
	models.FieldFCBegin,
	models.FieldFCEnd,
	models.FieldStartDate,
	models.FieldEndDate,
	models.FieldBeginBalance,
	models.FieldCharges,
	models.FieldAdmin,
	models.FieldBadDebt,
	models.FieldCharity,
	models.FieldContractuals,
	models.FieldDenials,
	models.FieldPayments,
	models.FieldEndBalance,
	models.FieldReserveBegin,
	models.Charges.ReserveField(),
	models.AdminAdj.ReserveField(),
	models.BadDebtWO.ReserveField(),
	models.CharityAdj.ReserveField(),
	models.ContractualAdj.ReserveField(),
	models.DenialWO.ReserveField(),
	models.FieldReserveReleases,
	models.FieldReserveValuation,
	models.FieldReserveEnd,
	models.FieldNPSRImpact,
	models.FieldNRVBegin,
	models.FieldNRVEnd,
}

// firstMoneyColumn is the zero-based index of Begin Bal in detailHeaders.
const firstMoneyColumn = 7

// DetailColumns returns the detail table's column headers for mode.
func DetailColumns(mode models.Mode) []string {
	cols := make([]string, 0, len(detailHeaders)+1)
	cols = append(cols, detailHeaders...)
	return append(cols, LabelColumn(mode))
}

// LabelColumn is the header of the classification column for mode.
func LabelColumn(mode models.Mode) string {
	if mode == models.ModeTheme {
		return models.FieldTheme
	}
	return models.FieldDescription
}

// Cells returns the row's values in DetailColumns order.
func (r DetailRow) Cells(mode models.Mode) []interface{} {
	return []interface{}{
		r.Number, r.Facility, r.Aging, r.FCBegin, r.FCEnd, r.StartDate, r.EndDate,
		float64(r.BeginBalance), float64(r.Charges), float64(r.Admin), float64(r.BadDebt),
		float64(r.Charity), float64(r.Contractuals), float64(r.Denials), float64(r.Payments),
		float64(r.EndBalance),
		float64(r.ReserveBegin), float64(r.ReserveCharges), float64(r.ReserveAdmin),
		float64(r.ReserveBadDebt), float64(r.ReserveCharity), float64(r.ReserveContractuals),
		float64(r.ReserveDenials), float64(r.ReserveReleases), float64(r.ReserveValuation),
		float64(r.ReserveEnd),
		float64(r.NPSRImpact), float64(r.NRVBegin), float64(r.NRVEnd),
		r.Label(mode),
	}
}

// SummaryRow totals the accounts sharing one description or theme.
type SummaryRow struct {
	Group           string `csv:"Group" parquet:"group"`
	Accounts        int    `csv:"Accounts" parquet:"accounts"`
	BeginBalance    Money  `csv:"Begin Bal" parquet:"begin_bal"`
	Activity        Money  `csv:"Activity" parquet:"activity"`
	Payments        Money  `csv:"Payments" parquet:"payments"`
	EndBalance      Money  `csv:"End Bal" parquet:"end_bal"`
	ReserveBegin    Money  `csv:"Rsv: Begin Bal" parquet:"rsv_begin_bal"`
	ReserveActivity Money  `csv:"Rsv: Activity" parquet:"rsv_activity"`
	ReserveReleases Money  `csv:"Rsv: Releases" parquet:"rsv_releases"`
	ReserveValue    Money  `csv:"Rsv: Valuation" parquet:"rsv_valuation"`
	ReserveEnd      Money  `csv:"Rsv: End Bal" parquet:"rsv_end_bal"`
	NPSRImpact      Money  `csv:"NPSR Impact" parquet:"npsr_impact"`
}

// SummaryColumns are the summary table's column headers.
var SummaryColumns = []string{
	"Group", "Accounts",
	models.FieldBeginBalance, "Activity", models.FieldPayments, models.FieldEndBalance,
	models.FieldReserveBegin, "Rsv: Activity", models.FieldReserveReleases, models.FieldReserveValuation,
	models.FieldReserveEnd, models.FieldNPSRImpact,
}

// Cells returns the row's values in SummaryColumns order.
func (r SummaryRow) Cells() []interface{} {
	return []interface{}{
		r.Group, r.Accounts,
		float64(r.BeginBalance), float64(r.Activity), float64(r.Payments), float64(r.EndBalance),
		float64(r.ReserveBegin), float64(r.ReserveActivity), float64(r.ReserveReleases), float64(r.ReserveValue),
		float64(r.ReserveEnd), float64(r.NPSRImpact),
	}
}
