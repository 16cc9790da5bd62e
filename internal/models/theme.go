package models

// Theme is a categorical label for how an account behaved during the period.
type Theme string

// Themes. The strings are what appears in the report.
const (
	ThemeNone Theme = ""

	ThemeNewWithoutCharges     Theme = "New accounts without charges."
	ThemeNewWithCharges        Theme = "New accounts with charges."
	ThemeNewWithChargeReversal Theme = "New accounts with charge reversals."

	ThemeDebitExcessReceiptsDebit  Theme = "Net debit accounts with net receipts > begin bal + charges resulting in a net debit ending balance."
	ThemeDebitExcessReceiptsCredit Theme = "Net debit accounts with net receipts > begin bal + charges resulting in a net credit ending balance."
	ThemeDebitExcessReceiptsZero   Theme = "Net debit accounts with net receipts > begin bal + charges resulting in a net zero ending balance."
	ThemeDebitReceiptsDebit        Theme = "Net debit accounts with net receipts <= begin bal + charges resulting in a net debit ending balance."
	ThemeDebitReceiptsCredit       Theme = "Net debit accounts with net receipts <= begin bal + charges resulting in a net credit ending balance."
	ThemeDebitReceiptsZero         Theme = "Net debit accounts with net receipts <= begin bal + charges resulting in a net zero ending balance."
	ThemeDebitRefunds              Theme = "Net debit accounts with net refunds."
	ThemeDebitNoCash               Theme = "Net debit accounts without cash activity."

	ThemeCredit Theme = "Net credit"

	ThemeZeroNoActivity Theme = "Net zero - No activity."
	ThemeZeroOther      Theme = "Net zero - Other"
)

// AllThemes lists every theme the classifier can emit, in report order.
var AllThemes = []Theme{
	ThemeNewWithoutCharges,
	ThemeNewWithCharges,
	ThemeNewWithChargeReversal,
	ThemeDebitExcessReceiptsDebit,
	ThemeDebitExcessReceiptsCredit,
	ThemeDebitExcessReceiptsZero,
	ThemeDebitReceiptsDebit,
	ThemeDebitReceiptsCredit,
	ThemeDebitReceiptsZero,
	ThemeDebitRefunds,
	ThemeDebitNoCash,
	ThemeCredit,
	ThemeZeroNoActivity,
	ThemeZeroOther,
}

func (t Theme) String() string {
	return string(t)
}
