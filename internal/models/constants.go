package models

// Logical field names. These double as the crosswalk keys and as the
// report column headers.
const (
	FieldNumber       = "Number"
	FieldFacility     = "Facility"
	FieldAging        = "Aging"
	FieldFCBegin      = "FC Begin"
	FieldFCEnd        = "FC End"
	FieldStartDate    = "Start Date"
	FieldEndDate      = "End Date"
	FieldBeginBalance = "Begin Bal"
	FieldCharges      = "Charges"
	FieldAdmin        = "Admin"
	FieldBadDebt      = "Bad Debt"
	FieldCharity      = "Charity"
	FieldContractuals = "Contractuals"
	FieldDenials      = "Denials"
	FieldPayments     = "Payments"
	FieldEndBalance   = "End Bal"
	FieldReserveBegin = "Rsv: Begin Bal"
	FieldReserveEnd   = "Rsv: End Bal"
)

// Derived column names added by the engine and the classifier.
const (
	FieldReservePrefix    = "Rsv: "
	FieldReserveReleases  = "Rsv: Releases"
	FieldReserveValuation = "Rsv: Valuation"
	FieldNPSRImpact       = "NPSR Impact"
	FieldNRVBegin         = "NRV Begin"
	FieldNRVEnd           = "NRV End"
	FieldDescription      = "Description"
	FieldTheme            = "Theme"
)

// RequiredFields lists every logical field a source extract must provide.
var RequiredFields = []string{
	FieldNumber,
	FieldFacility,
	FieldAging,
	FieldFCBegin,
	FieldFCEnd,
	FieldStartDate,
	FieldEndDate,
	FieldBeginBalance,
	FieldCharges,
	FieldAdmin,
	FieldBadDebt,
	FieldCharity,
	FieldContractuals,
	FieldDenials,
	FieldPayments,
	FieldEndBalance,
	FieldReserveBegin,
	FieldReserveEnd,
}

// Mode selects how the classifier annotates each account.
type Mode string

const (
	ModeDescription Mode = "description"
	ModeTheme       Mode = "theme"
)

// Report table defaults
const (
	DefaultDetailTable  = "PT_ACCT_ROLL"
	DefaultDetailSheet  = "Pt Acct Roll-forward"
	DefaultSummaryTable = "PT_ACCT_SUMMARY"
	DefaultSummarySheet = "Summary"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
