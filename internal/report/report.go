// Package report turns enriched accounts into report tables and writes them
// as an xlsx workbook, a CSV file or a Parquet file.
package report

import (
	"sort"

	"arac/ar-rollforward/internal/models"

	"github.com/shopspring/decimal"
)

// TotalGroup labels the grand total row of the summary table.
const TotalGroup = "Total"

// Options names the tables and sheets of a report.
type Options struct {
	DetailTable  string
	DetailSheet  string
	SummaryTable string
	SummarySheet string
	// Summary controls whether the summary table is produced.
	Summary bool
}

// DefaultOptions returns the standard table and sheet names with the summary
// table enabled.
func DefaultOptions() Options {
	return Options{
		DetailTable:  models.DefaultDetailTable,
		DetailSheet:  models.DefaultDetailSheet,
		SummaryTable: models.DefaultSummaryTable,
		SummarySheet: models.DefaultSummarySheet,
		Summary:      true,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DetailTable == "" {
		o.DetailTable = def.DetailTable
	}
	if o.DetailSheet == "" {
		o.DetailSheet = def.DetailSheet
	}
	if o.SummaryTable == "" {
		o.SummaryTable = def.SummaryTable
	}
	if o.SummarySheet == "" {
		o.SummarySheet = def.SummarySheet
	}
	return o
}

// Report is everything a Writer needs.
type Report struct {
	Mode    models.Mode
	Options Options
	Detail  []DetailRow
	Summary []SummaryRow
}

// Build assembles the report for accounts that have been rolled forward and
// classified. Detail rows keep the account order.
func Build(accounts []*models.Account, mode models.Mode, opts Options) *Report {
	rep := &Report{
		Mode:    mode,
		Options: opts.withDefaults(),
		Detail:  make([]DetailRow, 0, len(accounts)),
	}
	for _, acct := range accounts {
		rep.Detail = append(rep.Detail, NewDetailRow(acct))
	}
	if rep.Options.Summary {
		rep.Summary = BuildSummary(accounts, mode)
	}
	return rep
}

type totals struct {
	accounts                                int
	begin, activity, payments, end          decimal.Decimal
	rsvBegin, rsvActivity, releases, rsvVal decimal.Decimal
	rsvEnd, npsr                            decimal.Decimal
}

func (t *totals) add(acct *models.Account) {
	t.accounts++
	t.begin = t.begin.Add(acct.BeginBalance)
	t.activity = t.activity.Add(acct.TotalActivity())
	t.payments = t.payments.Add(acct.Payments)
	t.end = t.end.Add(acct.EndBalance)
	t.rsvBegin = t.rsvBegin.Add(acct.ReserveBegin)
	t.rsvActivity = t.rsvActivity.Add(acct.TotalReserveActivity())
	t.releases = t.releases.Add(acct.ReserveReleases)
	t.rsvVal = t.rsvVal.Add(acct.ReserveValuation)
	t.rsvEnd = t.rsvEnd.Add(acct.ReserveEnd)
	t.npsr = t.npsr.Add(acct.NPSRImpact)
}

func (t *totals) row(group string) SummaryRow {
	return SummaryRow{
		Group:           group,
		Accounts:        t.accounts,
		BeginBalance:    NewMoney(t.begin),
		Activity:        NewMoney(t.activity),
		Payments:        NewMoney(t.payments),
		EndBalance:      NewMoney(t.end),
		ReserveBegin:    NewMoney(t.rsvBegin),
		ReserveActivity: NewMoney(t.rsvActivity),
		ReserveReleases: NewMoney(t.releases),
		ReserveValue:    NewMoney(t.rsvVal),
		ReserveEnd:      NewMoney(t.rsvEnd),
		NPSRImpact:      NewMoney(t.npsr),
	}
}

// BuildSummary groups accounts by their label for mode and totals each group,
// followed by a grand total row. Themes appear in their fixed order and
// descriptions alphabetically.
func BuildSummary(accounts []*models.Account, mode models.Mode) []SummaryRow {
	groups := make(map[string]*totals)
	var grand totals
	for _, acct := range accounts {
		label := acct.Description
		if mode == models.ModeTheme {
			label = acct.Theme.String()
		}
		g, ok := groups[label]
		if !ok {
			g = &totals{}
			groups[label] = g
		}
		g.add(acct)
		grand.add(acct)
	}

	var order []string
	if mode == models.ModeTheme {
		for _, th := range models.AllThemes {
			if _, ok := groups[th.String()]; ok {
				order = append(order, th.String())
			}
		}
		if _, ok := groups[models.ThemeNone.String()]; ok {
			order = append(order, models.ThemeNone.String())
		}
	} else {
		for label := range groups {
			order = append(order, label)
		}
		sort.Strings(order)
	}

	rows := make([]SummaryRow, 0, len(order)+1)
	for _, label := range order {
		rows = append(rows, groups[label].row(label))
	}
	return append(rows, grand.row(TotalGroup))
}
