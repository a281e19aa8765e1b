package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gstsync/internal/domain"
	"gstsync/internal/gst"
	"gstsync/internal/port"
)

// Named report periods.
const (
	PresetMonthly     = "monthly"
	PresetQuarterly   = "quarterly"
	PresetYearly      = "yearly"
	PresetLastMonth   = "last-month"
	PresetLastQuarter = "last-quarter"
)

const dateLayout = "2006-01-02"

// ReportService aggregates the GST ledger into regulatory summaries.
type ReportService interface {
	QueryRange(ctx context.Context, shop string, start, end time.Time) ([]domain.LedgerEntry, error)
	GSTReport(ctx context.Context, shop string, period domain.ReportPeriod) (*domain.GSTReport, error)
}

type reportService struct {
	ledgerRepo port.LedgerRepository
}

// NewReportService creates a new ReportService.
func NewReportService(ledgerRepo port.LedgerRepository) ReportService {
	return &reportService{ledgerRepo: ledgerRepo}
}

// QueryRange returns every entry dated within [start, end], both days
// inclusive. The store only indexes by month, so each covered month is read in
// turn and the result is trimmed to the exact days.
func (s *reportService) QueryRange(ctx context.Context, shop string, start, end time.Time) ([]domain.LedgerEntry, error) {
	from := startOfDay(start)
	until := startOfDay(end).AddDate(0, 0, 1)
	if !from.Before(until) {
		return nil, fmt.Errorf("%w: start after end", domain.ErrInvalidDateRange)
	}

	var out []domain.LedgerEntry
	for _, period := range MonthsBetween(from, until.AddDate(0, 0, -1)) {
		entries, err := s.ledgerRepo.ListByPeriod(ctx, shop, period)
		if err != nil {
			return nil, fmt.Errorf("reportService.QueryRange: period %s: %w", period, err)
		}
		for i := range entries {
			d := entries[i].EffectiveDate()
			if !d.Before(from) && d.Before(until) {
				out = append(out, entries[i])
			}
		}
	}
	return out, nil
}

func (s *reportService) GSTReport(ctx context.Context, shop string, period domain.ReportPeriod) (*domain.GSTReport, error) {
	entries, err := s.QueryRange(ctx, shop, period.Start, period.End)
	if err != nil {
		return nil, err
	}
	return &domain.GSTReport{
		Shop:             shop,
		Period:           period,
		EntryCount:       len(entries),
		ByJurisdiction:   AggregateByJurisdictionAndRate(entries),
		ByClassification: AggregateByClassification(entries),
	}, nil
}

// included reports whether an entry counts towards a report. Cancelled entries
// are dropped; returned entries stay so reversals net against their originals.
func included(e *domain.LedgerEntry) bool {
	return e.Status != domain.LedgerStatusCancelled
}

type sums struct {
	count    int
	quantity float64
	taxable  float64
	cgst     float64
	sgst     float64
	igst     float64
	tax      float64
}

func (a *sums) add(e *domain.LedgerEntry) {
	a.count++
	a.quantity += e.Quantity
	a.taxable += e.TaxableValue
	a.cgst += e.CGST
	a.sgst += e.SGST
	a.igst += e.IGST
	a.tax += e.TotalTax
}

func (a *sums) totals() domain.ReportTotals {
	return domain.ReportTotals{
		Quantity:     gst.Round2(a.quantity),
		TaxableValue: gst.Round2(a.taxable),
		CGST:         gst.Round2(a.cgst),
		SGST:         gst.Round2(a.sgst),
		IGST:         gst.Round2(a.igst),
		TotalTax:     gst.Round2(a.tax),
	}
}

type jurisdictionRate struct {
	place string
	rate  float64
}

// AggregateByJurisdictionAndRate groups entries by (place of supply, rate),
// ordered by place then ascending rate.
func AggregateByJurisdictionAndRate(entries []domain.LedgerEntry) domain.JurisdictionReport {
	groups := make(map[jurisdictionRate]*sums)
	var total sums
	for i := range entries {
		e := &entries[i]
		if !included(e) {
			continue
		}
		k := jurisdictionRate{place: e.PlaceOfSupply, rate: e.TaxRate}
		g, ok := groups[k]
		if !ok {
			g = &sums{}
			groups[k] = g
		}
		g.add(e)
		total.add(e)
	}

	keys := make([]jurisdictionRate, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].place != keys[j].place {
			return keys[i].place < keys[j].place
		}
		return keys[i].rate < keys[j].rate
	})

	rows := make([]domain.JurisdictionRateRow, 0, len(keys))
	for _, k := range keys {
		t := groups[k].totals()
		rows = append(rows, domain.JurisdictionRateRow{
			PlaceOfSupply: k.place,
			StateCode:     gst.StateCodeOrEmpty(k.place),
			TaxRate:       k.rate,
			EntryCount:    groups[k].count,
			TaxableValue:  t.TaxableValue,
			CGST:          t.CGST,
			SGST:          t.SGST,
			IGST:          t.IGST,
			TotalTax:      t.TotalTax,
		})
	}
	return domain.JurisdictionReport{Rows: rows, Totals: total.totals()}
}

// AggregateByClassification groups entries by HSN code, sorted by code and
// numbered from 1.
func AggregateByClassification(entries []domain.LedgerEntry) domain.ClassificationReport {
	groups := make(map[string]*sums)
	var total sums
	for i := range entries {
		e := &entries[i]
		if !included(e) {
			continue
		}
		g, ok := groups[e.HSN]
		if !ok {
			g = &sums{}
			groups[e.HSN] = g
		}
		g.add(e)
		total.add(e)
	}

	codes := make([]string, 0, len(groups))
	for code := range groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := make([]domain.ClassificationRow, 0, len(codes))
	for i, code := range codes {
		t := groups[code].totals()
		rows = append(rows, domain.ClassificationRow{
			SerialNo:     i + 1,
			HSN:          code,
			Quantity:     t.Quantity,
			TaxableValue: t.TaxableValue,
			CGST:         t.CGST,
			SGST:         t.SGST,
			IGST:         t.IGST,
			TotalTax:     t.TotalTax,
		})
	}
	return domain.ClassificationReport{Rows: rows, Totals: total.totals()}
}

// MonthsBetween lists the "YYYY-MM" buckets covering [start, end].
func MonthsBetween(start, end time.Time) []string {
	start = start.In(domain.ReportingZone)
	end = end.In(domain.ReportingZone)
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, domain.ReportingZone)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, domain.ReportingZone)

	var out []string
	for !cur.After(last) {
		out = append(out, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// ParseRange parses an inclusive "YYYY-MM-DD" date range.
func ParseRange(startDate, endDate string) (domain.ReportPeriod, error) {
	start, err := time.ParseInLocation(dateLayout, startDate, domain.ReportingZone)
	if err != nil {
		return domain.ReportPeriod{}, fmt.Errorf("%w: invalid startDate %q", domain.ErrInvalidDateRange, startDate)
	}
	end, err := time.ParseInLocation(dateLayout, endDate, domain.ReportingZone)
	if err != nil {
		return domain.ReportPeriod{}, fmt.Errorf("%w: invalid endDate %q", domain.ErrInvalidDateRange, endDate)
	}
	if end.Before(start) {
		return domain.ReportPeriod{}, fmt.Errorf("%w: endDate before startDate", domain.ErrInvalidDateRange)
	}
	return domain.ReportPeriod{Start: start, End: end}, nil
}

// ResolvePeriod turns a named preset into an inclusive date range relative to
// now. Quarters are calendar quarters, which line up with GST return quarters;
// the year is the April to March financial year.
func ResolvePeriod(preset string, now time.Time) (domain.ReportPeriod, error) {
	now = now.In(domain.ReportingZone)
	y, m := now.Year(), now.Month()
	quarterStart := time.Month((int(m)-1)/3*3 + 1)

	switch preset {
	case PresetMonthly:
		return monthSpan(y, m, 1), nil
	case PresetLastMonth:
		return monthSpan(y, m-1, 1), nil
	case PresetQuarterly:
		return monthSpan(y, quarterStart, 3), nil
	case PresetLastQuarter:
		return monthSpan(y, quarterStart-3, 3), nil
	case PresetYearly:
		fy := y
		if m < time.April {
			fy--
		}
		return monthSpan(fy, time.April, 12), nil
	default:
		return domain.ReportPeriod{}, fmt.Errorf("%w: unknown period %q", domain.ErrInvalidDateRange, preset)
	}
}

// monthSpan covers n months starting at (year, month); month may be out of
// range and is normalized.
func monthSpan(year int, month time.Month, n int) domain.ReportPeriod {
	start := time.Date(year, month, 1, 0, 0, 0, 0, domain.ReportingZone)
	end := start.AddDate(0, n, -1)
	return domain.ReportPeriod{Start: start, End: end}
}

func startOfDay(t time.Time) time.Time {
	t = t.In(domain.ReportingZone)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, domain.ReportingZone)
}
