package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/report"
	"go-chemoventry/internal/repository"

	"github.com/google/uuid"
)

// ErrInvalidReportParams marks caller mistakes (missing or malformed dates,
// non-positive numerics) so handlers can answer 400 instead of 500.
var ErrInvalidReportParams = errors.New("invalid report parameters")

const (
	DefaultExpiryDays        = 90
	DefaultLowStockThreshold = 100
)

const dateLayout = "2006-01-02"

type ReportService interface {
	InventoryReport(startDate, endDate string, locationID *uuid.UUID, now time.Time) (*report.Table, error)
	UsageReport(startDate, endDate string, chemicalID, userID *uuid.UUID) (*report.Table, error)
	ExpiryReport(days string, now time.Time) (*report.Table, error)
	LowStockReport(threshold string, now time.Time) (*report.Table, error)
}

type reportService struct {
	chemicalRepo repository.ChemicalRepository
	activityRepo repository.ActivityRepository
}

func NewReportService(chemicalRepo repository.ChemicalRepository, activityRepo repository.ActivityRepository) ReportService {
	return &reportService{
		chemicalRepo: chemicalRepo,
		activityRepo: activityRepo,
	}
}

// InventoryReport lists current stock levels, optionally narrowed to one
// location. The date range only labels the report period; it defaults to
// today when omitted.
func (s *reportService) InventoryReport(startDate, endDate string, locationID *uuid.UUID, now time.Time) (*report.Table, error) {
	today := now.Format(dateLayout)
	if startDate == "" {
		startDate = today
	}
	if endDate == "" {
		endDate = today
	}
	if _, err := time.Parse(dateLayout, startDate); err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidReportParams)
	}
	if _, err := time.Parse(dateLayout, endDate); err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidReportParams)
	}

	chemicals, err := s.chemicalRepo.FindAll(repository.ChemicalFilter{LocationID: locationID})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(chemicals))
	for i := range chemicals {
		c := &chemicals[i]
		rows = append(rows, []string{
			c.Name,
			c.MolecularFormula,
			locationName(c.Location),
			FormatQuantity(c.Quantity, c.ChemicalState),
			string(c.ChemicalState),
			string(c.ChemicalType),
			TruncateHazard(c.HazardInformation),
			c.Expires.Format(dateLayout),
			c.UpdatedAt.Format(dateLayout),
		})
	}

	return &report.Table{
		Title:       "Chemical Inventory Report",
		Headers:     []string{"Chemical Name", "Formula", "Location", "Quantity", "State", "Type", "Hazard Info", "Expiry Date", "Last Updated"},
		Rows:        rows,
		PeriodStart: startDate,
		PeriodEnd:   endDate,
	}, nil
}

// UsageReport lists every activity in [startDate, endDate], newest first.
// The end date is inclusive through the end of its day.
func (s *reportService) UsageReport(startDate, endDate string, chemicalID, userID *uuid.UUID) (*report.Table, error) {
	if startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: missing required parameters: start_date and end_date", ErrInvalidReportParams)
	}
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidReportParams)
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date format, use YYYY-MM-DD", ErrInvalidReportParams)
	}
	end = EndOfDay(end)

	activities, err := s.activityRepo.FindAll(repository.ActivityFilter{
		Start:      start,
		End:        end,
		ChemicalID: chemicalID,
		UserID:     userID,
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		row := []string{
			a.Timestamp.Format("2006-01-02 15:04"),
			"", // chemical name
			a.TitleAction(),
			fmt.Sprintf("%v", math.Abs(a.Quantity)),
			"", // location
			"", // user
			a.Notes,
		}
		if a.Chemical != nil {
			row[1] = a.Chemical.Name
			row[3] = FormatQuantity(math.Abs(a.Quantity), a.Chemical.ChemicalState)
			row[4] = locationName(a.Chemical.Location)
		}
		if a.User != nil {
			row[5] = a.User.FullName()
		}
		if row[6] == "" {
			row[6] = "N/A"
		}
		rows = append(rows, row)
	}

	return &report.Table{
		Title:       "Chemical Usage Report",
		Headers:     []string{"Date & Time", "Chemical", "Action", "Quantity", "Location", "User", "Notes"},
		Rows:        rows,
		PeriodStart: startDate,
		PeriodEnd:   endDate,
	}, nil
}

// ExpiryReport lists chemicals expiring within the look-ahead window,
// soonest first. Already-expired chemicals are excluded.
func (s *reportService) ExpiryReport(days string, now time.Time) (*report.Table, error) {
	daysAhead := DefaultExpiryDays
	if days != "" {
		parsed, err := strconv.Atoi(days)
		if err != nil {
			return nil, fmt.Errorf("%w: days parameter must be a valid number", ErrInvalidReportParams)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("%w: days parameter must be a positive number", ErrInvalidReportParams)
		}
		daysAhead = parsed
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, 0, daysAhead)

	chemicals, err := s.chemicalRepo.FindExpiringBetween(today, cutoff)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(chemicals, func(i, j int) bool {
		return chemicals[i].DaysUntilExpiry(today) < chemicals[j].DaysUntilExpiry(today)
	})

	rows := make([][]string, 0, len(chemicals))
	for i := range chemicals {
		c := &chemicals[i]
		rows = append(rows, []string{
			c.Name,
			locationName(c.Location),
			FormatQuantity(c.Quantity, c.ChemicalState),
			c.Expires.Format(dateLayout),
			strconv.Itoa(c.DaysUntilExpiry(today)),
			userName(c.CreatedBy),
			c.CreatedAt.Format(dateLayout),
		})
	}

	return &report.Table{
		Title:       fmt.Sprintf("Chemicals Expiring Within %d Days", daysAhead),
		Headers:     []string{"Chemical Name", "Location", "Quantity", "Expiry Date", "Days Left", "Added By", "Creation Date"},
		Rows:        rows,
		PeriodStart: today.Format(dateLayout),
		PeriodEnd:   cutoff.Format(dateLayout),
	}, nil
}

// LowStockReport lists chemicals at or below the threshold, lowest first.
func (s *reportService) LowStockReport(threshold string, now time.Time) (*report.Table, error) {
	limit := float64(DefaultLowStockThreshold)
	if threshold != "" {
		parsed, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: threshold parameter must be a valid number", ErrInvalidReportParams)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("%w: threshold parameter must be a positive number", ErrInvalidReportParams)
		}
		limit = parsed
	}

	chemicals, err := s.chemicalRepo.FindQuantityAtMost(limit)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(chemicals, func(i, j int) bool {
		return chemicals[i].Quantity < chemicals[j].Quantity
	})

	rows := make([][]string, 0, len(chemicals))
	for i := range chemicals {
		c := &chemicals[i]
		rows = append(rows, []string{
			c.Name,
			c.MolecularFormula,
			locationName(c.Location),
			FormatQuantity(c.Quantity, c.ChemicalState),
			string(c.ChemicalState),
			c.Expires.Format(dateLayout),
		})
	}

	today := now.Format(dateLayout)
	return &report.Table{
		Title:       fmt.Sprintf("Chemicals Below Stock Threshold (%v)", limit),
		Headers:     []string{"Chemical Name", "Formula", "Location", "Current Stock", "State", "Expiry Date"},
		Rows:        rows,
		PeriodStart: today,
		PeriodEnd:   today,
	}, nil
}

// TruncateHazard shortens hazard text to 50 characters plus an ellipsis.
func TruncateHazard(s string) string {
	if len(s) > 50 {
		return s[:50] + "..."
	}
	return s
}

// EndOfDay pushes a date to 23:59:59 so range filters include the whole day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

func locationName(l *model.Location) string {
	if l == nil {
		return ""
	}
	return l.Name
}

func userName(u *model.User) string {
	if u == nil {
		return ""
	}
	return u.FullName()
}
