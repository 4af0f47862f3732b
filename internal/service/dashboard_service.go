package service

import (
	"fmt"
	"math"
	"time"

	"go-chemoventry/internal/model"
	"go-chemoventry/internal/repository"
)

const trendMonths = 6

// DashboardOverview is the aggregate view rendered on the landing page.
type DashboardOverview struct {
	TotalChemicals     int64            `json:"total_chemicals"`
	ExpiredChemicals   int64            `json:"expired_chemicals"`
	LowStockAlerts     int64            `json:"low_stock_alerts"`
	MonthlyUsage       float64          `json:"monthly_usage"`
	MonthlyUsageChange float64          `json:"monthly_usage_change"`
	RecentActivity     []RecentActivity `json:"recent_activity"`
	UsageTrends        []UsageTrend     `json:"usage_trends"`
}

type RecentActivity struct {
	Action    string    `json:"action"`
	Chemical  string    `json:"chemical"`
	Quantity  string    `json:"quantity"`
	User      string    `json:"user"`
	Timestamp time.Time `json:"timestamp"`
}

type UsageTrend struct {
	Month string  `json:"month"`
	Usage float64 `json:"usage"`
}

type DashboardService interface {
	GetOverview(now time.Time) (*DashboardOverview, error)
}

type dashboardService struct {
	chemicalRepo      repository.ChemicalRepository
	activityRepo      repository.ActivityRepository
	lowStockThreshold float64
}

func NewDashboardService(chemicalRepo repository.ChemicalRepository, activityRepo repository.ActivityRepository, lowStockThreshold float64) DashboardService {
	return &dashboardService{
		chemicalRepo:      chemicalRepo,
		activityRepo:      activityRepo,
		lowStockThreshold: lowStockThreshold,
	}
}

func (s *dashboardService) GetOverview(now time.Time) (*DashboardOverview, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	overview := &DashboardOverview{}

	var err error
	if overview.TotalChemicals, err = s.chemicalRepo.CountAll(); err != nil {
		return nil, err
	}
	if overview.ExpiredChemicals, err = s.chemicalRepo.CountExpiredBefore(today); err != nil {
		return nil, err
	}
	if overview.LowStockAlerts, err = s.chemicalRepo.CountQuantityBelow(s.lowStockThreshold); err != nil {
		return nil, err
	}

	currentUsage, err := s.activityRepo.UsageBetween(monthStart, monthStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, err
	}
	lastUsage, err := s.activityRepo.UsageBetween(lastMonthStart, monthStart)
	if err != nil {
		return nil, err
	}
	overview.MonthlyUsage = currentUsage
	overview.MonthlyUsageChange = UsageChangePercent(currentUsage, lastUsage)

	recent, err := s.activityRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}
	overview.RecentActivity = make([]RecentActivity, 0, len(recent))
	for _, activity := range recent {
		overview.RecentActivity = append(overview.RecentActivity, renderRecent(&activity))
	}

	overview.UsageTrends = make([]UsageTrend, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		bucketStart := monthStart.AddDate(0, -i, 0)
		bucketEnd := bucketStart.AddDate(0, 1, 0)
		usage, err := s.activityRepo.UsageBetween(bucketStart, bucketEnd)
		if err != nil {
			return nil, err
		}
		overview.UsageTrends = append(overview.UsageTrends, UsageTrend{
			Month: bucketStart.Format("Jan"),
			Usage: math.Round(usage*100) / 100,
		})
	}

	return overview, nil
}

// UsageChangePercent is the month-over-month usage delta. A zero prior month
// yields 0 instead of a division by zero.
func UsageChangePercent(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

func renderRecent(activity *model.ChemicalActivity) RecentActivity {
	r := RecentActivity{
		Action:    activity.TitleAction(),
		Timestamp: activity.Timestamp,
	}
	if activity.Chemical != nil {
		r.Chemical = activity.Chemical.Name
		r.Quantity = fmt.Sprintf("%v%s", math.Abs(activity.Quantity), activity.Chemical.ChemicalState.UnitSuffix())
	} else {
		r.Quantity = fmt.Sprintf("%v", math.Abs(activity.Quantity))
	}
	if activity.User != nil {
		r.User = activity.User.FullName()
	}
	return r
}

// FormatQuantity renders a quantity with its unit suffix, e.g. "30 L".
func FormatQuantity(q float64, state model.ChemicalState) string {
	return fmt.Sprintf("%v %s", q, state.UnitSuffix())
}
