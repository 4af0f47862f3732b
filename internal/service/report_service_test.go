package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go-chemoventry/internal/model"
)

func TestExpiryReport(t *testing.T) {
	now := date(2026, time.June, 15)
	location := &model.Location{Name: "Acid Cabinet"}
	creator := &model.User{FirstName: "Jane", LastName: "Director"}

	chemRepo := &fakeChemicalRepo{chemicals: []model.Chemical{
		{Name: "Slow Mover", Quantity: 10, ChemicalState: model.StateSolid, Expires: date(2026, time.July, 25), Location: location, CreatedBy: creator},
		{Name: "Fast Mover", Quantity: 5, ChemicalState: model.StateLiquid, Expires: date(2026, time.June, 25), Location: location, CreatedBy: creator},
		{Name: "Already Expired", Quantity: 1, ChemicalState: model.StateSolid, Expires: date(2026, time.June, 10), Location: location, CreatedBy: creator},
		{Name: "Far Future", Quantity: 1, ChemicalState: model.StateSolid, Expires: date(2027, time.June, 1), Location: location, CreatedBy: creator},
	}}

	svc := NewReportService(chemRepo, &fakeActivityRepo{})
	table, err := svc.ExpiryReport("", now)
	if err != nil {
		t.Fatalf("ExpiryReport: %v", err)
	}

	if table.Title != "Chemicals Expiring Within 90 Days" {
		t.Errorf("title = %q", table.Title)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (expired and far-future excluded)", len(table.Rows))
	}
	// Soonest first.
	if table.Rows[0][0] != "Fast Mover" || table.Rows[1][0] != "Slow Mover" {
		t.Errorf("row order = %q, %q; want Fast Mover then Slow Mover", table.Rows[0][0], table.Rows[1][0])
	}
	if table.Rows[0][4] != "10" {
		t.Errorf("days left = %q, want 10", table.Rows[0][4])
	}
	if table.Rows[0][5] != "Jane Director" {
		t.Errorf("added by = %q, want Jane Director", table.Rows[0][5])
	}
}

func TestExpiryReportBadDays(t *testing.T) {
	svc := NewReportService(&fakeChemicalRepo{}, &fakeActivityRepo{})
	for _, days := range []string{"abc", "-5", "0"} {
		if _, err := svc.ExpiryReport(days, time.Now()); !errors.Is(err, ErrInvalidReportParams) {
			t.Errorf("ExpiryReport(days=%q) error = %v, want ErrInvalidReportParams", days, err)
		}
	}
}

func TestLowStockReport(t *testing.T) {
	now := date(2026, time.June, 15)
	chemRepo := &fakeChemicalRepo{chemicals: []model.Chemical{
		{Name: "Plenty", Quantity: 150, ChemicalState: model.StateSolid, Expires: now},
		{Name: "Nearly Out", Quantity: 50, ChemicalState: model.StateLiquid, Expires: now},
		{Name: "Borderline", Quantity: 99, ChemicalState: model.StateSolid, Expires: now},
	}}

	svc := NewReportService(chemRepo, &fakeActivityRepo{})
	table, err := svc.LowStockReport("", now)
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}

	if table.Title != "Chemicals Below Stock Threshold (100)" {
		t.Errorf("title = %q", table.Title)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	// Lowest stock first.
	if table.Rows[0][0] != "Nearly Out" || table.Rows[1][0] != "Borderline" {
		t.Errorf("row order = %q, %q; want Nearly Out then Borderline", table.Rows[0][0], table.Rows[1][0])
	}
	if table.Rows[0][3] != "50 L" {
		t.Errorf("current stock = %q, want %q", table.Rows[0][3], "50 L")
	}
}

func TestLowStockReportCustomThreshold(t *testing.T) {
	now := date(2026, time.June, 15)
	chemRepo := &fakeChemicalRepo{chemicals: []model.Chemical{
		{Name: "Nearly Out", Quantity: 50, ChemicalState: model.StateLiquid, Expires: now},
		{Name: "Borderline", Quantity: 99, ChemicalState: model.StateSolid, Expires: now},
	}}

	svc := NewReportService(chemRepo, &fakeActivityRepo{})
	table, err := svc.LowStockReport("60", now)
	if err != nil {
		t.Fatalf("LowStockReport: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0][0] != "Nearly Out" {
		t.Errorf("rows = %v, want only Nearly Out", table.Rows)
	}
}

func TestLowStockReportBadThreshold(t *testing.T) {
	svc := NewReportService(&fakeChemicalRepo{}, &fakeActivityRepo{})
	for _, threshold := range []string{"abc", "-10", "0"} {
		if _, err := svc.LowStockReport(threshold, time.Now()); !errors.Is(err, ErrInvalidReportParams) {
			t.Errorf("LowStockReport(threshold=%q) error = %v, want ErrInvalidReportParams", threshold, err)
		}
	}
}

func TestUsageReport(t *testing.T) {
	ethanol := &model.Chemical{
		Name:          "Ethanol",
		ChemicalState: model.StateLiquid,
		Location:      &model.Location{Name: "Flammables Locker"},
	}
	user := &model.User{FirstName: "Alex", LastName: "Technician"}

	actRepo := &fakeActivityRepo{activities: []model.ChemicalActivity{
		{Action: model.ActionUsed, Quantity: -12, Timestamp: date(2026, time.June, 10), Chemical: ethanol, User: user},
		{Action: model.ActionUsed, Quantity: 5, Timestamp: date(2026, time.July, 2), Chemical: ethanol, User: user},
	}}

	svc := NewReportService(&fakeChemicalRepo{}, actRepo)
	table, err := svc.UsageReport("2026-06-01", "2026-06-30", nil, nil)
	if err != nil {
		t.Fatalf("UsageReport: %v", err)
	}

	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1 (July activity out of range)", len(table.Rows))
	}
	row := table.Rows[0]
	if row[1] != "Ethanol" {
		t.Errorf("chemical = %q", row[1])
	}
	if row[2] != "Used" {
		t.Errorf("action = %q, want Used", row[2])
	}
	if row[3] != "12 L" {
		t.Errorf("quantity = %q, want %q (absolute value with unit)", row[3], "12 L")
	}
	if row[4] != "Flammables Locker" {
		t.Errorf("location = %q", row[4])
	}
	if row[5] != "Alex Technician" {
		t.Errorf("user = %q", row[5])
	}
	if row[6] != "N/A" {
		t.Errorf("empty notes = %q, want N/A", row[6])
	}
}

func TestUsageReportRequiresDates(t *testing.T) {
	svc := NewReportService(&fakeChemicalRepo{}, &fakeActivityRepo{})

	if _, err := svc.UsageReport("", "2026-06-30", nil, nil); !errors.Is(err, ErrInvalidReportParams) {
		t.Errorf("missing start_date error = %v, want ErrInvalidReportParams", err)
	}
	if _, err := svc.UsageReport("2026-06-01", "", nil, nil); !errors.Is(err, ErrInvalidReportParams) {
		t.Errorf("missing end_date error = %v, want ErrInvalidReportParams", err)
	}
	if _, err := svc.UsageReport("06/01/2026", "2026-06-30", nil, nil); !errors.Is(err, ErrInvalidReportParams) {
		t.Errorf("malformed date error = %v, want ErrInvalidReportParams", err)
	}
}

func TestInventoryReport(t *testing.T) {
	now := date(2026, time.June, 15)
	chemRepo := &fakeChemicalRepo{chemicals: []model.Chemical{
		{
			Name:              "Ethanol",
			Quantity:          1200,
			ChemicalState:     model.StateLiquid,
			ChemicalType:      model.TypeOrganic,
			MolecularFormula:  "C2H5OH",
			HazardInformation: strings.Repeat("x", 60),
			Expires:           date(2026, time.September, 1),
			Location:          &model.Location{Name: "Flammables Locker"},
		},
	}}

	svc := NewReportService(chemRepo, &fakeActivityRepo{})
	table, err := svc.InventoryReport("", "", nil, now)
	if err != nil {
		t.Fatalf("InventoryReport: %v", err)
	}

	if table.PeriodStart != "2026-06-15" || table.PeriodEnd != "2026-06-15" {
		t.Errorf("period defaults = %q to %q, want today on both ends", table.PeriodStart, table.PeriodEnd)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	row := table.Rows[0]
	if row[3] != "1200 L" {
		t.Errorf("quantity = %q, want %q", row[3], "1200 L")
	}
	if want := strings.Repeat("x", 50) + "..."; row[6] != want {
		t.Errorf("hazard info not truncated: %q", row[6])
	}
}

func TestInventoryReportBadDate(t *testing.T) {
	svc := NewReportService(&fakeChemicalRepo{}, &fakeActivityRepo{})
	if _, err := svc.InventoryReport("June 1", "", nil, time.Now()); !errors.Is(err, ErrInvalidReportParams) {
		t.Errorf("malformed start_date error = %v, want ErrInvalidReportParams", err)
	}
}

func TestTruncateHazard(t *testing.T) {
	exact := strings.Repeat("a", 50)
	if got := TruncateHazard(exact); got != exact {
		t.Errorf("50-char string should pass through unchanged, got %q", got)
	}
	long := strings.Repeat("a", 51)
	if got := TruncateHazard(long); got != exact+"..." {
		t.Errorf("51-char string should truncate to 50 plus ellipsis, got %q", got)
	}
	if got := TruncateHazard("short"); got != "short" {
		t.Errorf("short string changed: %q", got)
	}
}

func TestEndOfDay(t *testing.T) {
	in := time.Date(2026, time.June, 15, 9, 30, 0, 0, time.UTC)
	got := EndOfDay(in)
	want := time.Date(2026, time.June, 15, 23, 59, 59, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("EndOfDay = %v, want %v", got, want)
	}
}
