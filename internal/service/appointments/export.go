package appointments

import (
	"context"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/appointments/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

const (
	icsProductID = "-//SMC BarberBooking//Agenda//PT"
	icsUIDDomain = "barberbooking"
	xlsxSheet    = "Agendamentos"
)

var xlsxHeaders = []string{
	"ID",
	"Data",
	"Início",
	"Fim",
	"Serviço",
	"Duração (min)",
	"Preço",
	"Cliente",
	"Telefone",
	"Email",
	"Status",
	"Observações",
}

// xlsxColumnWidths ширина колонок листа (диапазоны включительно)
var xlsxColumnWidths = []struct {
	from, to string
	width    float64
}{
	{"A", "D", 12},
	{"E", "E", 24},
	{"H", "J", 22},
	{"L", "L", 40},
}

// ExportICS выгружает подтвержденные записи за период в формате iCalendar
func (s *Service) ExportICS(ctx context.Context, req *models.ListRequest) ([]byte, error) {
	confirmed := string(domain.StatusConfirmed)
	items, err := s.list(ctx, "ExportICS", &models.ListRequest{From: req.From, To: req.To, Status: &confirmed})
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(icsProductID)
	cal.SetXWRTimezone(s.loc.String())

	stamp := time.Now().UTC()
	for _, a := range items {
		interval, err := a.Interval(s.loc)
		if err != nil {
			s.logger.Warn("ExportICS: skip appointment id=%d with broken time: %v", a.ID, err)
			continue
		}

		event := cal.AddEvent(fmt.Sprintf("appointment-%d@%s", a.ID, icsUIDDomain))
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(a.CreatedAt)
		event.SetModifiedAt(a.UpdatedAt)
		event.SetStartAt(interval.Start)
		event.SetEndAt(interval.End)
		event.SetSummary(fmt.Sprintf("%s - %s", a.ServiceName, a.CustomerName))
		event.SetDescription(describe(a))
		event.SetStatus(ical.ObjectStatusConfirmed)
		if a.ExternalEventLink != nil {
			event.SetURL(*a.ExternalEventLink)
		}
	}

	s.logger.Info("ExportICS: exported %d appointments", len(items))
	return []byte(cal.Serialize()), nil
}

// ExportXLSX выгружает записи за период в таблицу Excel
func (s *Service) ExportXLSX(ctx context.Context, req *models.ListRequest) ([]byte, error) {
	items, err := s.list(ctx, "ExportXLSX", req)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("ExportXLSX: failed to close workbook: %v", err)
		}
	}()

	idx, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("%w: ExportXLSX - create sheet: %w", ErrInternal, err)
	}
	f.SetActiveSheet(idx)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ExportXLSX - create style: %w", ErrInternal, err)
	}

	for col, title := range xlsxHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(xlsxSheet, cell, title); err != nil {
			return nil, fmt.Errorf("%w: ExportXLSX - write header: %w", ErrInternal, err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(xlsxHeaders), 1)
	if err := f.SetCellStyle(xlsxSheet, "A1", lastHeader, headerStyle); err != nil {
		return nil, fmt.Errorf("%w: ExportXLSX - style header: %w", ErrInternal, err)
	}

	for i, a := range items {
		row := models.FromDomainAppointment(a)
		values := []interface{}{
			row.ID,
			row.Date,
			row.StartTime.String(),
			row.EndTime.String(),
			row.ServiceName,
			row.DurationMinutes,
			row.ServicePrice,
			row.CustomerName,
			row.CustomerPhone,
			ptr.Value(row.CustomerEmail),
			row.Status,
			ptr.Value(row.Notes),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(xlsxSheet, cell, v); err != nil {
				return nil, fmt.Errorf("%w: ExportXLSX - write row: %w", ErrInternal, err)
			}
		}
	}

	for _, w := range xlsxColumnWidths {
		if err := f.SetColWidth(xlsxSheet, w.from, w.to, w.width); err != nil {
			return nil, fmt.Errorf("%w: ExportXLSX - column width %s:%s: %w", ErrInternal, w.from, w.to, err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		s.logger.Warn("ExportXLSX: failed to delete default sheet: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: ExportXLSX - write workbook: %w", ErrInternal, err)
	}

	s.logger.Info("ExportXLSX: exported %d appointments", len(items))
	return buf.Bytes(), nil
}

func describe(a *domain.Appointment) string {
	lines := []string{
		"Cliente: " + a.CustomerName,
		"Telefone: " + a.CustomerPhone,
	}
	if a.CustomerEmail != nil && *a.CustomerEmail != "" {
		lines = append(lines, "Email: "+*a.CustomerEmail)
	}
	if a.Notes != nil && *a.Notes != "" {
		lines = append(lines, "Observações: "+*a.Notes)
	}
	return strings.Join(lines, "\n")
}
