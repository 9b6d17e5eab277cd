// Package export renders report spreadsheets with excelize.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"xflyve-service/internal/model"
)

const dateLayout = "2006-01-02"

// DriversToExcel builds the driver roster sheet.
func DriversToExcel(drivers []model.Driver) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Drivers"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Name", "Email", "Role", "Driver Type", "Registered"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, d := range drivers {
		values := []interface{}{
			d.ID.String(),
			d.Name,
			d.Email,
			string(d.Role),
			string(d.DriverType),
			d.CreatedAt.Format(dateLayout),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write drivers sheet: %w", err)
	}
	filename := fmt.Sprintf("drivers_%s.xlsx", time.Now().Format(dateLayout))
	return buf, filename, nil
}

// WorkLogsToExcel builds the work log report sheet.
func WorkLogsToExcel(logs []model.DailyWorkLog) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Work Logs"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Driver ID", "Date", "Hours", "Kilometers",
		"Start", "End", "Deliveries", "Delivery Locations", "Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, l := range logs {
		values := []interface{}{
			l.DriverID.String(),
			l.Date.Format(dateLayout),
			l.Hours,
			l.Kilometers,
			l.LocalStartTime,
			l.LocalEndTime,
			l.DeliveriesDone,
			strings.Join(l.DeliveryLocations, ", "),
			l.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("write work logs sheet: %w", err)
	}
	filename := fmt.Sprintf("work_logs_%s.xlsx", time.Now().Format(dateLayout))
	return buf, filename, nil
}
