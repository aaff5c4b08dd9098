package tenants

import (
	"encoding/csv"
	"io"
	"strconv"
)

var exportHeader = []string{"ID", "Company", "Admin", "Plan", "Status", "Users", "DB Size (GB)", "MRR", "Created"}

// WriteCSV writes tenants as CSV with a header row.
func WriteCSV(w io.Writer, tenants []Tenant) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, t := range tenants {
		record := []string{
			t.ID,
			t.Name,
			t.Admin,
			t.Plan,
			t.Status,
			strconv.Itoa(t.Users),
			strconv.FormatFloat(t.DBSizeGB, 'f', -1, 64),
			strconv.FormatFloat(t.MRR, 'f', 2, 64),
			t.CreatedOn.Format("2006-01-02"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
