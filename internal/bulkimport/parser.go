package bulkimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	// MaxFileSize caps uploaded import files.
	MaxFileSize = 10 << 20
	// MaxRows caps the number of data rows per upload.
	MaxRows = 100
)

var (
	ErrFileTooLarge    = errors.New("file exceeds the 10MB limit")
	ErrTooManyRows     = errors.New("file exceeds the 100 row limit")
	ErrUnsupportedType = errors.New("unsupported file type, expected .csv or .xlsx")
	ErrEmptyFile       = errors.New("file contains no data rows")
)

// Row is one parsed profile line. Line is the 1-based position in the source
// file including the header, so it matches what the uploader sees.
type Row struct {
	Line          int
	Name          string
	Email         string
	MobileNo      string
	Native        string
	Experience    *int
	Skills        []string
	Designation   string
	Department    string
	DateOfBirth   *time.Time
	DateOfJoining *time.Time

	// Password and Role are only honored together; a row with a password
	// becomes a login-capable account under that role.
	Password string
	Role     string
}

var headerAliases = map[string]string{
	"name":            "name",
	"fullname":        "name",
	"email":           "email",
	"emailaddress":    "email",
	"mobile":          "mobile",
	"mobileno":        "mobile",
	"mobilenumber":    "mobile",
	"phone":           "mobile",
	"native":          "native",
	"nativeplace":     "native",
	"experience":      "experience",
	"experienceyears": "experience",
	"skills":          "skills",
	"designation":     "designation",
	"department":      "department",
	"dateofbirth":     "dob",
	"dob":             "dob",
	"dateofjoining":   "doj",
	"doj":             "doj",
	"joiningdate":     "doj",
	"password":        "password",
	"role":            "role",
	"accessrole":      "role",
}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "01-02-2006", "2006/01/02", time.RFC3339}

// Parse decodes an uploaded CSV or XLSX file into rows. The first record is
// the header; column order is free as long as the names are recognizable.
func Parse(filename string, data []byte) ([]Row, error) {
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	var records [][]string
	var err error

	switch {
	case strings.HasSuffix(strings.ToLower(filename), ".csv"):
		records, err = readCSV(data)
	case strings.HasSuffix(strings.ToLower(filename), ".xlsx"):
		records, err = readXLSX(data)
	default:
		return nil, ErrUnsupportedType
	}
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return nil, ErrEmptyFile
	}
	if len(records)-1 > MaxRows {
		return nil, ErrTooManyRows
	}

	columns := mapHeader(records[0])
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("missing required column: name")
	}
	if _, ok := columns["email"]; !ok {
		return nil, fmt.Errorf("missing required column: email")
	}

	var rows []Row
	for i, record := range records[1:] {
		if isBlank(record) {
			continue
		}
		rows = append(rows, parseRow(i+2, record, columns))
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}
		records = append(records, record)
	}
	return records, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	return records, nil
}

func mapHeader(header []string) map[string]int {
	columns := make(map[string]int)
	for i, cell := range header {
		key := strings.ToLower(strings.NewReplacer(" ", "", "_", "", "-", "", ".", "").Replace(cell))
		if canonical, ok := headerAliases[key]; ok {
			columns[canonical] = i
		}
	}
	return columns
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRow(line int, record []string, columns map[string]int) Row {
	cell := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := Row{
		Line:        line,
		Name:        cell("name"),
		Email:       strings.ToLower(cell("email")),
		MobileNo:    cell("mobile"),
		Native:      cell("native"),
		Designation: cell("designation"),
		Department:  cell("department"),
	}

	if raw := cell("experience"); raw != "" {
		if years, err := strconv.Atoi(raw); err == nil && years >= 0 {
			row.Experience = &years
		}
	}

	if raw := cell("skills"); raw != "" {
		for _, skill := range strings.Split(raw, ",") {
			if skill = strings.TrimSpace(skill); skill != "" {
				row.Skills = append(row.Skills, skill)
			}
		}
	}

	row.DateOfBirth = parseDate(cell("dob"))
	row.DateOfJoining = parseDate(cell("doj"))
	row.Password = cell("password")
	row.Role = strings.ToUpper(cell("role"))
	return row
}

func parseDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
