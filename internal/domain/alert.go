package domain

import (
	"fmt"
	"strings"
	"time"
)

// Severity is the coarse urgency attached to a submission.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Well-known alert types. The field is free text on the wire; these constants
// cover the values the submission form offers.
const (
	AlertTypeYellow = "yellow"
	AlertTypeRed    = "red"
)

// Submission-tab column positions. Rows are positional: a row is the ordered
// tuple (phone number, area, city, alert type, description).
const (
	ColPhoneNumber = 0
	ColArea        = 1
	ColCity        = 2
	ColAlertType   = 3
	ColDescription = 4
)

// AlertSubmission is a user-submitted alert. Immutable once sent.
type AlertSubmission struct {
	PhoneNumber string   `json:"phoneNumber"`
	City        string   `json:"city"`
	Area        string   `json:"area"`
	AlertType   string   `json:"alertType"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// MissingFieldsError reports which required submission fields were absent.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}

// Validate returns a MissingFieldsError when any required field is empty.
// Description and severity are optional.
func (s AlertSubmission) Validate() error {
	var missing []string
	if s.PhoneNumber == "" {
		missing = append(missing, "phoneNumber")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	if s.Area == "" {
		missing = append(missing, "area")
	}
	if s.AlertType == "" {
		missing = append(missing, "alertType")
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// IsMissingFields reports whether err is a validation failure.
func IsMissingFields(err error) bool {
	_, ok := err.(*MissingFieldsError)
	return ok
}

// SubmissionAck is the acknowledgment returned to the caller for every
// accepted submission, whether or not the workbook write succeeded.
type SubmissionAck struct {
	Timestamp   time.Time `json:"timestamp"`
	PhoneNumber string    `json:"phoneNumber"`
	City        string    `json:"city"`
	Area        string    `json:"area"`
	AlertType   string    `json:"alertType"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	Status      string    `json:"status"`
}

// NewAck normalizes a validated submission into its acknowledgment form:
// severity defaults to medium, description to the empty string, status to
// "pending", timestamp to the current clock time.
func NewAck(s AlertSubmission) SubmissionAck {
	severity := s.Severity
	if severity == "" {
		severity = SeverityMedium
	}
	return SubmissionAck{
		Timestamp:   clock.Now().UTC(),
		PhoneNumber: s.PhoneNumber,
		City:        s.City,
		Area:        s.Area,
		AlertType:   s.AlertType,
		Description: s.Description,
		Severity:    severity,
		Status:      "pending",
	}
}

// AlertRow is a submission-tab row. Logically keyed by (area, city); the key
// is not unique and multiple historical rows may share it.
type AlertRow struct {
	PhoneNumber string `json:"phoneNumber"`
	Area        string `json:"area"`
	City        string `json:"city"`
	AlertType   string `json:"alertType"`
	Description string `json:"description"`
}

// Cells renders the row in workbook column order.
func (r AlertRow) Cells() []string {
	return []string{r.PhoneNumber, r.Area, r.City, r.AlertType, r.Description}
}

// AlertRowFromCells builds an AlertRow from positional cells, tolerating
// ragged rows by treating missing trailing cells as empty.
func AlertRowFromCells(cells []string) AlertRow {
	return AlertRow{
		PhoneNumber: cellAt(cells, ColPhoneNumber),
		Area:        cellAt(cells, ColArea),
		City:        cellAt(cells, ColCity),
		AlertType:   cellAt(cells, ColAlertType),
		Description: cellAt(cells, ColDescription),
	}
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// RowKey formats the logical (area, city) key, used as the Kafka message key
// so submissions for the same locality land on the same partition.
func RowKey(area, city string) string {
	return fmt.Sprintf("%s|%s", city, area)
}
