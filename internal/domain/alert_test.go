package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() AlertSubmission {
	return AlertSubmission{
		PhoneNumber: "9876543210",
		City:        "Amritsar",
		Area:        "Hall Bazaar",
		AlertType:   AlertTypeRed,
		Description: "water rising fast",
		Severity:    SeverityHigh,
	}
}

func TestValidate_AllFieldsPresent(t *testing.T) {
	require.NoError(t, validSubmission().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	sub := AlertSubmission{PhoneNumber: "1", Area: "X", AlertType: AlertTypeRed}

	err := sub.Validate()
	require.Error(t, err)
	assert.True(t, IsMissingFields(err))
	assert.Equal(t, "Missing required fields: city", err.Error())
}

func TestValidate_ReportsEveryMissingField(t *testing.T) {
	err := AlertSubmission{}.Validate()
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: phoneNumber, city, area, alertType", err.Error())
}

func TestValidate_DescriptionAndSeverityOptional(t *testing.T) {
	sub := validSubmission()
	sub.Description = ""
	sub.Severity = ""
	require.NoError(t, sub.Validate())
}

func TestNewAck_Defaults(t *testing.T) {
	fixed := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	sub := validSubmission()
	sub.Description = ""
	sub.Severity = ""

	ack := NewAck(sub)

	assert.Equal(t, fixed, ack.Timestamp)
	assert.Equal(t, SeverityMedium, ack.Severity)
	assert.Equal(t, "pending", ack.Status)
	assert.Equal(t, "", ack.Description)
	assert.Equal(t, sub.PhoneNumber, ack.PhoneNumber)
}

func TestAlertRowRoundTrip(t *testing.T) {
	row := AlertRow{
		PhoneNumber: "1",
		Area:        "Hall Bazaar",
		City:        "Amritsar",
		AlertType:   AlertTypeYellow,
		Description: "",
	}

	assert.Equal(t, row, AlertRowFromCells(row.Cells()))
}

func TestAlertRowFromCells_RaggedRow(t *testing.T) {
	row := AlertRowFromCells([]string{"1", "Hall Bazaar"})

	assert.Equal(t, "1", row.PhoneNumber)
	assert.Equal(t, "Hall Bazaar", row.Area)
	assert.Empty(t, row.City)
	assert.Empty(t, row.AlertType)
	assert.Empty(t, row.Description)
}

func TestRiskLabel(t *testing.T) {
	assert.Equal(t, "CRITICAL", RiskLabel(85))
	assert.Equal(t, "HIGH", RiskLabel(60))
	assert.Equal(t, "MEDIUM", RiskLabel(41.5))
	assert.Equal(t, "LOW", RiskLabel(0))
}
