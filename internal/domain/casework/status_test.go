package casework

import (
	"testing"

	"github.com/funeralworks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseStatus_IsValid(t *testing.T) {
	tests := []struct {
		status  CaseStatus
		isValid bool
	}{
		{StatusRecordCreated, true},
		{StatusFuneralArrangement, true},
		{StatusDocumentsSentHA, true},
		{StatusQuotationAccepted, true},
		{StatusPaymentMade, true},
		{StatusPaymentArrangement, true},
		{StatusPaymentReminder1, true},
		{StatusPaymentReminder2, true},
		{StatusFinalReminder, true},
		{StatusAgreementBreached, true},
		{StatusFuneralCompleted, true},
		{CaseStatus("INVALID"), false},
		{CaseStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.status.IsValid())
		})
	}
}

func TestDefinitionFor_Percentages(t *testing.T) {
	tests := []struct {
		status     CaseStatus
		percentage int
		requiresDoc bool
	}{
		{StatusRecordCreated, 1, false},
		{StatusFuneralArrangement, 10, true},
		{StatusDocumentsSentHA, 15, true},
		{StatusQuotationAccepted, 20, true},
		{StatusPaymentMade, 30, true},
		{StatusPaymentArrangement, 40, true},
		{StatusPaymentReminder1, 50, false},
		{StatusPaymentReminder2, 60, false},
		{StatusFinalReminder, 70, false},
		{StatusAgreementBreached, 70, false},
		{StatusFuneralCompleted, 100, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			def, err := DefinitionFor(tt.status)
			require.NoError(t, err)
			assert.Equal(t, tt.percentage, def.Percentage)
			assert.Equal(t, tt.requiresDoc, def.RequiresDocument)
			assert.Equal(t, tt.status, def.Status)
			assert.NotEmpty(t, def.Label)
			assert.NotEmpty(t, def.Color)
		})
	}
}

func TestDefinitionFor_UnknownStatus(t *testing.T) {
	_, err := DefinitionFor(CaseStatus("on_hold"))
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "UNKNOWN_STATUS", domainErr.Code)
}

func TestDefinitionFor_StableAcrossCalls(t *testing.T) {
	first, err := DefinitionFor(StatusQuotationAccepted)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		def, err := DefinitionFor(StatusQuotationAccepted)
		require.NoError(t, err)
		assert.Equal(t, first, def)
	}
}

func TestAllStatuses_CanonicalOrder(t *testing.T) {
	all := AllStatuses()
	require.Len(t, all, 11)

	expected := []CaseStatus{
		StatusRecordCreated,
		StatusFuneralArrangement,
		StatusDocumentsSentHA,
		StatusQuotationAccepted,
		StatusPaymentMade,
		StatusPaymentArrangement,
		StatusPaymentReminder1,
		StatusPaymentReminder2,
		StatusFinalReminder,
		StatusAgreementBreached,
		StatusFuneralCompleted,
	}
	for i, def := range all {
		assert.Equal(t, expected[i], def.Status)
	}
}

func TestAllStatuses_ReturnsCopy(t *testing.T) {
	all := AllStatuses()
	all[0].Percentage = 99

	def, err := DefinitionFor(StatusRecordCreated)
	require.NoError(t, err)
	assert.Equal(t, 1, def.Percentage)
}

func TestCaseStatus_Label(t *testing.T) {
	assert.Equal(t, "Record Created", StatusRecordCreated.Label())
	assert.Equal(t, "Final Payment Reminder", StatusFinalReminder.Label())
	// Unknown statuses fall back to the raw identifier
	assert.Equal(t, "bogus", CaseStatus("bogus").Label())
}

func TestCaseStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusFuneralCompleted.IsTerminal())
	assert.True(t, StatusAgreementBreached.IsTerminal())
	assert.False(t, StatusRecordCreated.IsTerminal())
	assert.False(t, StatusFinalReminder.IsTerminal())
}

func TestCaseStatus_IsPaymentAtRisk(t *testing.T) {
	tests := []struct {
		status CaseStatus
		atRisk bool
	}{
		{StatusPaymentReminder1, true},
		{StatusPaymentReminder2, true},
		{StatusFinalReminder, true},
		{StatusAgreementBreached, true},
		{StatusRecordCreated, false},
		{StatusPaymentMade, false},
		{StatusFuneralCompleted, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.atRisk, tt.status.IsPaymentAtRisk())
		})
	}
}
