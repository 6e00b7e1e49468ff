package casework

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCaseDocument(t *testing.T) {
	caseID := uuid.New()
	uploader := uuid.New()

	t.Run("captures status at upload time", func(t *testing.T) {
		doc, err := NewCaseDocument(caseID, "death-certificate.pdf", "application/pdf",
			"cases/FC-2026-00001/death-certificate.pdf", "application/pdf",
			2048, StatusFuneralArrangement, &uploader)

		require.NoError(t, err)
		assert.Equal(t, StatusFuneralArrangement, doc.StatusWhenUploaded)
		assert.Equal(t, caseID, doc.CaseID)
		assert.Equal(t, &uploader, doc.UploadedBy)
		assert.False(t, doc.UploadedAt.IsZero())
		assert.False(t, doc.UploadConfirmed)
	})

	t.Run("rejects nil case ID", func(t *testing.T) {
		_, err := NewCaseDocument(uuid.Nil, "a.pdf", "application/pdf", "k", "application/pdf", 1, StatusRecordCreated, nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCaseDocument(caseID, " ", "application/pdf", "k", "application/pdf", 1, StatusRecordCreated, nil)
		assert.Error(t, err)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		_, err := NewCaseDocument(caseID, strings.Repeat("x", 256), "application/pdf", "k", "application/pdf", 1, StatusRecordCreated, nil)
		assert.Error(t, err)
	})

	t.Run("rejects empty storage key", func(t *testing.T) {
		_, err := NewCaseDocument(caseID, "a.pdf", "application/pdf", "", "application/pdf", 1, StatusRecordCreated, nil)
		assert.Error(t, err)
	})

	t.Run("rejects zero and oversized files", func(t *testing.T) {
		_, err := NewCaseDocument(caseID, "a.pdf", "application/pdf", "k", "application/pdf", 0, StatusRecordCreated, nil)
		assert.Error(t, err)

		_, err = NewCaseDocument(caseID, "a.pdf", "application/pdf", "k", "application/pdf", MaxDocumentFileSize+1, StatusRecordCreated, nil)
		assert.Error(t, err)
	})

	t.Run("rejects unknown captured status", func(t *testing.T) {
		_, err := NewCaseDocument(caseID, "a.pdf", "application/pdf", "k", "application/pdf", 1, CaseStatus("nope"), nil)
		assert.Error(t, err)
	})
}

func TestCaseDocument_SatisfiesGateFor(t *testing.T) {
	doc, err := NewCaseDocument(uuid.New(), "quote.pdf", "application/pdf",
		"cases/x/quote.pdf", "application/pdf", 100, StatusQuotationAccepted, nil)
	require.NoError(t, err)

	// A registration without verified bytes is not evidence
	assert.False(t, doc.SatisfiesGateFor(StatusQuotationAccepted))

	doc.ConfirmUpload()
	assert.True(t, doc.UploadConfirmed)
	assert.True(t, doc.SatisfiesGateFor(StatusQuotationAccepted))
	// A document only counts toward the status it was captured at
	assert.False(t, doc.SatisfiesGateFor(StatusPaymentMade))
	assert.False(t, doc.SatisfiesGateFor(StatusFuneralArrangement))
}
