package ingestion_test

import (
	"context"
	"testing"

	"go-payslip/internal/ingestion"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUploadRepository_MarkCompletedWithinTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New().String()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE upload_jobs").
		WithArgs(id, ingestion.StatusCompleted, 12, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := ingestion.NewUploadRepository(nil).WithTx(tx)
	assert.NoError(t, repo.MarkCompleted(context.Background(), id, 12, 3))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
