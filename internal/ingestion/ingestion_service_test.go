package ingestion_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"go-payslip/internal/events"
	"go-payslip/internal/ingestion"
	ingestionerrors "go-payslip/internal/ingestion/errors"
	"go-payslip/internal/mapping"
	"go-payslip/internal/messaging/kafka"
	"go-payslip/internal/payrollitem"
	payrollitemerrors "go-payslip/internal/payrollitem/errors"
	"go-payslip/internal/payslip"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeUploadRepository struct {
	createFn             func(ctx context.Context, job *ingestion.UploadJob) error
	findByIDAndCompanyFn func(ctx context.Context, companyID string, id string) (*ingestion.UploadJob, error)

	processingIDs []string
	completed     []completedCall
	errored       []erroredCall
	notifiedIDs   []string
	txs           []*sql.Tx
}

func (f *fakeUploadRepository) WithTx(tx *sql.Tx) ingestion.UploadRepository {
	f.txs = append(f.txs, tx)
	return f
}

type completedCall struct {
	id             string
	processedCount int
	errorCount     int
}

type erroredCall struct {
	id             string
	message        string
	processedCount int
	errorCount     int
}

func (f *fakeUploadRepository) Create(ctx context.Context, job *ingestion.UploadJob) error {
	if f.createFn != nil {
		return f.createFn(ctx, job)
	}
	return nil
}

func (f *fakeUploadRepository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*ingestion.UploadJob, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUploadRepository) MarkProcessing(ctx context.Context, id string) error {
	f.processingIDs = append(f.processingIDs, id)
	return nil
}

func (f *fakeUploadRepository) MarkCompleted(ctx context.Context, id string, processedCount, errorCount int) error {
	f.completed = append(f.completed, completedCall{id: id, processedCount: processedCount, errorCount: errorCount})
	return nil
}

func (f *fakeUploadRepository) MarkError(ctx context.Context, id string, message string, processedCount, errorCount int) error {
	f.errored = append(f.errored, erroredCall{id: id, message: message, processedCount: processedCount, errorCount: errorCount})
	return nil
}

func (f *fakeUploadRepository) MarkNotified(ctx context.Context, id string) error {
	f.notifiedIDs = append(f.notifiedIDs, id)
	return nil
}

type fakeItemRepository struct {
	findAllByCompanyFn func(ctx context.Context, companyID string) ([]payrollitem.PayrollItem, error)
}

func (f *fakeItemRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payrollitem.PayrollItem, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeItemRepository) UpsertAll(ctx context.Context, items []payrollitem.PayrollItem) error {
	return nil
}

func (f *fakeItemRepository) DeleteAllByCompany(ctx context.Context, companyID string) error {
	return nil
}

type stubMappingService struct {
	config mapping.Config
	err    error
}

func (s *stubMappingService) Get(ctx context.Context, companyID string) (mapping.Config, error) {
	return s.config, s.err
}

func (s *stubMappingService) Save(ctx context.Context, companyID string, config mapping.Config) (mapping.Config, error) {
	return config, nil
}

func (s *stubMappingService) ParseAndClassify(ctx context.Context, displayLine, codeLine string) (mapping.Config, error) {
	return mapping.Config{}, nil
}

type fakeDirectoryRepository struct {
	employeeMapFn              func(ctx context.Context, companyID string) (map[string]string, error)
	updateEmployeeDepartmentFn func(ctx context.Context, companyID, employeeCode, departmentCode string) (bool, error)

	departmentUpdates int
}

func (f *fakeDirectoryRepository) EmployeeMap(ctx context.Context, companyID string) (map[string]string, error) {
	if f.employeeMapFn != nil {
		return f.employeeMapFn(ctx, companyID)
	}
	return map[string]string{}, nil
}

func (f *fakeDirectoryRepository) UpdateEmployeeDepartment(ctx context.Context, companyID, employeeCode, departmentCode string) (bool, error) {
	f.departmentUpdates++
	if f.updateEmployeeDepartmentFn != nil {
		return f.updateEmployeeDepartmentFn(ctx, companyID, employeeCode, departmentCode)
	}
	return true, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
	events   []kafka.OutboxEvent
	txs      []*sql.Tx
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	f.txs = append(f.txs, tx)
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type fakeFetcher struct {
	fetchFn func(ctx context.Context, url string) (io.ReadCloser, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.fetchFn != nil {
		return f.fetchFn(ctx, url)
	}
	return nil, fmt.Errorf("%w: no fetch stub", ingestion.ErrFetchNetwork)
}

func staticCSV(body string) *fakeFetcher {
	return &fakeFetcher{
		fetchFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(body)), nil
		},
	}
}

type ingestionDeps struct {
	db        *sql.DB
	uploads   *fakeUploadRepository
	items     *fakeItemRepository
	mappings  *stubMappingService
	employees *fakeDirectoryRepository
	payslips  *fakePayslipRepository
	outbox    *fakeOutboxRepository
	fetcher   *fakeFetcher
}

func (d *ingestionDeps) build() ingestion.Service {
	return ingestion.NewService(
		d.db, d.uploads, d.items, d.mappings, d.employees, d.payslips, d.outbox, d.fetcher, zap.NewNop(),
	)
}

var (
	testCompanyID = uuid.New()
	testUploadID  = uuid.New()
	testUserA     = uuid.New()
	testUserB     = uuid.New()
)

func intPtr(v int) *int { return &v }

// A happy-path fixture: three payroll items bound to CSV columns 2..4, an
// employee-code main field on column 0, and two known employees.
func happyDeps(csvBody string) *ingestionDeps {
	job := ingestion.UploadJob{
		ID:          testUploadID,
		CompanyID:   testCompanyID,
		FileURL:     "https://files.example.com/payroll.csv",
		PaymentDate: time.Date(2026, 7, 25, 0, 0, 0, 0, time.UTC),
		Status:      ingestion.StatusPending,
	}

	config := mapping.EmptyConfig()
	config = config.SetMainField(mapping.MainEmployeeCode, mapping.MainField{ColumnIndex: 0, HeaderCode: "KY01"})

	return &ingestionDeps{
		uploads: &fakeUploadRepository{
			findByIDAndCompanyFn: func(ctx context.Context, companyID string, id string) (*ingestion.UploadJob, error) {
				if companyID == testCompanyID.String() && id == testUploadID.String() {
					j := job
					return &j, nil
				}
				return nil, gorm.ErrRecordNotFound
			},
		},
		items: &fakeItemRepository{
			findAllByCompanyFn: func(ctx context.Context, companyID string) ([]payrollitem.PayrollItem, error) {
				return []payrollitem.PayrollItem{
					{ID: "income_ky21_2", CompanyID: testCompanyID, Name: "基本給", Type: payrollitem.TypeIncome, CSVColumn: intPtr(2)},
					{ID: "deduction_ky41_3", CompanyID: testCompanyID, Name: "健康保険", Type: payrollitem.TypeDeduction, CSVColumn: intPtr(3)},
					{ID: "attendance_ky61_4", CompanyID: testCompanyID, Name: "出勤日数", Type: payrollitem.TypeDays, CSVColumn: intPtr(4)},
				}, nil
			},
		},
		mappings: &stubMappingService{config: config},
		employees: &fakeDirectoryRepository{
			employeeMapFn: func(ctx context.Context, companyID string) (map[string]string, error) {
				return map[string]string{
					"E001": testUserA.String(),
					"E002": testUserB.String(),
				}, nil
			},
		},
		payslips: &fakePayslipRepository{},
		outbox:   &fakeOutboxRepository{},
		fetcher:  staticCSV(csvBody),
	}
}

func processRequest() ingestion.ProcessUploadRequest {
	return ingestion.ProcessUploadRequest{
		UploadID:  testUploadID.String(),
		CompanyID: testCompanyID.String(),
	}
}

func TestIngestionService_Process_Success(t *testing.T) {
	ctx := context.Background()
	csvBody := "KY01,KY02,KY21,KY41,KY61\n" +
		"E001,山田太郎,250000,32000,20\n" +
		"E999,未登録,100000,5000,19\n" +
		"E002,佐藤花子,\"¥230,000\",30000,\n"

	deps := happyDeps(csvBody)
	svc := deps.build()

	resp, err := svc.Process(ctx, processRequest())

	assert.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Equal(t, 1, resp.ErrorCount) // the unknown employee row

	// Status transition: processing, then completed with the run counts.
	assert.Equal(t, []string{testUploadID.String()}, deps.uploads.processingIDs)
	assert.Equal(t, []completedCall{{id: testUploadID.String(), processedCount: 2, errorCount: 1}}, deps.uploads.completed)
	assert.Empty(t, deps.uploads.errored)

	// Two records in one batch.
	assert.Len(t, deps.payslips.batches, 1)
	records := deps.payslips.batches[0]
	assert.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "E001", first.EmployeeID)
	assert.Equal(t, testUserA, first.UserID)
	assert.Equal(t, testCompanyID, first.CompanyID)
	assert.Equal(t, testUploadID, first.UploadID)
	assert.Equal(t, float64(250000), first.TotalIncome)
	assert.Equal(t, float64(32000), first.TotalDeduction)
	assert.Equal(t, float64(218000), first.NetAmount)

	items, err := first.GetItems()
	assert.NoError(t, err)
	assert.Equal(t, float64(250000), items["income_ky21_2"].Value)
	assert.Equal(t, "20", items["attendance_ky61_4"].Value)

	second := records[1]
	assert.Equal(t, "E002", second.EmployeeID)
	assert.Equal(t, float64(230000), second.TotalIncome)
	assert.Equal(t, float64(200000), second.NetAmount)

	// The empty days cell survives as "" rather than 0.
	items, err = second.GetItems()
	assert.NoError(t, err)
	assert.Equal(t, "", items["attendance_ky61_4"].Value)
}

func TestIngestionService_Process_IdentifierHeuristic(t *testing.T) {
	ctx := context.Background()
	csvBody := "部門,社員番号,KY21\nD10,E001,100000\n"

	deps := happyDeps(csvBody)
	// No employee-code main field configured; the header scan must find 社員番号.
	deps.mappings.config = mapping.EmptyConfig()
	deps.items.findAllByCompanyFn = func(ctx context.Context, companyID string) ([]payrollitem.PayrollItem, error) {
		return []payrollitem.PayrollItem{
			{ID: "income_ky21_2", CompanyID: testCompanyID, Name: "基本給", Type: payrollitem.TypeIncome, CSVColumn: intPtr(2)},
		}, nil
	}
	svc := deps.build()

	resp, err := svc.Process(ctx, processRequest())

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, "E001", deps.payslips.batches[0][0].EmployeeID)
}

func TestIngestionService_Process_ColumnMappingOverride(t *testing.T) {
	ctx := context.Background()
	// The income amount lives in column 1 here, not in the catalog's column 2.
	csvBody := "KY01,KY21\nE001,50000\n"

	deps := happyDeps(csvBody)
	svc := deps.build()

	req := processRequest()
	req.ColumnMappings = map[string]int{
		"income_ky21_2":     1,
		"deduction_ky41_3":  -1,
		"attendance_ky61_4": -1,
	}

	resp, err := svc.Process(ctx, req)

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.ProcessedCount)
	assert.Equal(t, float64(50000), deps.payslips.batches[0][0].TotalIncome)
}

func TestIngestionService_Process_InputValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid company id", func(t *testing.T) {
		deps := happyDeps("")
		svc := deps.build()

		req := processRequest()
		req.CompanyID = "nope"

		_, err := svc.Process(ctx, req)
		assert.ErrorIs(t, err, ingestionerrors.ErrInvalidCompanyID)
	})

	t.Run("invalid upload id", func(t *testing.T) {
		deps := happyDeps("")
		svc := deps.build()

		req := processRequest()
		req.UploadID = "nope"

		_, err := svc.Process(ctx, req)
		assert.ErrorIs(t, err, ingestionerrors.ErrInvalidUploadID)
	})

	t.Run("upload not found", func(t *testing.T) {
		deps := happyDeps("")
		svc := deps.build()

		req := processRequest()
		req.UploadID = uuid.New().String()

		_, err := svc.Process(ctx, req)
		assert.ErrorIs(t, err, ingestionerrors.ErrUploadNotFound)
	})

	t.Run("upload already running", func(t *testing.T) {
		deps := happyDeps("")
		deps.uploads.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*ingestion.UploadJob, error) {
			return &ingestion.UploadJob{ID: testUploadID, CompanyID: testCompanyID, Status: ingestion.StatusProcessing}, nil
		}
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())
		assert.ErrorIs(t, err, ingestionerrors.ErrUploadAlreadyRunning)
	})

	t.Run("empty catalog", func(t *testing.T) {
		deps := happyDeps("")
		deps.items.findAllByCompanyFn = func(ctx context.Context, companyID string) ([]payrollitem.PayrollItem, error) {
			return nil, nil
		}
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())
		assert.ErrorIs(t, err, payrollitemerrors.ErrCatalogEmpty)
		assert.Empty(t, deps.uploads.processingIDs)
	})

	t.Run("no usable mapping", func(t *testing.T) {
		deps := happyDeps("")
		deps.items.findAllByCompanyFn = func(ctx context.Context, companyID string) ([]payrollitem.PayrollItem, error) {
			return []payrollitem.PayrollItem{
				{ID: "income_ky21_2", CompanyID: testCompanyID, Name: "基本給", Type: payrollitem.TypeIncome},
			}, nil
		}
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())
		assert.ErrorIs(t, err, ingestionerrors.ErrNoUsableMapping)
		assert.Empty(t, deps.uploads.processingIDs)
	})

	t.Run("missing file url", func(t *testing.T) {
		deps := happyDeps("")
		deps.uploads.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*ingestion.UploadJob, error) {
			return &ingestion.UploadJob{ID: testUploadID, CompanyID: testCompanyID}, nil
		}
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())
		assert.ErrorIs(t, err, ingestionerrors.ErrMissingFileURL)
		assert.Empty(t, deps.uploads.processingIDs)
	})
}

func TestIngestionService_Process_FetchFailureMarksJobErrored(t *testing.T) {
	ctx := context.Background()

	deps := happyDeps("")
	deps.fetcher = &fakeFetcher{
		fetchFn: func(ctx context.Context, url string) (io.ReadCloser, error) {
			return nil, fmt.Errorf("%w: dial tcp: connection refused", ingestion.ErrFetchNetwork)
		},
	}
	svc := deps.build()

	_, err := svc.Process(ctx, processRequest())

	assert.Error(t, err)
	assert.Len(t, deps.uploads.errored, 1)
	assert.Contains(t, deps.uploads.errored[0].message, "unreachable")
	assert.Empty(t, deps.uploads.completed)
}

func TestIngestionService_Process_BatchCommitFailureAbortsRun(t *testing.T) {
	ctx := context.Background()
	csvBody := "KY01,KY02,KY21,KY41,KY61\nE001,山田,100,0,1\nE002,花子,200,0,1\n"

	deps := happyDeps(csvBody)
	deps.payslips.createAllFn = func(ctx context.Context, records []payslip.Payslip) error {
		return errors.New("deadlock detected")
	}
	svc := deps.build()

	_, err := svc.Process(ctx, processRequest())

	assert.Error(t, err)
	assert.Len(t, deps.uploads.errored, 1)
	assert.Contains(t, deps.uploads.errored[0].message, "batch commit failed")
}

func TestIngestionService_Process_RerunAppendsRecords(t *testing.T) {
	ctx := context.Background()
	csvBody := "KY01,KY02,KY21,KY41,KY61\nE001,山田,100000,0,1\n"

	deps := happyDeps(csvBody)
	svc := deps.build()

	_, err := svc.Process(ctx, processRequest())
	assert.NoError(t, err)

	// Running the same upload again writes a second set of records; nothing
	// deduplicates across runs.
	_, err = svc.Process(ctx, processRequest())
	assert.NoError(t, err)

	total := 0
	for _, batch := range deps.payslips.batches {
		total += len(batch)
	}
	assert.Equal(t, 2, total)
}

func TestIngestionService_Process_NotificationScheduling(t *testing.T) {
	ctx := context.Background()
	csvBody := "KY01,KY02,KY21,KY41,KY61\nE001,山田,100000,0,1\n"

	scheduledDeps := func(t *testing.T) (*ingestionDeps, sqlmock.Sqlmock) {
		t.Helper()
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		t.Cleanup(func() { db.Close() })

		scheduled := time.Date(2026, 7, 25, 9, 0, 0, 0, time.UTC)
		deps := happyDeps(csvBody)
		deps.db = db
		base := deps.uploads.findByIDAndCompanyFn
		deps.uploads.findByIDAndCompanyFn = func(ctx context.Context, companyID string, id string) (*ingestion.UploadJob, error) {
			job, err := base(ctx, companyID, id)
			if err != nil {
				return nil, err
			}
			job.ScheduledDate = &scheduled
			return job, nil
		}
		return deps, mock
	}

	t.Run("scheduled date enqueues outbox event with the completion", func(t *testing.T) {
		deps, mock := scheduledDeps(t)
		mock.ExpectBegin()
		mock.ExpectCommit()
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())

		assert.NoError(t, err)
		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, events.PayslipNotificationRequestedTopic, deps.outbox.events[0].Topic)
		assert.Equal(t, testUploadID.String(), deps.outbox.events[0].AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, deps.outbox.events[0].Status)

		// Completion update and outbox insert share one transaction.
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Len(t, deps.uploads.txs, 1)
		assert.Len(t, deps.outbox.txs, 1)
		assert.NotNil(t, deps.uploads.txs[0])
		assert.Same(t, deps.uploads.txs[0], deps.outbox.txs[0])
	})

	t.Run("no scheduled date, no event", func(t *testing.T) {
		deps := happyDeps(csvBody)
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())

		assert.NoError(t, err)
		assert.Empty(t, deps.outbox.events)
	})

	t.Run("outbox failure rolls back and still completes the job", func(t *testing.T) {
		deps, mock := scheduledDeps(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return errors.New("outbox insert failed")
		}
		svc := deps.build()

		resp, err := svc.Process(ctx, processRequest())

		assert.NoError(t, err)
		assert.True(t, resp.Success)
		// The joint transaction was abandoned, then completion landed on its own.
		assert.NoError(t, mock.ExpectationsWereMet())
		assert.NotEmpty(t, deps.uploads.completed)
		assert.Empty(t, deps.uploads.errored)
	})
}

func TestIngestionService_Process_EmployeeInfoUpdate(t *testing.T) {
	ctx := context.Background()
	csvBody := "KY01,KY05,KY21,KY41,KY61\nE001,D20,100000,0,1\nE002,,200000,0,1\n"

	newDeps := func() *ingestionDeps {
		deps := happyDeps(csvBody)
		config := deps.mappings.config
		config = config.SetMainField(mapping.MainDepartmentCode, mapping.MainField{ColumnIndex: 1, HeaderCode: "KY05"})
		deps.mappings.config = config
		return deps
	}

	t.Run("department codes synced when requested", func(t *testing.T) {
		deps := newDeps()
		svc := deps.build()

		req := processRequest()
		req.UpdateEmployeeInfo = true

		resp, err := svc.Process(ctx, req)

		assert.NoError(t, err)
		// Only the row that carries a department code triggers an update.
		assert.Equal(t, 1, deps.employees.departmentUpdates)
		assert.Equal(t, 1, resp.EmployeesUpdated)
	})

	t.Run("unchanged department is not counted", func(t *testing.T) {
		deps := newDeps()
		deps.employees.updateEmployeeDepartmentFn = func(ctx context.Context, companyID, employeeCode, departmentCode string) (bool, error) {
			return false, nil
		}
		svc := deps.build()

		req := processRequest()
		req.UpdateEmployeeInfo = true

		resp, err := svc.Process(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 0, resp.EmployeesUpdated)
	})

	t.Run("update failure does not fail the row", func(t *testing.T) {
		deps := newDeps()
		deps.employees.updateEmployeeDepartmentFn = func(ctx context.Context, companyID, employeeCode, departmentCode string) (bool, error) {
			return false, errors.New("deadlock detected")
		}
		svc := deps.build()

		req := processRequest()
		req.UpdateEmployeeInfo = true

		resp, err := svc.Process(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.ProcessedCount)
	})

	t.Run("not requested, not touched", func(t *testing.T) {
		deps := newDeps()
		svc := deps.build()

		_, err := svc.Process(ctx, processRequest())

		assert.NoError(t, err)
		assert.Equal(t, 0, deps.employees.departmentUpdates)
	})
}

func TestIngestionService_RegisterUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var created *ingestion.UploadJob
		deps := happyDeps("")
		deps.uploads.createFn = func(ctx context.Context, job *ingestion.UploadJob) error {
			created = job
			return nil
		}
		svc := deps.build()

		resp, err := svc.RegisterUpload(ctx, ingestion.RegisterUploadRequest{
			CompanyID:   testCompanyID.String(),
			FileURL:     "https://files.example.com/payroll.csv",
			PaymentDate: "2026-07-25",
		})

		assert.NoError(t, err)
		assert.Equal(t, ingestion.StatusPending, resp.Status)
		assert.Equal(t, "2026-07-25", resp.PaymentDate)
		assert.NotNil(t, created)
		assert.Equal(t, testCompanyID, created.CompanyID)
	})

	t.Run("invalid company id", func(t *testing.T) {
		svc := happyDeps("").build()

		_, err := svc.RegisterUpload(ctx, ingestion.RegisterUploadRequest{
			CompanyID:   "nope",
			FileURL:     "https://x",
			PaymentDate: "2026-07-25",
		})
		assert.ErrorIs(t, err, ingestionerrors.ErrInvalidCompanyID)
	})

	t.Run("invalid payment date", func(t *testing.T) {
		svc := happyDeps("").build()

		_, err := svc.RegisterUpload(ctx, ingestion.RegisterUploadRequest{
			CompanyID:   testCompanyID.String(),
			FileURL:     "https://x",
			PaymentDate: "07/25/2026",
		})
		assert.Error(t, err)
	})

	t.Run("invalid scheduled date", func(t *testing.T) {
		svc := happyDeps("").build()
		bad := "soon"

		_, err := svc.RegisterUpload(ctx, ingestion.RegisterUploadRequest{
			CompanyID:     testCompanyID.String(),
			FileURL:       "https://x",
			PaymentDate:   "2026-07-25",
			ScheduledDate: &bad,
		})
		assert.Error(t, err)
	})
}

func TestIngestionService_GetUpload(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc := happyDeps("").build()

		resp, err := svc.GetUpload(ctx, testCompanyID.String(), testUploadID.String())

		assert.NoError(t, err)
		assert.Equal(t, testUploadID.String(), resp.ID)
	})

	t.Run("not found", func(t *testing.T) {
		svc := happyDeps("").build()

		_, err := svc.GetUpload(ctx, testCompanyID.String(), uuid.New().String())
		assert.ErrorIs(t, err, ingestionerrors.ErrUploadNotFound)
	})
}

func TestIngestionService_MarkNotified(t *testing.T) {
	ctx := context.Background()

	deps := happyDeps("")
	svc := deps.build()

	assert.ErrorIs(t, svc.MarkNotified(ctx, "nope"), ingestionerrors.ErrInvalidUploadID)

	assert.NoError(t, svc.MarkNotified(ctx, testUploadID.String()))
	assert.Equal(t, []string{testUploadID.String()}, deps.uploads.notifiedIDs)
}
