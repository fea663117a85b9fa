package ingestion

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-payslip/internal/directory"
	"go-payslip/internal/events"
	ingestionerrors "go-payslip/internal/ingestion/errors"
	"go-payslip/internal/mapping"
	"go-payslip/internal/messaging/kafka"
	"go-payslip/internal/payrollitem"
	payrollitemerrors "go-payslip/internal/payrollitem/errors"
	"go-payslip/internal/payslip"
	"go-payslip/internal/shared/apperror"
	"go-payslip/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Header tokens used to find the employee identifier column when the mapping
// does not name one.
var employeeHeaderTokens = []string{"社員", "従業員", "職員", "employee", "emp"}

//go:generate mockgen -source=ingestion_service.go -destination=mock/ingestion_service_mock.go -package=mock
type Service interface {
	RegisterUpload(ctx context.Context, req RegisterUploadRequest) (UploadResponse, error)
	GetUpload(ctx context.Context, companyID, id string) (UploadResponse, error)
	Process(ctx context.Context, req ProcessUploadRequest) (ProcessUploadResponse, error)
	MarkNotified(ctx context.Context, uploadID string) error
}

type service struct {
	db        *sql.DB
	uploads   UploadRepository
	items     payrollitem.Repository
	mappings  mapping.Service
	employees directory.Repository
	payslips  payslip.Repository
	outbox    kafka.OutboxRepository
	fetcher   Fetcher
	batchSize int
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	uploads UploadRepository,
	items payrollitem.Repository,
	mappings mapping.Service,
	employees directory.Repository,
	payslips payslip.Repository,
	outbox kafka.OutboxRepository,
	fetcher Fetcher,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.L()
	}
	return &service{
		db:        db,
		uploads:   uploads,
		items:     items,
		mappings:  mappings,
		employees: employees,
		payslips:  payslips,
		outbox:    outbox,
		fetcher:   fetcher,
		batchSize: DefaultBatchSize,
		logger:    logger.Named("ingestion"),
	}
}

func (s *service) RegisterUpload(ctx context.Context, req RegisterUploadRequest) (UploadResponse, error) {
	companyUUID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return UploadResponse{}, ingestionerrors.ErrInvalidCompanyID
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return UploadResponse{}, apperror.New(
			apperror.CodeInvalidInput,
			"invalid payment_date, expected YYYY-MM-DD",
			http.StatusBadRequest,
		)
	}

	job := UploadJob{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		FileURL:     req.FileURL,
		PaymentDate: paymentDate,
		Status:      StatusPending,
	}

	if req.ScheduledDate != nil && *req.ScheduledDate != "" {
		scheduled, err := time.Parse("2006-01-02", *req.ScheduledDate)
		if err != nil {
			return UploadResponse{}, apperror.New(
				apperror.CodeInvalidInput,
				"invalid scheduled_date, expected YYYY-MM-DD",
				http.StatusBadRequest,
			)
		}
		job.ScheduledDate = &scheduled
	}

	if err := s.uploads.Create(ctx, &job); err != nil {
		return UploadResponse{}, err
	}

	return mapToUploadResponse(job), nil
}

func (s *service) GetUpload(ctx context.Context, companyID, id string) (UploadResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return UploadResponse{}, ingestionerrors.ErrInvalidCompanyID
	}

	job, err := s.uploads.FindByIDAndCompany(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return UploadResponse{}, ingestionerrors.ErrUploadNotFound
	}
	if err != nil {
		return UploadResponse{}, err
	}

	return mapToUploadResponse(*job), nil
}

// MarkNotified is called by the notification consumer once the scheduled
// notification has been dispatched.
func (s *service) MarkNotified(ctx context.Context, uploadID string) error {
	if _, err := uuid.Parse(uploadID); err != nil {
		return ingestionerrors.ErrInvalidUploadID
	}
	return s.uploads.MarkNotified(ctx, uploadID)
}

// Process runs one ingestion end to end. Row-level problems (missing
// identifier, unmatched user, bad cells) are recovered locally and counted;
// structural problems (missing job or catalog, unreachable source, batch
// commit failure) abort the run and leave the message on the job record.
func (s *service) Process(ctx context.Context, req ProcessUploadRequest) (ProcessUploadResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(
		zap.String("upload_id", req.UploadID),
		zap.String("company_id", req.CompanyID),
	)

	job, catalog, config, err := s.loadRunInputs(ctx, req)
	if err != nil {
		return ProcessUploadResponse{}, err
	}

	bindings := effectiveBindings(catalog, req.ColumnMappings)
	if len(bindings) == 0 {
		return ProcessUploadResponse{}, ingestionerrors.ErrNoUsableMapping
	}

	fileURL := req.FileURL
	if fileURL == "" {
		fileURL = job.FileURL
	}
	if fileURL == "" {
		return ProcessUploadResponse{}, ingestionerrors.ErrMissingFileURL
	}

	if err := s.uploads.MarkProcessing(ctx, req.UploadID); err != nil {
		return ProcessUploadResponse{}, err
	}

	body, err := s.fetcher.Fetch(ctx, fileURL)
	if err != nil {
		return ProcessUploadResponse{}, s.failRun(ctx, req.UploadID, log, err, nil)
	}
	defer body.Close()

	reader, err := NewRowReader(body)
	if err != nil {
		return ProcessUploadResponse{}, s.failRun(ctx, req.UploadID, log, err, nil)
	}

	// One directory query up front; rows resolve against this snapshot.
	employeeMap, err := s.employees.EmployeeMap(ctx, req.CompanyID)
	if err != nil {
		return ProcessUploadResponse{}, s.failRun(ctx, req.UploadID, log, err, nil)
	}

	idCol := identifierColumn(config, reader.Headers())
	deptCol := departmentColumn(config)

	itemsByID := make(map[string]payrollitem.PayrollItem, len(catalog))
	for _, item := range catalog {
		itemsByID[item.ID] = item
	}

	summary := &RunSummary{}
	writer := NewBatchWriter(s.payslips, s.batchSize)

	rowNum := 0
	for {
		cells, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return ProcessUploadResponse{}, s.failRun(ctx, req.UploadID, log, err, summary)
		}
		rowNum++

		record, outcome := s.processRow(ctx, rowProcessingInput{
			row:         rowNum,
			cells:       cells,
			job:         job,
			itemsByID:   itemsByID,
			bindings:    bindings,
			idCol:       idCol,
			deptCol:     deptCol,
			employeeMap: employeeMap,
			updateInfo:  req.UpdateEmployeeInfo,
			summary:     summary,
			log:         log,
		})
		summary.Record(outcome)
		if outcome.Status != RowSuccess {
			continue
		}

		if err := writer.Add(ctx, record); err != nil {
			return ProcessUploadResponse{}, s.failRun(ctx, req.UploadID, log, fmt.Errorf("batch commit failed: %w", err), summary)
		}
	}

	if err := writer.Flush(ctx); err != nil {
		return ProcessUploadResponse{}, s.failRun(ctx, req.UploadID, log, fmt.Errorf("batch commit failed: %w", err), summary)
	}

	if err := s.completeRun(ctx, job, summary, log); err != nil {
		return ProcessUploadResponse{}, err
	}

	log.Info("ingestion completed",
		zap.Int("rows", rowNum),
		zap.Int("processed", summary.Succeeded),
		zap.Int("skipped", summary.Skipped),
		zap.Int("errored", summary.Errored),
		zap.Int("batches", writer.Commits()),
	)

	return ProcessUploadResponse{
		Success:          true,
		ProcessedCount:   summary.Succeeded,
		EmployeesUpdated: summary.EmployeesUpdated,
		ErrorCount:       summary.ErrorCount(),
	}, nil
}

// loadRunInputs checks the structural preconditions of a run. Each missing
// piece is a distinct failure so operators see which one broke.
func (s *service) loadRunInputs(ctx context.Context, req ProcessUploadRequest) (*UploadJob, []payrollitem.PayrollItem, mapping.Config, error) {
	if _, err := uuid.Parse(req.CompanyID); err != nil {
		return nil, nil, mapping.Config{}, ingestionerrors.ErrInvalidCompanyID
	}
	if _, err := uuid.Parse(req.UploadID); err != nil {
		return nil, nil, mapping.Config{}, ingestionerrors.ErrInvalidUploadID
	}

	job, err := s.uploads.FindByIDAndCompany(ctx, req.CompanyID, req.UploadID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, mapping.Config{}, ingestionerrors.ErrUploadNotFound
	}
	if err != nil {
		return nil, nil, mapping.Config{}, err
	}
	if job.Status == StatusProcessing {
		return nil, nil, mapping.Config{}, ingestionerrors.ErrUploadAlreadyRunning
	}

	catalog, err := s.items.FindAllByCompany(ctx, req.CompanyID)
	if err != nil {
		return nil, nil, mapping.Config{}, err
	}
	if len(catalog) == 0 {
		return nil, nil, mapping.Config{}, payrollitemerrors.ErrCatalogEmpty
	}

	config, err := s.mappings.Get(ctx, req.CompanyID)
	if err != nil {
		return nil, nil, mapping.Config{}, err
	}

	return job, catalog, config, nil
}

type rowProcessingInput struct {
	row         int
	cells       []string
	job         *UploadJob
	itemsByID   map[string]payrollitem.PayrollItem
	bindings    map[string]int
	idCol       int
	deptCol     int
	employeeMap map[string]string
	updateInfo  bool
	summary     *RunSummary
	log         *zap.Logger
}

func (s *service) processRow(ctx context.Context, in rowProcessingInput) (payslip.Payslip, RowOutcome) {
	employeeID := cellAt(in.cells, in.idCol)
	if employeeID == "" {
		in.log.Warn("row skipped: employee identifier missing", zap.Int("row", in.row))
		return payslip.Payslip{}, RowOutcome{Row: in.row, Status: RowSkipped, Reason: "employee identifier missing"}
	}

	userID, ok := in.employeeMap[employeeID]
	if !ok {
		in.log.Warn("row skipped: no matching user",
			zap.Int("row", in.row),
			zap.String("employee_id", employeeID),
		)
		return payslip.Payslip{}, RowOutcome{Row: in.row, Status: RowSkipped, Reason: fmt.Sprintf("no user for employee %s", employeeID)}
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return payslip.Payslip{}, RowOutcome{Row: in.row, Status: RowError, Reason: fmt.Sprintf("invalid user id for employee %s", employeeID)}
	}

	items := make(map[string]payslip.ItemValue, len(in.bindings))
	var totalIncome, totalDeduction float64

	for itemID, col := range in.bindings {
		def, ok := in.itemsByID[itemID]
		if !ok {
			continue
		}
		raw := cellAt(in.cells, col)
		if raw == "" && def.Type != payrollitem.TypeTime && def.Type != payrollitem.TypeDays {
			continue
		}

		value, parsed := ConvertCellValue(raw, def.Type)
		if !parsed {
			in.log.Warn("cell conversion failed, defaulting to zero",
				zap.Int("row", in.row),
				zap.String("item_id", itemID),
				zap.String("raw", raw),
			)
		}

		items[itemID] = payslip.ItemValue{Name: def.Name, Type: def.Type, Value: value}

		// Each item's contribution is guarded on its own; one bad cell must
		// not suppress the others.
		if amount, isNumber := value.(float64); isNumber {
			switch def.Type {
			case payrollitem.TypeIncome:
				totalIncome += amount
			case payrollitem.TypeDeduction:
				totalDeduction += amount
			}
		}
	}

	if in.updateInfo && in.deptCol >= 0 {
		if deptCode := cellAt(in.cells, in.deptCol); deptCode != "" {
			updated, err := s.employees.UpdateEmployeeDepartment(ctx, in.job.CompanyID.String(), employeeID, deptCode)
			if err != nil {
				in.log.Warn("employee info update failed",
					zap.Int("row", in.row),
					zap.String("employee_id", employeeID),
					zap.Error(err),
				)
			} else if updated {
				in.summary.EmployeesUpdated++
			}
		}
	}

	record := payslip.Payslip{
		ID:             uuid.New(),
		CompanyID:      in.job.CompanyID,
		EmployeeID:     employeeID,
		UserID:         userUUID,
		PaymentDate:    in.job.PaymentDate,
		UploadID:       in.job.ID,
		TotalIncome:    totalIncome,
		TotalDeduction: totalDeduction,
		NetAmount:      totalIncome - totalDeduction,
	}
	if err := record.SetItems(items); err != nil {
		return payslip.Payslip{}, RowOutcome{Row: in.row, Status: RowError, Reason: err.Error()}
	}

	return record, RowOutcome{Row: in.row, Status: RowSuccess}
}

// failRun marks the job errored with a human-readable message and returns the
// internal error for the caller.
func (s *service) failRun(ctx context.Context, uploadID string, log *zap.Logger, cause error, summary *RunSummary) error {
	processed, errored := 0, 0
	if summary != nil {
		processed = summary.Succeeded
		errored = summary.ErrorCount()
	}

	log.Error("ingestion failed", zap.Error(cause))

	if err := s.uploads.MarkError(ctx, uploadID, cause.Error(), processed, errored); err != nil {
		log.Error("mark upload error failed", zap.Error(err))
	}

	var appErr *apperror.AppError
	if errors.As(cause, &appErr) {
		return appErr
	}
	return apperror.Wrap(cause, apperror.CodeInternalError, "ingestion run failed", http.StatusInternalServerError)
}

// completeRun closes the job record. When the upload carries a scheduled
// notification date, the outbox row lands in the same transaction as the
// completion update, so a crash between the two writes cannot leave a
// completed job without its notification request. An enqueue failure is not
// fatal: the job still completes, just without the notification.
func (s *service) completeRun(ctx context.Context, job *UploadJob, summary *RunSummary, log *zap.Logger) error {
	uploadID := job.ID.String()

	if job.ScheduledDate == nil || s.outbox == nil || s.db == nil {
		return s.uploads.MarkCompleted(ctx, uploadID, summary.Succeeded, summary.ErrorCount())
	}

	if err := s.completeWithNotification(ctx, job, summary); err != nil {
		log.Error("enqueue notification event failed", zap.Error(err))
		return s.uploads.MarkCompleted(ctx, uploadID, summary.Succeeded, summary.ErrorCount())
	}
	return nil
}

func (s *service) completeWithNotification(ctx context.Context, job *UploadJob, summary *RunSummary) error {
	uploadID := job.ID.String()

	event := events.PayslipNotificationRequestedEvent{
		EventType:     "payslip.notification.requested",
		UploadID:      uploadID,
		CompanyID:     job.CompanyID.String(),
		ScheduledDate: *job.ScheduledDate,
		OccurredAt:    time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification event: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.uploads.WithTx(tx).MarkCompleted(ctx, uploadID, summary.Succeeded, summary.ErrorCount()); err != nil {
		return err
	}

	err = s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "upload",
		AggregateID:   uploadID,
		EventType:     event.EventType,
		Topic:         events.PayslipNotificationRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		return fmt.Errorf("enqueue notification event: %w", err)
	}

	return tx.Commit()
}

// effectiveBindings resolves item id -> column index. An explicit request
// mapping overrides the catalog's own per-item column hints.
func effectiveBindings(catalog []payrollitem.PayrollItem, override map[string]int) map[string]int {
	bindings := make(map[string]int)
	for _, item := range catalog {
		if item.CSVColumn != nil {
			bindings[item.ID] = *item.CSVColumn
		}
	}
	for itemID, col := range override {
		bindings[itemID] = col
	}
	return bindings
}

// identifierColumn finds the employee identifier column: the mapping's
// employee-code main field when set, otherwise a heuristic scan of the CSV
// headers.
func identifierColumn(config mapping.Config, headers []string) int {
	if field, ok := config.MainFields[mapping.MainEmployeeCode]; ok {
		return field.ColumnIndex
	}

	for i, header := range headers {
		lowered := strings.ToLower(header)
		for _, token := range employeeHeaderTokens {
			if strings.Contains(lowered, token) {
				return i
			}
		}
	}
	return -1
}

func departmentColumn(config mapping.Config) int {
	if field, ok := config.MainFields[mapping.MainDepartmentCode]; ok {
		return field.ColumnIndex
	}
	return -1
}

func cellAt(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}
