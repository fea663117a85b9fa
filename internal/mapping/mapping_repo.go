package mapping

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=mapping_repo.go -destination=mock/mapping_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context, companyID string) (Config, error)
	Save(ctx context.Context, companyID string, config Config) error
	SaveSetting(ctx context.Context, companyID string, setting CompanyCSVSetting) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context, companyID string) (Config, error) {
	var row CSVMapping
	err := r.db.WithContext(ctx).
		First(&row, "company_id = ?", companyID).Error
	if err != nil {
		return Config{}, err
	}

	var config Config
	if err := json.Unmarshal(row.Config, &config); err != nil {
		return Config{}, err
	}
	config.UpdatedAt = row.UpdatedAt
	return config, nil
}

func (r *repository) Save(ctx context.Context, companyID string, config Config) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return err
	}

	body, err := json.Marshal(config)
	if err != nil {
		return err
	}

	row := CSVMapping{
		CompanyID: companyUUID,
		Config:    body,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"config", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *repository) SaveSetting(ctx context.Context, companyID string, setting CompanyCSVSetting) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return err
	}
	setting.CompanyID = companyUUID

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"employee_id_column", "department_code_column", "updated_at"}),
		}).
		Create(&setting).Error
}
