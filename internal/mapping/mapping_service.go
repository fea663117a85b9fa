package mapping

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	mappingerrors "go-payslip/internal/mapping/errors"
	"go-payslip/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const configCacheTTL = 5 * time.Minute

//go:generate mockgen -source=mapping_service.go -destination=mock/mapping_service_mock.go -package=mock
type Service interface {
	Get(ctx context.Context, companyID string) (Config, error)
	Save(ctx context.Context, companyID string, config Config) (Config, error)
	ParseAndClassify(ctx context.Context, displayLine, codeLine string) (Config, error)
}

type service struct {
	repo  Repository
	rdb   *redis.Client
	group singleflight.Group
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func NewServiceWithCache(repo Repository, rdb *redis.Client) Service {
	return &service{repo: repo, rdb: rdb}
}

// Get returns the company's mapping, or the empty skeleton when none has been
// saved yet. Reads go through a short-lived cache; concurrent misses for one
// company collapse into a single repository query.
func (s *service) Get(ctx context.Context, companyID string) (Config, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return Config{}, mappingerrors.ErrInvalidCompanyID
	}

	if cached, ok := s.cacheGet(ctx, companyID); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(companyID, func() (any, error) {
		config, err := s.repo.Get(ctx, companyID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmptyConfig(), nil
		}
		if err != nil {
			return Config{}, err
		}
		return config, nil
	})
	if err != nil {
		return Config{}, err
	}

	config := v.(Config)
	s.cacheSet(ctx, companyID, config)
	return config, nil
}

// Save normalizes ids, validates, and persists the mapping wholesale, then
// writes the directory-sync projection and drops the cache entry. Saving a
// semantically unchanged mapping is a no-op for item ids.
func (s *service) Save(ctx context.Context, companyID string, config Config) (Config, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return Config{}, mappingerrors.ErrInvalidCompanyID
	}

	config = config.Normalize()

	if err := config.Validate(); err != nil {
		return Config{}, apperror.Wrap(err, apperror.CodeInvalidInput, "csv mapping is invalid", http.StatusBadRequest)
	}

	if err := s.repo.Save(ctx, companyID, config); err != nil {
		return Config{}, err
	}

	if err := s.repo.SaveSetting(ctx, companyID, projectSetting(config)); err != nil {
		return Config{}, err
	}

	s.cacheDel(ctx, companyID)

	config.UpdatedAt = time.Now().UTC()
	return config, nil
}

// ParseAndClassify turns the two pasted header lines into a classified draft
// mapping. Nothing is persisted; the admin reviews and saves explicitly.
func (s *service) ParseAndClassify(_ context.Context, displayLine, codeLine string) (Config, error) {
	if displayLine == "" && codeLine == "" {
		return Config{}, mappingerrors.ErrEmptyHeaderLines
	}

	parsed := ParseHeaderLines(displayLine, codeLine)
	return Classify(parsed), nil
}

func projectSetting(config Config) CompanyCSVSetting {
	var setting CompanyCSVSetting
	if field, ok := config.MainFields[MainEmployeeCode]; ok {
		setting.EmployeeIDColumn = field.HeaderCode
	}
	if field, ok := config.MainFields[MainDepartmentCode]; ok {
		setting.DepartmentCodeColumn = field.HeaderCode
	}
	return setting
}

func (s *service) cacheKey(companyID string) string {
	return fmt.Sprintf("csvmap:%s", companyID)
}

func (s *service) cacheGet(ctx context.Context, companyID string) (Config, bool) {
	if s.rdb == nil {
		return Config{}, false
	}
	val, err := s.rdb.Get(ctx, s.cacheKey(companyID)).Result()
	if err != nil {
		return Config{}, false
	}
	var config Config
	if err := json.Unmarshal([]byte(val), &config); err != nil {
		return Config{}, false
	}
	return config, true
}

func (s *service) cacheSet(ctx context.Context, companyID string, config Config) {
	if s.rdb == nil {
		return
	}
	if payload, err := json.Marshal(config); err == nil {
		_ = s.rdb.Set(ctx, s.cacheKey(companyID), payload, configCacheTTL).Err()
	}
}

func (s *service) cacheDel(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	_ = s.rdb.Del(ctx, s.cacheKey(companyID)).Err()
}
