package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
	"github.com/pawmart/pawmart-backend/internal/domain/repository"
)

// AdminQueryService is the read-only listing/lookup surface consumed by the
// admin dashboards. No business rules live here.
type AdminQueryService struct {
	Store      repository.Store
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESKycIndex string
}

func NewAdminQueryService(store repository.Store, logger *logrus.Logger, es *elasticsearch.Client, esKycIndex string) *AdminQueryService {
	return &AdminQueryService{Store: store, Logger: logger, ES: es, ESKycIndex: esKycIndex}
}

func (s *AdminQueryService) ListAll(ctx context.Context) ([]entity.KycRecord, error) {
	return s.Store.Kyc().List(ctx)
}

func (s *AdminQueryService) GetByID(ctx context.Context, id string) (*entity.KycRecord, error) {
	rec, err := s.Store.Kyc().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrKycNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *AdminQueryService) GetByUserID(ctx context.Context, userID string) (*entity.KycRecord, error) {
	rec, err := s.Store.Kyc().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrKycNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Search performs a multi_match over the indexed KYC fields.
func (s *AdminQueryService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESKycIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"full_name^2", "email^2", "role_type", "status"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESKycIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
