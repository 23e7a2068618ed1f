package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/pawmart/pawmart-backend/internal/domain/entity"
)

// Elasticsearch mirror of KYC records backing the admin search box. Indexing
// is best-effort and never fails the business operation.

func indexKycRecord(ctx context.Context, es *elasticsearch.Client, index string, logger *logrus.Logger, rec *entity.KycRecord) {
	if es == nil || index == "" {
		return
	}
	doc := map[string]any{
		"id":          rec.ID,
		"user_id":     rec.UserID,
		"full_name":   rec.FullName,
		"email":       rec.Email,
		"role_type":   rec.RoleType,
		"status":      rec.Status,
		"reviewed_by": rec.ReviewedBy,
		"created_at":  rec.CreatedAt.Format(time.RFC3339Nano),
		"updated_at":  rec.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: index, DocumentID: rec.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("kyc_id", rec.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && logger != nil {
		logger.WithField("status", res.Status()).WithField("kyc_id", rec.ID).Warn("es index response error")
	}
}

func (s *KycService) indexRecord(ctx context.Context, rec *entity.KycRecord) {
	indexKycRecord(ctx, s.ES, s.ESKycIndex, s.Logger, rec)
}
