package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tenantli-inspect/internal/domain"

	"go.uber.org/zap"
)

// APIPropertiesRepo reads property records from the tenantli backend.
type APIPropertiesRepo struct {
	client *APIClient
	logger *zap.Logger
}

func NewAPIPropertiesRepo(client *APIClient, logger *zap.Logger) *APIPropertiesRepo {
	return &APIPropertiesRepo{client: client, logger: logger}
}

// propertyWire tolerates the backend's drifting property payload.
type propertyWire struct {
	ID          flexString `json:"id"`
	OwnerID     flexString `json:"owner_id"`
	Address     string     `json:"address"`
	UnitNumber  string     `json:"unit_number"`
	City        string     `json:"city"`
	State       string     `json:"state"`
	Zip         string     `json:"zip"`
	Deposit     flexInt64  `json:"deposit_amount"`
	LeaseStart  string     `json:"lease_start"`
	LeaseEnd    string     `json:"lease_end"`
	LeaseMonths int        `json:"contract_duration"`
}

func (w propertyWire) toDomain() domain.Property {
	p := domain.Property{
		PropertyID:  string(w.ID),
		OwnerID:     string(w.OwnerID),
		Address:     w.Address,
		UnitNumber:  w.UnitNumber,
		City:        w.City,
		State:       w.State,
		Zip:         w.Zip,
		Deposit:     int64(w.Deposit),
		LeaseMonths: w.LeaseMonths,
	}
	if ts, err := time.Parse(time.RFC3339, w.LeaseStart); err == nil {
		p.LeaseStart = ts
	}
	if ts, err := time.Parse(time.RFC3339, w.LeaseEnd); err == nil {
		p.LeaseEnd = ts
	}
	return p
}

// GetProperty 获取房产详情 GET /api/properties/:id
func (r *APIPropertiesRepo) GetProperty(ctx context.Context, propertyID string) (*domain.Property, error) {
	endpoint := fmt.Sprintf("/api/properties/%s", propertyID)

	resp, err := r.client.R().SetContext(ctx).Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property: %w", err)
	}
	if err := checkStatus(resp, endpoint); err != nil {
		return nil, err
	}

	var wire propertyWire
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return nil, fmt.Errorf("failed to decode property payload: %w", err)
	}

	property := wire.toDomain()
	if property.PropertyID == "" {
		property.PropertyID = propertyID
	}
	return &property, nil
}
