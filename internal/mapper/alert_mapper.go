package mapper

import (
	"encoding/json"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/model"

	"gorm.io/datatypes"
)

type AlertMapper struct{}

func NewAlertMapper() *AlertMapper {
	return &AlertMapper{}
}

func (m *AlertMapper) ToEntity(a *model.Alert) *entity.Alert {
	if a == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(a.Metadata) > 0 {
		// Corrupt rows degrade to nil metadata rather than failing the read.
		_ = json.Unmarshal(a.Metadata, &metadata)
	}

	return &entity.Alert{
		Id:          a.Id,
		PatientId:   a.PatientId,
		Category:    a.Category,
		Severity:    a.Severity,
		Title:       a.Title,
		Description: a.Description,
		Metadata:    metadata,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
		ResolvedBy:  a.ResolvedBy,
	}
}

func (m *AlertMapper) ToModel(a *entity.Alert) *model.Alert {
	if a == nil {
		return nil
	}

	var metadata datatypes.JSON
	if a.Metadata != nil {
		if raw, err := json.Marshal(a.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.Alert{
		Id:          a.Id,
		PatientId:   a.PatientId,
		Category:    a.Category,
		Severity:    a.Severity,
		Title:       a.Title,
		Description: a.Description,
		Metadata:    metadata,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
		ResolvedBy:  a.ResolvedBy,
	}
}

func (m *AlertMapper) ToEntities(alerts []*model.Alert) []*entity.Alert {
	entities := make([]*entity.Alert, len(alerts))
	for i, a := range alerts {
		entities[i] = m.ToEntity(a)
	}
	return entities
}
