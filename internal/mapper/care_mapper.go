package mapper

import (
	"encoding/json"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/model"

	"gorm.io/datatypes"
)

type CareMapper struct{}

func NewCareMapper() *CareMapper {
	return &CareMapper{}
}

func (m *CareMapper) MoodToEntity(e *model.MoodEntry) *entity.MoodEntry {
	if e == nil {
		return nil
	}
	return &entity.MoodEntry{
		Id:        e.Id,
		PatientId: e.PatientId,
		Mood:      e.Mood,
		RawInput:  e.RawInput,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

func (m *CareMapper) MoodToModel(e *entity.MoodEntry) *model.MoodEntry {
	if e == nil {
		return nil
	}
	return &model.MoodEntry{
		Id:        e.Id,
		PatientId: e.PatientId,
		Mood:      e.Mood,
		RawInput:  e.RawInput,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

func (m *CareMapper) MoodsToEntities(entries []*model.MoodEntry) []*entity.MoodEntry {
	out := make([]*entity.MoodEntry, len(entries))
	for i, e := range entries {
		out[i] = m.MoodToEntity(e)
	}
	return out
}

func (m *CareMapper) ReminderToEntity(r *model.Reminder) *entity.Reminder {
	if r == nil {
		return nil
	}
	return &entity.Reminder{
		Id:              r.Id,
		PatientId:       r.PatientId,
		Title:           r.Title,
		Kind:            entity.ReminderKind(r.Kind),
		DueAt:           r.DueAt,
		AcknowledgedAt:  r.AcknowledgedAt,
		MissedAlertedAt: r.MissedAlertedAt,
		Active:          r.Active,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *CareMapper) ReminderToModel(r *entity.Reminder) *model.Reminder {
	if r == nil {
		return nil
	}
	return &model.Reminder{
		Id:              r.Id,
		PatientId:       r.PatientId,
		Title:           r.Title,
		Kind:            string(r.Kind),
		DueAt:           r.DueAt,
		AcknowledgedAt:  r.AcknowledgedAt,
		MissedAlertedAt: r.MissedAlertedAt,
		Active:          r.Active,
		CreatedAt:       r.CreatedAt,
	}
}

func (m *CareMapper) RemindersToEntities(reminders []*model.Reminder) []*entity.Reminder {
	out := make([]*entity.Reminder, len(reminders))
	for i, r := range reminders {
		out[i] = m.ReminderToEntity(r)
	}
	return out
}

func (m *CareMapper) TimelineToEntity(e *model.TimelineEvent) *entity.TimelineEvent {
	if e == nil {
		return nil
	}

	var metadata map[string]interface{}
	if len(e.Metadata) > 0 {
		_ = json.Unmarshal(e.Metadata, &metadata)
	}

	return &entity.TimelineEvent{
		Id:         e.Id,
		PatientId:  e.PatientId,
		Kind:       e.Kind,
		Summary:    e.Summary,
		Metadata:   metadata,
		OccurredAt: e.OccurredAt,
	}
}

func (m *CareMapper) TimelineToModel(e *entity.TimelineEvent) *model.TimelineEvent {
	if e == nil {
		return nil
	}

	var metadata datatypes.JSON
	if e.Metadata != nil {
		if raw, err := json.Marshal(e.Metadata); err == nil {
			metadata = datatypes.JSON(raw)
		}
	}

	return &model.TimelineEvent{
		Id:         e.Id,
		PatientId:  e.PatientId,
		Kind:       e.Kind,
		Summary:    e.Summary,
		Metadata:   metadata,
		OccurredAt: e.OccurredAt,
	}
}

func (m *CareMapper) TimelineToEntities(events []*model.TimelineEvent) []*entity.TimelineEvent {
	out := make([]*entity.TimelineEvent, len(events))
	for i, e := range events {
		out[i] = m.TimelineToEntity(e)
	}
	return out
}

func (m *CareMapper) VoiceCommandToEntity(v *model.VoiceCommand) *entity.VoiceCommand {
	if v == nil {
		return nil
	}
	return &entity.VoiceCommand{
		Id:         v.Id,
		PatientId:  v.PatientId,
		Transcript: v.Transcript,
		Intent:     v.Intent,
		Emotion:    v.Emotion,
		Confidence: v.Confidence,
		Outcome:    v.Outcome,
		CreatedAt:  v.CreatedAt,
	}
}

func (m *CareMapper) VoiceCommandToModel(v *entity.VoiceCommand) *model.VoiceCommand {
	if v == nil {
		return nil
	}
	return &model.VoiceCommand{
		Id:         v.Id,
		PatientId:  v.PatientId,
		Transcript: v.Transcript,
		Intent:     v.Intent,
		Emotion:    v.Emotion,
		Confidence: v.Confidence,
		Outcome:    v.Outcome,
		CreatedAt:  v.CreatedAt,
	}
}
