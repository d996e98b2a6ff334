package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eldercare-assist-be/internal/entity"
	"eldercare-assist-be/internal/pkg/logger"
	"eldercare-assist-be/internal/pkg/mailer"
	"eldercare-assist-be/internal/repository/specification"
	"eldercare-assist-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IReportService interface {
	// SendDailyReports emails each caregiver a summary of the last 24
	// hours for every patient linked to them. Invoked on a cron schedule.
	SendDailyReports(ctx context.Context) error
}

type reportService struct {
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	logger       logger.ILogger
	now          func() time.Time
}

func NewReportService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IReportService {
	return &reportService{
		uowFactory:   uowFactory,
		emailService: emailService,
		logger:       log,
		now:          time.Now,
	}
}

func (s *reportService) SendDailyReports(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	patients, err := uow.UserRepository().FindAll(ctx,
		specification.FilterBy{Field: "role", Value: string(entity.UserRolePatient)},
		specification.ByStatus{Status: string(entity.UserStatusActive)},
	)
	if err != nil {
		return fmt.Errorf("report: loading patients: %w", err)
	}

	for _, patient := range patients {
		if patient.CaregiverId == nil {
			continue
		}

		caregiver, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: *patient.CaregiverId})
		if err != nil || caregiver == nil {
			s.logger.Warn("report", "Caregiver lookup failed, skipping patient", map[string]interface{}{
				"patient_id": patient.Id.String(),
			})
			continue
		}

		reportHTML, err := s.buildReport(ctx, uow, patient.Id)
		if err != nil {
			s.logger.Error("report", "Failed to build daily report", map[string]interface{}{
				"patient_id": patient.Id.String(),
				"error":      err.Error(),
			})
			continue
		}

		if err := s.emailService.SendDailyReport(caregiver.Email, patient.FullName, reportHTML); err != nil {
			s.logger.Error("report", "Failed to send daily report", map[string]interface{}{
				"caregiver": caregiver.Email,
				"error":     err.Error(),
			})
		}
	}

	return nil
}

func (s *reportService) buildReport(ctx context.Context, uow unitofwork.UnitOfWork, patientId uuid.UUID) (string, error) {
	since := s.now().Add(-24 * time.Hour)

	alerts, err := uow.AlertRepository().FindAll(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.CreatedAfter{Cutoff: since},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return "", err
	}

	moods, err := uow.MoodRepository().FindAll(ctx,
		specification.ByPatientID{PatientID: patientId},
		specification.CreatedAfter{Cutoff: since},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<h3>Alerts</h3>")
	if len(alerts) == 0 {
		b.WriteString("<p>No alerts in the last 24 hours.</p>")
	} else {
		b.WriteString("<ul>")
		for _, a := range alerts {
			fmt.Fprintf(&b, "<li><b>%s</b> (%s) %s</li>", a.Severity, a.Category, a.Title)
		}
		b.WriteString("</ul>")
	}

	b.WriteString("<h3>Moods</h3>")
	if len(moods) == 0 {
		b.WriteString("<p>No moods logged in the last 24 hours.</p>")
	} else {
		b.WriteString("<ul>")
		for _, m := range moods {
			fmt.Fprintf(&b, "<li>%s at %s</li>", m.Mood, m.CreatedAt.Format("15:04"))
		}
		b.WriteString("</ul>")
	}

	return b.String(), nil
}
