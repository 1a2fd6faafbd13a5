package notification

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
)

// Fixed message templates, interpolating parent name, student name, grade
// and the application reference.
const (
	ackEmailSubject = "Application Received – King Solomon Junior Primary School"

	ackEmailBody = `Dear %s,

We have received your application for **%s**, applying for Grade **%s**. Our admissions team will review the application and notify you of the next steps.

Thank you for considering King Solomon Junior Primary School.

Regards,
Admissions Office
King Solomon Junior Primary School`

	ackSMSBody = "Dear %s, we have received your application for %s, Grade %s. " +
		"You will be notified once it is reviewed. – King Solomon Junior"

	adminMessage = "New application from %s %s"
)

// Service implements enrollment.Notifier: one entry per submission in each
// of the admin, email and sms logs, plus the actual transports.
type Service struct {
	log      Log
	emailSvc core.EmailService
	smsSvc   core.SMSService

	// refreshHook is called after a new admin entry lands, when the admin
	// dashboard has registered one. Absence is not an error.
	refreshHook func()
}

var _ enrollment.Notifier = (*Service)(nil)

func NewService(log Log, emailSvc core.EmailService, smsSvc core.SMSService) *Service {
	return &Service{log: log, emailSvc: emailSvc, smsSvc: smsSvc}
}

// SetRefreshHook registers the admin dashboard refresh callback.
func (svc *Service) SetRefreshHook(hook func()) { svc.refreshHook = hook }

// ApplicationReceived appends one entry to each notification log and hands
// the rendered messages to the email and SMS transports. The first append
// failure aborts the remainder; already-appended entries stay (no rollback).
func (svc *Service) ApplicationReceived(ctx context.Context, app enrollment.Application) error {
	now := time.Now().UTC()

	admin := AdminNotification{
		Type:           TypeNewApplication,
		Message:        fmt.Sprintf(adminMessage, app.StudentFirstName, app.StudentLastName),
		ApplicationRef: app.Ref,
		Timestamp:      now,
	}
	if err := svc.log.AppendAdminNotification(ctx, admin); err != nil {
		return errors.Wrap(err, "appending admin notification")
	}
	if svc.refreshHook != nil {
		svc.refreshHook()
	}

	email := EmailNotification{
		To:        app.ParentEmail,
		Subject:   ackEmailSubject,
		Body:      fmt.Sprintf(ackEmailBody, app.ParentName(), app.StudentName(), app.ApplyingFor),
		Timestamp: now,
		Status:    StatusSent,
		Type:      TypeApplicationReceived,
	}
	if err := svc.log.AppendEmailNotification(ctx, email); err != nil {
		return errors.Wrap(err, "appending email notification")
	}

	sms := SMSNotification{
		To:        app.ParentPhone,
		Message:   fmt.Sprintf(ackSMSBody, app.ParentName(), app.StudentName(), app.ApplyingFor),
		Timestamp: now,
		Status:    StatusSent,
		Type:      TypeApplicationReceived,
	}
	if err := svc.log.AppendSMSNotification(ctx, sms); err != nil {
		return errors.Wrap(err, "appending sms notification")
	}

	svc.sendAcknowledgment(app)
	svc.smsSvc.SendMessages(&core.SMSMessage{To: sms.To, Body: sms.Message})
	return nil
}

// sendAcknowledgment emails the parent and alerts the admissions office.
func (svc *Service) sendAcknowledgment(app enrollment.Application) {
	data := struct {
		ParentName  string
		StudentName string
		Grade       string
		Ref         string
	}{
		ParentName:  app.ParentName(),
		StudentName: app.StudentName(),
		Grade:       app.ApplyingFor,
		Ref:         app.Ref,
	}

	svc.emailSvc.SendMessages(
		&core.EmailMessage{
			To:           []mail.Address{{Name: app.ParentName(), Address: app.ParentEmail}},
			Subject:      ackEmailSubject,
			TemplateName: "application_received",
			TemplateData: data,
		},
		&core.EmailMessage{
			To:           []mail.Address{core.Conf.AdmissionsEmail},
			Subject:      fmt.Sprintf("New Enrollment Application - %s %s", app.StudentFirstName, app.StudentLastName),
			TemplateName: "application_admin_alert",
			TemplateData: data,
		},
	)
}

func (svc *Service) QueryAdmin(ctx context.Context) ([]AdminNotification, error) {
	return svc.log.QueryAdminNotifications(ctx)
}

func (svc *Service) QueryEmail(ctx context.Context) ([]EmailNotification, error) {
	return svc.log.QueryEmailNotifications(ctx)
}

func (svc *Service) QuerySMS(ctx context.Context) ([]SMSNotification, error) {
	return svc.log.QuerySMSNotifications(ctx)
}

func (svc *Service) MarkAdminRead(ctx context.Context) error {
	return svc.log.MarkAdminNotificationsRead(ctx)
}
