package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/kingsolomonjunior/admissions/core/notification"
)

type notificationLog struct {
	db *sqlx.DB
}

var _ notification.Log = (*notificationLog)(nil) // interface compliance check

func NewNotificationLog(db *sqlx.DB) notification.Log {
	return &notificationLog{db: db}
}

func (l *notificationLog) AppendAdminNotification(ctx context.Context, n notification.AdminNotification) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO admin_notification (type, message, ref, timestamp, read) VALUES ($1, $2, $3, $4, $5)`,
		n.Type, n.Message, n.ApplicationRef, n.Timestamp, n.Read,
	)
	return errors.Wrap(err, "inserting admin notification")
}

func (l *notificationLog) AppendEmailNotification(ctx context.Context, n notification.EmailNotification) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO email_notification (recipient, subject, body, timestamp, status, type) VALUES ($1, $2, $3, $4, $5, $6)`,
		n.To, n.Subject, n.Body, n.Timestamp, n.Status, n.Type,
	)
	return errors.Wrap(err, "inserting email notification")
}

func (l *notificationLog) AppendSMSNotification(ctx context.Context, n notification.SMSNotification) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO sms_notification (recipient, message, timestamp, status, type) VALUES ($1, $2, $3, $4, $5)`,
		n.To, n.Message, n.Timestamp, n.Status, n.Type,
	)
	return errors.Wrap(err, "inserting sms notification")
}

func (l *notificationLog) QueryAdminNotifications(ctx context.Context) ([]notification.AdminNotification, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT type, message, ref, timestamp, read FROM admin_notification ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying admin notifications")
	}
	defer rows.Close()

	var ns []notification.AdminNotification
	for rows.Next() {
		var n notification.AdminNotification
		if err := rows.Scan(&n.Type, &n.Message, &n.ApplicationRef, &n.Timestamp, &n.Read); err != nil {
			return nil, errors.Wrap(err, "scanning admin notification")
		}
		ns = append(ns, n)
	}
	return ns, errors.Wrap(rows.Err(), "iterating admin notifications")
}

func (l *notificationLog) QueryEmailNotifications(ctx context.Context) ([]notification.EmailNotification, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT recipient, subject, body, timestamp, status, type FROM email_notification ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying email notifications")
	}
	defer rows.Close()

	var ns []notification.EmailNotification
	for rows.Next() {
		var n notification.EmailNotification
		if err := rows.Scan(&n.To, &n.Subject, &n.Body, &n.Timestamp, &n.Status, &n.Type); err != nil {
			return nil, errors.Wrap(err, "scanning email notification")
		}
		ns = append(ns, n)
	}
	return ns, errors.Wrap(rows.Err(), "iterating email notifications")
}

func (l *notificationLog) QuerySMSNotifications(ctx context.Context) ([]notification.SMSNotification, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT recipient, message, timestamp, status, type FROM sms_notification ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "querying sms notifications")
	}
	defer rows.Close()

	var ns []notification.SMSNotification
	for rows.Next() {
		var n notification.SMSNotification
		if err := rows.Scan(&n.To, &n.Message, &n.Timestamp, &n.Status, &n.Type); err != nil {
			return nil, errors.Wrap(err, "scanning sms notification")
		}
		ns = append(ns, n)
	}
	return ns, errors.Wrap(rows.Err(), "iterating sms notifications")
}

func (l *notificationLog) MarkAdminNotificationsRead(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, `UPDATE admin_notification SET read = TRUE WHERE read = FALSE`)
	return errors.Wrap(err, "marking admin notifications read")
}
