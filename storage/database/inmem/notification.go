package inmemdb

import (
	"context"

	"github.com/kingsolomonjunior/admissions/core/notification"
)

type notificationLog struct {
	db *DB
}

var _ notification.Log = (*notificationLog)(nil) // interface compliance check

func NewNotificationLog(db *DB) notification.Log {
	return &notificationLog{db: db}
}

func (l *notificationLog) AppendAdminNotification(_ context.Context, n notification.AdminNotification) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()

	l.db.data.AdminNotifications = append(l.db.data.AdminNotifications, n)
	if err := l.db.save(); err != nil {
		l.db.data.AdminNotifications = l.db.data.AdminNotifications[:len(l.db.data.AdminNotifications)-1]
		return err
	}
	return nil
}

func (l *notificationLog) AppendEmailNotification(_ context.Context, n notification.EmailNotification) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()

	l.db.data.EmailNotifications = append(l.db.data.EmailNotifications, n)
	if err := l.db.save(); err != nil {
		l.db.data.EmailNotifications = l.db.data.EmailNotifications[:len(l.db.data.EmailNotifications)-1]
		return err
	}
	return nil
}

func (l *notificationLog) AppendSMSNotification(_ context.Context, n notification.SMSNotification) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()

	l.db.data.SMSNotifications = append(l.db.data.SMSNotifications, n)
	if err := l.db.save(); err != nil {
		l.db.data.SMSNotifications = l.db.data.SMSNotifications[:len(l.db.data.SMSNotifications)-1]
		return err
	}
	return nil
}

func (l *notificationLog) QueryAdminNotifications(_ context.Context) ([]notification.AdminNotification, error) {
	l.db.mu.RLock()
	defer l.db.mu.RUnlock()

	ns := make([]notification.AdminNotification, len(l.db.data.AdminNotifications))
	copy(ns, l.db.data.AdminNotifications)
	return ns, nil
}

func (l *notificationLog) QueryEmailNotifications(_ context.Context) ([]notification.EmailNotification, error) {
	l.db.mu.RLock()
	defer l.db.mu.RUnlock()

	ns := make([]notification.EmailNotification, len(l.db.data.EmailNotifications))
	copy(ns, l.db.data.EmailNotifications)
	return ns, nil
}

func (l *notificationLog) QuerySMSNotifications(_ context.Context) ([]notification.SMSNotification, error) {
	l.db.mu.RLock()
	defer l.db.mu.RUnlock()

	ns := make([]notification.SMSNotification, len(l.db.data.SMSNotifications))
	copy(ns, l.db.data.SMSNotifications)
	return ns, nil
}

func (l *notificationLog) MarkAdminNotificationsRead(_ context.Context) error {
	l.db.mu.Lock()
	defer l.db.mu.Unlock()

	for i := range l.db.data.AdminNotifications {
		l.db.data.AdminNotifications[i].Read = true
	}
	return l.db.save()
}
