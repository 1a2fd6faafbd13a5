// Package redisdb keeps the notification logs in Redis lists. Unlike the
// snapshot store, RPUSH is a true append: concurrent writers never clobber
// each other's entries.
package redisdb

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/kingsolomonjunior/admissions/core/notification"
)

// List keys, matching the original collection names.
const (
	adminKey = "adminNotifications"
	emailKey = "emailNotifications"
	smsKey   = "smsNotifications"
)

type notificationLog struct {
	client *redis.Client
}

var _ notification.Log = (*notificationLog)(nil) // interface compliance check

func Open(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}
	return client, nil
}

func NewNotificationLog(client *redis.Client) notification.Log {
	return &notificationLog{client: client}
}

func (l *notificationLog) append(ctx context.Context, key string, entry interface{}) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "encoding notification")
	}
	return errors.Wrap(l.client.RPush(ctx, key, raw).Err(), "appending to "+key)
}

func (l *notificationLog) AppendAdminNotification(ctx context.Context, n notification.AdminNotification) error {
	return l.append(ctx, adminKey, n)
}

func (l *notificationLog) AppendEmailNotification(ctx context.Context, n notification.EmailNotification) error {
	return l.append(ctx, emailKey, n)
}

func (l *notificationLog) AppendSMSNotification(ctx context.Context, n notification.SMSNotification) error {
	return l.append(ctx, smsKey, n)
}

func (l *notificationLog) QueryAdminNotifications(ctx context.Context) ([]notification.AdminNotification, error) {
	raws, err := l.client.LRange(ctx, adminKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "reading "+adminKey)
	}
	ns := make([]notification.AdminNotification, 0, len(raws))
	for _, raw := range raws {
		var n notification.AdminNotification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, errors.Wrap(err, "decoding admin notification")
		}
		ns = append(ns, n)
	}
	return ns, nil
}

func (l *notificationLog) QueryEmailNotifications(ctx context.Context) ([]notification.EmailNotification, error) {
	raws, err := l.client.LRange(ctx, emailKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "reading "+emailKey)
	}
	ns := make([]notification.EmailNotification, 0, len(raws))
	for _, raw := range raws {
		var n notification.EmailNotification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, errors.Wrap(err, "decoding email notification")
		}
		ns = append(ns, n)
	}
	return ns, nil
}

func (l *notificationLog) QuerySMSNotifications(ctx context.Context) ([]notification.SMSNotification, error) {
	raws, err := l.client.LRange(ctx, smsKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrap(err, "reading "+smsKey)
	}
	ns := make([]notification.SMSNotification, 0, len(raws))
	for _, raw := range raws {
		var n notification.SMSNotification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return nil, errors.Wrap(err, "decoding sms notification")
		}
		ns = append(ns, n)
	}
	return ns, nil
}

func (l *notificationLog) MarkAdminNotificationsRead(ctx context.Context) error {
	raws, err := l.client.LRange(ctx, adminKey, 0, -1).Result()
	if err != nil {
		return errors.Wrap(err, "reading "+adminKey)
	}
	for i, raw := range raws {
		var n notification.AdminNotification
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			return errors.Wrap(err, "decoding admin notification")
		}
		if n.Read {
			continue
		}
		n.Read = true
		updated, err := json.Marshal(n)
		if err != nil {
			return errors.Wrap(err, "encoding admin notification")
		}
		if err := l.client.LSet(ctx, adminKey, int64(i), updated).Err(); err != nil {
			return errors.Wrap(err, "updating "+adminKey)
		}
	}
	return nil
}
