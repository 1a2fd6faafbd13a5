package redisdb

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingsolomonjunior/admissions/core/notification"
)

func newTestLog(t *testing.T) (notification.Log, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client, err := Open(srv.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return NewNotificationLog(client), srv
}

func Test_notificationLog_appendAndQuery(t *testing.T) {
	log, srv := newTestLog(t)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, log.AppendAdminNotification(ctx, notification.AdminNotification{
		Type:           notification.TypeNewApplication,
		Message:        "New application from Amina Otieno",
		ApplicationRef: "KSJ-MB1X2-AB12C",
		Timestamp:      now,
	}))
	require.NoError(t, log.AppendEmailNotification(ctx, notification.EmailNotification{
		To:        "grace@example.com",
		Subject:   "Application Received",
		Body:      "body",
		Timestamp: now,
		Status:    notification.StatusSent,
		Type:      notification.TypeApplicationReceived,
	}))
	require.NoError(t, log.AppendSMSNotification(ctx, notification.SMSNotification{
		To:        "+254712345678",
		Message:   "Dear Grace Otieno, your application was received.",
		Timestamp: now,
		Status:    notification.StatusSent,
		Type:      notification.TypeApplicationReceived,
	}))

	// entries land in the original collections' list keys
	assert.True(t, srv.Exists(adminKey))

	admin, err := log.QueryAdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "New application from Amina Otieno", admin[0].Message)
	assert.Equal(t, "KSJ-MB1X2-AB12C", admin[0].ApplicationRef)
	assert.True(t, admin[0].Timestamp.Equal(now))

	emails, err := log.QueryEmailNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "grace@example.com", emails[0].To)

	sms, err := log.QuerySMSNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, sms, 1)
	assert.Equal(t, "+254712345678", sms[0].To)
}

func Test_notificationLog_appendPreservesOrder(t *testing.T) {
	log, _ := newTestLog(t)
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		require.NoError(t, log.AppendAdminNotification(ctx, notification.AdminNotification{
			Type:      notification.TypeNewApplication,
			Message:   msg,
			Timestamp: time.Now().UTC(),
		}))
	}

	ns, err := log.QueryAdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	assert.Equal(t, "first", ns[0].Message)
	assert.Equal(t, "third", ns[2].Message)
}

func Test_notificationLog_markRead(t *testing.T) {
	log, _ := newTestLog(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		require.NoError(t, log.AppendAdminNotification(ctx, notification.AdminNotification{
			Type:      notification.TypeNewApplication,
			Message:   "New application",
			Timestamp: time.Now().UTC(),
		}))
	}

	require.NoError(t, log.MarkAdminNotificationsRead(ctx))

	ns, err := log.QueryAdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, ns, 2)
	for _, n := range ns {
		assert.True(t, n.Read)
	}

	// idempotent
	require.NoError(t, log.MarkAdminNotificationsRead(ctx))
}

func Test_notificationLog_emptyLogs(t *testing.T) {
	log, _ := newTestLog(t)
	ctx := context.Background()

	ns, err := log.QueryAdminNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, ns)

	emails, err := log.QueryEmailNotifications(ctx)
	require.NoError(t, err)
	assert.Empty(t, emails)
}
