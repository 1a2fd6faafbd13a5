package notification

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
)

// fakeLog records appends in memory; failAfter aborts appends past the
// given count to exercise the no-rollback behavior.
type fakeLog struct {
	admin     []AdminNotification
	emails    []EmailNotification
	sms       []SMSNotification
	failAfter int
}

func (l *fakeLog) appends() int { return len(l.admin) + len(l.emails) + len(l.sms) }

func (l *fakeLog) AppendAdminNotification(_ context.Context, n AdminNotification) error {
	if l.failAfter > 0 && l.appends() >= l.failAfter {
		return errors.New("log unavailable")
	}
	l.admin = append(l.admin, n)
	return nil
}

func (l *fakeLog) AppendEmailNotification(_ context.Context, n EmailNotification) error {
	if l.failAfter > 0 && l.appends() >= l.failAfter {
		return errors.New("log unavailable")
	}
	l.emails = append(l.emails, n)
	return nil
}

func (l *fakeLog) AppendSMSNotification(_ context.Context, n SMSNotification) error {
	if l.failAfter > 0 && l.appends() >= l.failAfter {
		return errors.New("log unavailable")
	}
	l.sms = append(l.sms, n)
	return nil
}

func (l *fakeLog) QueryAdminNotifications(_ context.Context) ([]AdminNotification, error) {
	return l.admin, nil
}

func (l *fakeLog) QueryEmailNotifications(_ context.Context) ([]EmailNotification, error) {
	return l.emails, nil
}

func (l *fakeLog) QuerySMSNotifications(_ context.Context) ([]SMSNotification, error) {
	return l.sms, nil
}

func (l *fakeLog) MarkAdminNotificationsRead(_ context.Context) error {
	for i := range l.admin {
		l.admin[i].Read = true
	}
	return nil
}

type noopEmail struct{}

func (noopEmail) SendMessages(...*core.EmailMessage) {}

type noopSMS struct{}

func (noopSMS) SendMessages(...*core.SMSMessage) {}

func app() enrollment.Application {
	return enrollment.Application{
		NewApplication: enrollment.NewApplication{
			StudentFirstName: "Amina",
			StudentLastName:  "Otieno",
			ApplyingFor:      "Grade 3",
			ParentFirstName:  "Grace",
			ParentLastName:   "Otieno",
			ParentPhone:      "+254712345678",
			ParentEmail:      "grace@example.com",
		},
		Ref:    "KSJ-TEST1-ABCDE",
		Status: enrollment.StatusNew,
	}
}

func Test_Service_ApplicationReceived_messageTemplates(t *testing.T) {
	log := &fakeLog{}
	svc := NewService(log, noopEmail{}, noopSMS{})

	require.NoError(t, svc.ApplicationReceived(context.Background(), app()))

	require.Len(t, log.admin, 1)
	assert.Equal(t, TypeNewApplication, log.admin[0].Type)
	assert.Equal(t, "New application from Amina Otieno", log.admin[0].Message)
	assert.Equal(t, "KSJ-TEST1-ABCDE", log.admin[0].ApplicationRef)
	assert.False(t, log.admin[0].Read)

	require.Len(t, log.emails, 1)
	assert.Equal(t, "grace@example.com", log.emails[0].To)
	assert.Equal(t, "Application Received – King Solomon Junior Primary School", log.emails[0].Subject)
	assert.Contains(t, log.emails[0].Body, "Dear Grace Otieno,")
	assert.Contains(t, log.emails[0].Body, "**Amina Otieno**")
	assert.Contains(t, log.emails[0].Body, "Grade **Grade 3**")
	assert.Equal(t, StatusSent, log.emails[0].Status)
	assert.Equal(t, TypeApplicationReceived, log.emails[0].Type)

	require.Len(t, log.sms, 1)
	assert.Equal(t, "+254712345678", log.sms[0].To)
	assert.Contains(t, log.sms[0].Message, "Dear Grace Otieno")
	assert.Contains(t, log.sms[0].Message, "King Solomon Junior")

	// every entry shares one timestamp
	assert.Equal(t, log.admin[0].Timestamp, log.emails[0].Timestamp)
	assert.Equal(t, log.admin[0].Timestamp, log.sms[0].Timestamp)
}

func Test_Service_ApplicationReceived_partialFailureKeepsEarlierEntries(t *testing.T) {
	log := &fakeLog{failAfter: 1} // admin succeeds, email append fails
	svc := NewService(log, noopEmail{}, noopSMS{})

	err := svc.ApplicationReceived(context.Background(), app())
	require.Error(t, err)

	// the admin entry stays; nothing past the failure was appended
	assert.Len(t, log.admin, 1)
	assert.Empty(t, log.emails)
	assert.Empty(t, log.sms)
}

func Test_Service_refreshHookFiresOnAdminEntry(t *testing.T) {
	log := &fakeLog{}
	svc := NewService(log, noopEmail{}, noopSMS{})

	var called int
	svc.SetRefreshHook(func() { called++ })

	require.NoError(t, svc.ApplicationReceived(context.Background(), app()))
	require.NoError(t, svc.ApplicationReceived(context.Background(), app()))
	assert.Equal(t, 2, called)
}
