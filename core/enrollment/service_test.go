package enrollment_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingsolomonjunior/admissions/core/attachment"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
	emailsvc "github.com/kingsolomonjunior/admissions/services/email"
	smssvc "github.com/kingsolomonjunior/admissions/services/sms"
	inmemdb "github.com/kingsolomonjunior/admissions/storage/database/inmem"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

func setup(t *testing.T) (*enrollment.Service, *notification.Service, notification.Log) {
	t.Helper()
	emailsvc.ClearSentMessages()
	smssvc.ClearSentMessages()

	db, err := inmemdb.Open("") // memory only
	require.NoError(t, err)

	log := inmemdb.NewNotificationLog(db)
	notifSvc := notification.NewService(log, emailsvc.NewConsoleServiceMock(), smssvc.NewConsoleServiceMock())
	enrollSvc := enrollment.NewService(inmemdb.NewApplicationRepository(db), notifSvc, testLogger{})
	return enrollSvc, notifSvc, log
}

func draft() enrollment.NewApplication {
	return enrollment.NewApplication{
		StudentFirstName: "Baraka",
		StudentLastName:  "Ochieng",
		DateOfBirth:      "2019-11-02",
		Gender:           "Male",
		ApplyingFor:      "Pre-Primary 2",

		ParentFirstName:    "David",
		ParentLastName:     "Ochieng",
		ParentRelationship: "Father",
		ParentPhone:        "0722000111",
		ParentEmail:        "d.ochieng@example.com",
		Address:            "Asego, Homa Bay",

		TermsAccepted: true,
		DataConsent:   true,
	}
}

func Test_Service_Submit_roundTrip(t *testing.T) {
	enrollSvc, notifSvc, _ := setup(t)
	ctx := context.Background()

	var refreshed int
	notifSvc.SetRefreshHook(func() { refreshed++ })

	files := attachment.NewList()
	_, err := files.Add(attachment.File{
		Field:       "passportPhoto",
		Name:        "photo.png",
		ContentType: "image/png",
		Size:        2048,
		Data:        []byte("pngdata"),
	})
	require.NoError(t, err)

	na := draft()
	wiz := enrollment.NewWizard(&na, files)
	for !wiz.OnLastStep() {
		require.NoError(t, wiz.Next())
	}

	app, err := wiz.Submit(ctx, enrollSvc)
	require.NoError(t, err)
	assert.Regexp(t, `^KSJ-[0-9A-Z]+-[0-9A-Z]{5}$`, app.Ref)
	assert.Equal(t, enrollment.StatusNew, app.Status)
	assert.False(t, app.SubmissionDate.IsZero())

	// attachment encoded as a data URI, keyed by its upload field
	stored, ok := app.Files["passportPhoto"]
	require.True(t, ok)
	assert.Equal(t, "photo.png", stored.Name)
	assert.True(t, strings.HasPrefix(stored.Data, "data:image/png;base64,"))

	// record persisted and retrievable by ref
	got, err := enrollSvc.GetByRef(ctx, app.Ref)
	require.NoError(t, err)
	assert.Equal(t, app.Ref, got.Ref)
	assert.Equal(t, "Baraka Ochieng", got.StudentName())

	// one entry in each notification log
	admin, err := notifSvc.QueryAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "New application from Baraka Ochieng", admin[0].Message)
	assert.Equal(t, app.Ref, admin[0].ApplicationRef)
	assert.False(t, admin[0].Read)

	emails, err := notifSvc.QueryEmail(ctx)
	require.NoError(t, err)
	require.Len(t, emails, 1)
	assert.Equal(t, "d.ochieng@example.com", emails[0].To)
	assert.Contains(t, emails[0].Subject, "Application Received")
	assert.Contains(t, emails[0].Body, "Baraka Ochieng")

	sms, err := notifSvc.QuerySMS(ctx)
	require.NoError(t, err)
	require.Len(t, sms, 1)
	assert.Equal(t, "0722000111", sms[0].To)
	assert.Contains(t, sms[0].Message, "Pre-Primary 2")

	assert.Equal(t, 1, refreshed)

	// the SMS transport got the same message
	require.Len(t, smssvc.SentMessages, 1)
	assert.Equal(t, sms[0].Message, smssvc.SentMessages[0].Body)
}

func Test_Service_Submit_invalidDraftRejected(t *testing.T) {
	enrollSvc, notifSvc, _ := setup(t)
	ctx := context.Background()

	na := draft()
	na.ParentEmail = "not-an-email"
	wiz := enrollment.NewWizard(&na, nil)

	require.NoError(t, wiz.Next()) // student step is fine
	assert.Error(t, wiz.Next())    // parent step fails

	// nothing submitted, nothing logged
	apps, err := enrollSvc.QueryAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)

	admin, err := notifSvc.QueryAdmin(ctx)
	require.NoError(t, err)
	assert.Empty(t, admin)
}

func Test_Service_GetByRef_notFound(t *testing.T) {
	enrollSvc, _, _ := setup(t)

	_, err := enrollSvc.GetByRef(context.Background(), "KSJ-UNKNOWN-AAAAA")
	assert.Equal(t, enrollment.ErrNotFound, err)
}

func Test_Service_MarkAdminRead(t *testing.T) {
	enrollSvc, notifSvc, _ := setup(t)
	ctx := context.Background()

	na := draft()
	_, err := enrollSvc.Submit(ctx, na, nil)
	require.NoError(t, err)

	require.NoError(t, notifSvc.MarkAdminRead(ctx))

	admin, err := notifSvc.QueryAdmin(ctx)
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.True(t, admin[0].Read)
}
