package sqlxrepos

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "postgres")
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var applicationRowColumns = []string{
	"id", "ref", "student_first_name", "student_middle_name", "student_last_name",
	"date_of_birth", "gender", "nationality", "applying_for", "previous_school",
	"medical_conditions", "parent_first_name", "parent_last_name", "parent_relationship",
	"parent_phone", "parent_email", "parent_occupation", "address",
	"secondary_contact_name", "secondary_contact_phone", "terms_accepted",
	"data_consent", "files", "submission_date", "status",
}

func Test_applicationRepository_CreateApplication(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	submitted := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	app := enrollment.Application{
		NewApplication: enrollment.NewApplication{
			StudentFirstName:   "Amina",
			StudentLastName:    "Otieno",
			DateOfBirth:        "2019-03-15",
			Gender:             "Female",
			ApplyingFor:        "Grade 1",
			ParentFirstName:    "Grace",
			ParentLastName:     "Otieno",
			ParentRelationship: "Mother",
			ParentPhone:        "+254712345678",
			ParentEmail:        "grace@example.com",
			Address:            "Homa Bay",
			TermsAccepted:      true,
			DataConsent:        true,
		},
		Ref:            "KSJ-MB1X2-AB12C",
		SubmissionDate: submitted,
		Status:         enrollment.StatusNew,
		Files: map[string]enrollment.StoredFile{
			"passportPhoto": {Name: "photo.png", Type: "image/png", Size: 2048, Data: "data:image/png;base64,cG5n"},
		},
	}

	mock.ExpectExec("INSERT INTO application").WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := repo.CreateApplication(context.Background(), app)
	require.NoError(t, err)
	assert.Equal(t, app, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_applicationRepository_GetApplicationByRef(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	submitted := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ref = $1")).
		WithArgs("KSJ-MB1X2-AB12C").
		WillReturnRows(sqlmock.NewRows(applicationRowColumns).AddRow(
			1, "KSJ-MB1X2-AB12C", "Amina", nil, "Otieno",
			"2019-03-15", "Female", "Kenyan", "Grade 1", nil,
			nil, "Grace", "Otieno", "Mother",
			"+254712345678", "grace@example.com", nil, "Homa Bay",
			nil, nil, true,
			true, []byte(`{"passportPhoto":{"name":"photo.png","type":"image/png","size":2048,"data":"data:image/png;base64,cG5n"}}`),
			submitted, enrollment.StatusNew,
		))

	app, err := repo.GetApplicationByRef(context.Background(), "KSJ-MB1X2-AB12C")
	require.NoError(t, err)
	assert.Equal(t, "Amina Otieno", app.StudentName())
	assert.Equal(t, "Kenyan", app.Nationality)
	assert.Equal(t, "", app.StudentMiddleName) // NULL maps to empty
	assert.Equal(t, submitted, app.SubmissionDate)
	require.Contains(t, app.Files, "passportPhoto")
	assert.Equal(t, "photo.png", app.Files["passportPhoto"].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_applicationRepository_GetApplicationByRef_notFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE ref = $1")).
		WithArgs("KSJ-NOPE-00000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetApplicationByRef(context.Background(), "KSJ-NOPE-00000")
	assert.Equal(t, enrollment.ErrNotFound, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_applicationRepository_FilterApplications_queryConstruction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE status = $1 AND applying_for = $2 ORDER BY submission_date DESC")).
		WithArgs(enrollment.StatusNew, "Grade 1").
		WillReturnRows(sqlmock.NewRows(applicationRowColumns))

	apps, err := repo.FilterApplications(context.Background(),
		enrollment.QueryFilter{Status: enrollment.StatusNew, Grade: "Grade 1"},
		core.DBOrdering{Field: "submissionDate", Ascending: false},
	)
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_applicationRepository_FilterApplications_searchAndDefaults(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewApplicationRepository(db)

	// search binds one pattern reused across three ILIKE conditions;
	// with no ordering requested the query falls back to id ASC
	mock.ExpectQuery(regexp.QuoteMeta("ref ILIKE $1)") + ".*" + regexp.QuoteMeta("ORDER BY id ASC")).
		WithArgs("%otieno%").
		WillReturnRows(sqlmock.NewRows(applicationRowColumns))

	_, err := repo.FilterApplications(context.Background(), enrollment.QueryFilter{Search: "otieno"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_notificationLog_roundTrip(t *testing.T) {
	db, mock := newMockDB(t)
	log := NewNotificationLog(db)
	ctx := context.Background()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO admin_notification").
		WithArgs(notification.TypeNewApplication, "New application from Amina Otieno", "KSJ-MB1X2-AB12C", now, false).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, log.AppendAdminNotification(ctx, notification.AdminNotification{
		Type:           notification.TypeNewApplication,
		Message:        "New application from Amina Otieno",
		ApplicationRef: "KSJ-MB1X2-AB12C",
		Timestamp:      now,
	}))

	mock.ExpectExec("INSERT INTO email_notification").
		WithArgs("grace@example.com", "Application Received", "body", now, notification.StatusSent, notification.TypeApplicationReceived).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, log.AppendEmailNotification(ctx, notification.EmailNotification{
		To:        "grace@example.com",
		Subject:   "Application Received",
		Body:      "body",
		Timestamp: now,
		Status:    notification.StatusSent,
		Type:      notification.TypeApplicationReceived,
	}))

	mock.ExpectQuery("SELECT (.+) FROM admin_notification").
		WillReturnRows(sqlmock.NewRows([]string{"type", "message", "ref", "timestamp", "read"}).
			AddRow(notification.TypeNewApplication, "New application from Amina Otieno", "KSJ-MB1X2-AB12C", now, false))

	ns, err := log.QueryAdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, ns, 1)
	assert.Equal(t, "KSJ-MB1X2-AB12C", ns[0].ApplicationRef)

	mock.ExpectExec("UPDATE admin_notification SET read = TRUE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, log.MarkAdminNotificationsRead(ctx))

	assert.NoError(t, mock.ExpectationsWereMet())
}
