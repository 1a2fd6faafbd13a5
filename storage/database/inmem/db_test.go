package inmemdb

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingsolomonjunior/admissions/core"
	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
)

func newApp(ref, firstName, lastName, grade string, submitted time.Time) enrollment.Application {
	return enrollment.Application{
		NewApplication: enrollment.NewApplication{
			StudentFirstName: firstName,
			StudentLastName:  lastName,
			ApplyingFor:      grade,
			ParentFirstName:  "Parent",
			ParentLastName:   lastName,
		},
		Ref:            ref,
		SubmissionDate: submitted,
		Status:         enrollment.StatusNew,
		Files:          map[string]enrollment.StoredFile{},
	}
}

func Test_applicationRepository_filterAndOrder(t *testing.T) {
	db, err := Open("")
	require.NoError(t, err)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	now := time.Now().UTC()
	app1 := newApp("KSJ-A-11111", "Amina", "Otieno", "Grade 1", now.Add(-2*time.Hour))
	app1.StudentMiddleName = "Wanjiru"
	app2 := newApp("KSJ-B-22222", "Baraka", "Ochieng", "Grade 3", now.Add(-1*time.Hour))
	app3 := newApp("KSJ-C-33333", "Chloe", "Otieno", "Grade 1", now)

	for _, app := range []enrollment.Application{app1, app2, app3} {
		_, err := repo.CreateApplication(ctx, app)
		require.NoError(t, err)
	}

	refs := func(apps []enrollment.Application) []string {
		out := make([]string, 0, len(apps))
		for _, a := range apps {
			out = append(out, a.Ref)
		}
		return out
	}

	// grade filter
	apps, err := repo.FilterApplications(ctx, enrollment.QueryFilter{Grade: "Grade 1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"KSJ-A-11111", "KSJ-C-33333"}, refs(apps))

	// case-insensitive search on names and ref
	apps, err = repo.FilterApplications(ctx, enrollment.QueryFilter{Search: "otieno"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"KSJ-A-11111", "KSJ-C-33333"}, refs(apps))

	apps, err = repo.FilterApplications(ctx, enrollment.QueryFilter{Search: "ksj-b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"KSJ-B-22222"}, refs(apps))

	// search spans first and last name but never the middle name
	apps, err = repo.FilterApplications(ctx, enrollment.QueryFilter{Search: "amina otieno"})
	require.NoError(t, err)
	assert.Equal(t, []string{"KSJ-A-11111"}, refs(apps))

	apps, err = repo.FilterApplications(ctx, enrollment.QueryFilter{Search: "wanjiru"})
	require.NoError(t, err)
	assert.Empty(t, apps)

	// date range
	apps, err = repo.FilterApplications(ctx, enrollment.QueryFilter{SubmittedFrom: now.Add(-90 * time.Minute)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"KSJ-B-22222", "KSJ-C-33333"}, refs(apps))

	// ordering on submission date
	apps, err = repo.FilterApplications(ctx, enrollment.QueryFilter{},
		core.DBOrdering{Field: "submissionDate", Ascending: false})
	require.NoError(t, err)
	assert.Equal(t, []string{"KSJ-C-33333", "KSJ-B-22222", "KSJ-A-11111"}, refs(apps))

	// unknown ref
	_, err = repo.GetApplicationByRef(ctx, "KSJ-NOPE-00000")
	assert.Equal(t, enrollment.ErrNotFound, err)
}

func Test_DB_snapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admissions.json")
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)

	repo := NewApplicationRepository(db)
	log := NewNotificationLog(db)

	_, err = repo.CreateApplication(ctx, newApp("KSJ-D-44444", "Dan", "Owuor", "Grade 2", time.Now().UTC()))
	require.NoError(t, err)
	require.NoError(t, log.AppendAdminNotification(ctx, notification.AdminNotification{
		Type:           notification.TypeNewApplication,
		Message:        "New application from Dan Owuor",
		ApplicationRef: "KSJ-D-44444",
		Timestamp:      time.Now().UTC(),
	}))

	// snapshot uses the original collection names
	raw, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	var snap map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.Contains(t, snap, "schoolApplications")
	assert.Contains(t, snap, "adminNotifications")
	assert.Contains(t, snap, "emailNotifications")
	assert.Contains(t, snap, "smsNotifications")

	// a fresh handle sees everything the first one wrote
	db2, err := Open(path)
	require.NoError(t, err)

	apps, err := NewApplicationRepository(db2).QueryAllApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "KSJ-D-44444", apps[0].Ref)

	admin, err := NewNotificationLog(db2).QueryAdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "New application from Dan Owuor", admin[0].Message)
}

func Test_notificationLog_markRead(t *testing.T) {
	db, err := Open("")
	require.NoError(t, err)
	log := NewNotificationLog(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, log.AppendAdminNotification(ctx, notification.AdminNotification{
			Type:      notification.TypeNewApplication,
			Message:   "New application",
			Timestamp: time.Now().UTC(),
		}))
	}

	require.NoError(t, log.MarkAdminNotificationsRead(ctx))

	ns, err := log.QueryAdminNotifications(ctx)
	require.NoError(t, err)
	require.Len(t, ns, 3)
	for _, n := range ns {
		assert.True(t, n.Read)
	}
}
