package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
	exportsvc "github.com/kingsolomonjunior/admissions/services/export"
	inmemdb "github.com/kingsolomonjunior/admissions/storage/database/inmem"
)

type testLogger struct{}

func (testLogger) Debug(msg string, args ...interface{}) {}
func (testLogger) Info(msg string, args ...interface{})  {}
func (testLogger) Warn(msg string, args ...interface{})  {}
func (testLogger) Error(msg string, args ...interface{}) {}
func (testLogger) Fatal(msg string, args ...interface{}) {}

func setup(t *testing.T) *commandLine {
	db, err := inmemdb.Open("")
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	return &commandLine{
		appRepo:   inmemdb.NewApplicationRepository(db),
		notifLog:  inmemdb.NewNotificationLog(db),
		exportSvc: exportsvc.NewService(testLogger{}),
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
	extra   interface{}
}

func createApplication(t *testing.T, repo enrollment.Repository, ref, grade string) {
	t.Helper()
	_, err := repo.CreateApplication(context.Background(), enrollment.Application{
		NewApplication: enrollment.NewApplication{
			StudentFirstName: "Amina",
			StudentLastName:  "Otieno",
			ApplyingFor:      grade,
		},
		Ref:            ref,
		SubmissionDate: time.Now().UTC(),
		Status:         enrollment.StatusNew,
	})
	if err != nil {
		t.Fatalf("createApplication() failed: %v", err)
	}
}

func Test_commandLine_stats(t *testing.T) {
	cli := setup(t)

	createApplication(t, cli.appRepo, "KSJ-STATS1-AAAAA", "Grade 1")
	createApplication(t, cli.appRepo, "KSJ-STATS2-BBBBB", "Grade 3")
	if err := cli.notifLog.AppendAdminNotification(context.Background(), notification.AdminNotification{
		Type:      notification.TypeNewApplication,
		Message:   "New application from Amina Otieno",
		Timestamp: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("AppendAdminNotification() failed: %v", err)
	}

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "stats", args: []string{"stats"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_exportForm(t *testing.T) {
	cli := setup(t)
	dir := t.TempDir()

	tests := []cliTest{
		{name: "pdf", args: []string{"exportform", "-format", "pdf", "-out", dir}, extra: ".pdf"},
		{name: "html", args: []string{"exportform", "-format", "html", "-out", dir}, extra: ".html"},
		{name: "unsupported format", args: []string{"exportform", "-format", "docx", "-out", dir}, wantErr: exportsvc.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}

			ext := tt.extra.(string)
			matches, globErr := filepath.Glob(filepath.Join(dir, "King_Solomon_Junior_Application_Form_*"+ext))
			if globErr != nil || len(matches) != 1 {
				t.Fatalf("expected one %s form in %s, got %v (err %v)", ext, dir, matches, globErr)
			}
			info, statErr := os.Stat(matches[0])
			if statErr != nil || info.Size() == 0 {
				t.Errorf("exported form is empty or unreadable: %v", statErr)
			}
		})
	}
}

func Test_commandLine_hashPassword(t *testing.T) {
	cli := setup(t)

	type extra struct {
		pwd string
	}
	tests := []cliTest{
		{name: "empty password", args: []string{"hashpassword"}, wantErr: errHelp},
		{name: "hashes the prompted password", args: []string{"hashpassword"}, extra: extra{pwd: "0p3n-s3sam3!"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			if extra, ok := tt.extra.(extra); ok {
				return []byte(extra.pwd), nil
			}
			return nil, nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

