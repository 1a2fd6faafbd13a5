package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/ioutil"
	"sort"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/kingsolomonjunior/admissions/core/enrollment"
	"github.com/kingsolomonjunior/admissions/core/notification"
	exportsvc "github.com/kingsolomonjunior/admissions/services/export"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	appRepo   enrollment.Repository
	notifLog  notification.Log
	exportSvc *exportsvc.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  stats                                - print application and notification counts")
	fmt.Println("  exportform -format pdf|html -out DIR - render the blank application form")
	fmt.Println("  hashpassword                         - bcrypt-hash an admin password (prompted)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	exportFormCmd := flag.NewFlagSet("exportform", flag.ExitOnError)
	exportFormFormat := exportFormCmd.String("format", "pdf", "Output format: pdf or html.")
	exportFormOut := exportFormCmd.String("out", ".", "Directory to write the form into.")

	switch args[1] {
	case "stats":
		return cli.stats()
	case "exportform":
		if err := exportFormCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.exportForm(*exportFormFormat, *exportFormOut)
	case "hashpassword":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(pwd)
	default:
		cli.printUsage()
		return errHelp
	}
}

// stats prints application counts by status and grade plus the size of each
// notification log.
func (cli *commandLine) stats() error {
	ctx := context.Background()

	apps, err := cli.appRepo.QueryAllApplications(ctx)
	if err != nil {
		return err
	}

	byStatus := make(map[string]int)
	byGrade := make(map[string]int)
	for _, app := range apps {
		byStatus[app.Status]++
		byGrade[app.ApplyingFor]++
	}

	fmt.Printf("Applications: %d\n", len(apps))
	printCounts("By status", byStatus)
	printCounts("By grade", byGrade)

	admin, err := cli.notifLog.QueryAdminNotifications(ctx)
	if err != nil {
		return err
	}
	var unread int
	for _, n := range admin {
		if !n.Read {
			unread++
		}
	}
	emails, err := cli.notifLog.QueryEmailNotifications(ctx)
	if err != nil {
		return err
	}
	sms, err := cli.notifLog.QuerySMSNotifications(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Admin notifications: %d (%d unread)\n", len(admin), unread)
	fmt.Printf("Emails logged: %d\n", len(emails))
	fmt.Printf("SMS logged: %d\n", len(sms))
	return nil
}

// exportForm renders the blank application form into dir.
func (cli *commandLine) exportForm(format, dir string) error {
	doc, err := cli.exportSvc.ApplicationForm(exportsvc.Format(format))
	if err != nil {
		return err
	}

	path := dir + "/" + doc.Filename
	if err := ioutil.WriteFile(path, doc.Data, 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", path, len(doc.Data))
	return nil
}

// hashPassword prints the bcrypt hash to paste into the ADMIN_PASSWORD_HASH
// setting.
func (cli *commandLine) hashPassword(pwd []byte) error {
	hash, err := bcrypt.GenerateFromPassword(pwd, bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	fmt.Println(string(hash))
	return nil
}

func printCounts(title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("%s:\n", title)
	for _, k := range keys {
		fmt.Printf("  %-20s %d\n", k, counts[k])
	}
}
