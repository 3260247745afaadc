package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/trezcool/lms/core"
	"github.com/trezcool/lms/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf    *core.Config
	usrSvc  *user.Service
	migrate func() error // nil when the engine has no schema
	out     io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -username USERNAME -email EMAIL -role admin|teacher|student [-name NAME] [-inactive] - create or update a user")
	fmt.Println("  token -username USERNAME - print a signed API token for the user")
	fmt.Println("  migrate - create or update the database schema")
}

func (cli *commandLine) writer() io.Writer {
	if cli.out == nil {
		return os.Stdout
	}
	return cli.out
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ContinueOnError)
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserRole := addUserCmd.String("role", string(core.RoleStudent), "One of admin, teacher or student.")
	addUserInactive := addUserCmd.Bool("inactive", false, "Disable the account.")

	tokenCmd := flag.NewFlagSet("token", flag.ContinueOnError)
	tokenUname := tokenCmd.String("username", "", "The user's username.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserName, *addUserUname, *addUserEmail, *addUserRole, !*addUserInactive)
	case "token":
		if err := tokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *tokenUname == "" {
			tokenCmd.Usage()
			return errHelp
		}
		return cli.token(*tokenUname)
	case "migrate":
		return cli.runMigrations()
	default:
		cli.printUsage()
		return errHelp
	}
}
