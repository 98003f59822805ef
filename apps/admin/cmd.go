package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bizdesk/backoffice/core/catalog"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db      *sql.DB
	catRepo catalog.Repository
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [args] - run a database migration command (up, down, status, ...)")
	fmt.Println("  seed - load the sample catalog into the database")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		return cli.seed()
	default:
		cli.printUsage()
		return errHelp
	}
}
