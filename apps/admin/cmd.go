package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/letscatchup/core"
	"github.com/trezcool/letscatchup/core/pin"
	"github.com/trezcool/letscatchup/core/school"
	"github.com/trezcool/letscatchup/core/wizard"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sql.DB
	pinSvc    *pin.Service
	schoolSvc *school.Service
	resolver  wizard.Resolver
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run database migrations (up, down, status, ...)")
	fmt.Println("  addschool -name NAME [-logo URL] - register a school. The access code will be prompted next.")
	fmt.Println("  addpin -name NAME -school SCHOOL -city CITY [-postal CODE] - place a pin for an alumnus")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addSchoolCmd := flag.NewFlagSet("addschool", flag.ExitOnError)
	addSchoolName := addSchoolCmd.String("name", "", "The school's display name.")
	addSchoolLogo := addSchoolCmd.String("logo", "", "Optional logo URL.")

	addPinCmd := flag.NewFlagSet("addpin", flag.ExitOnError)
	addPinName := addPinCmd.String("name", "", "The alumnus's full name.")
	addPinSchool := addPinCmd.String("school", "", "The school's name.")
	addPinCity := addPinCmd.String("city", "", "The city the alumnus lives in.")
	addPinPostal := addPinCmd.String("postal", "", "Postal code, improves geocoding accuracy.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "addschool":
		if err := addSchoolCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addSchoolName == "" {
			addSchoolCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter access code:")
		code, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if err := core.Conf.CheckAccessCode(string(code)); err != nil {
			return errors.New("invalid access code")
		}
		return cli.addSchool(*addSchoolName, *addSchoolLogo)
	case "addpin":
		if err := addPinCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addPinName == "" || *addPinSchool == "" || *addPinCity == "" {
			addPinCmd.Usage()
			return errHelp
		}
		return cli.addPin(*addPinName, *addPinSchool, *addPinCity, *addPinPostal)
	default:
		cli.printUsage()
		return errHelp
	}
}
