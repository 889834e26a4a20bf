package main

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/volatiletech/null/v8"
	"golang.org/x/term"

	"github.com/trezcool/sessionbook/core/school"
	"github.com/trezcool/sessionbook/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	usrSvc   *user.Service
	schSvc   *school.Service
	validate *validator.Validate
}

// run executes the command in args; args[0] is the program name.
func (cli *commandLine) run(args []string) error {
	root := cli.rootCmd()
	if len(args) > 0 {
		args = args[1:]
	}
	root.SetArgs(args)
	return root.Execute()
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Sessionbook administration commands",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(cli.migrateCmd(), cli.addUserCmd(), cli.addSchoolCmd())
	return root
}

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate COMMAND [ARGS...]",
		Short: "Run a goose migration command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix)",
		// goose parses its own arguments
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) addUserCmd() *cobra.Command {
	var (
		email       string
		accountType string
		schoolID    int64
	)
	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "Create a user, or replace the user with the same email. The password is prompted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				_ = cmd.Usage()
				return errHelp
			}
			fmt.Print("Enter password:")
			pwd, err := readPasswordFunc(int(syscall.Stdin))
			fmt.Println()
			if err != nil {
				return err
			}
			if len(pwd) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.addUser(email, string(pwd), accountType, schoolID)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "The user's email")
	cmd.Flags().StringVar(&accountType, "account-type", user.AccountAdmin, "The user's account type")
	cmd.Flags().Int64Var(&schoolID, "school-id", 0, "The user's school (none if 0)")
	return cmd
}

func (cli *commandLine) addSchoolCmd() *cobra.Command {
	var ns school.NewSchool
	var phone int64
	cmd := &cobra.Command{
		Use:   "addschool",
		Short: "Create a school",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ns.Name == "" || ns.Domain == "" {
				_ = cmd.Usage()
				return errHelp
			}
			if cmd.Flags().Changed("phone") {
				ns.Phone = null.Int64From(phone)
			}
			return cli.addSchool(ns)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&ns.Name, "name", "", "The school's name")
	flags.StringVar(&ns.Address, "address", "", "The school's street address")
	flags.StringVar(&ns.City, "city", "", "The school's city")
	flags.StringVar(&ns.County, "county", "", "The school's county")
	flags.StringVar(&ns.Postcode, "postcode", "", "The school's postcode")
	flags.Int64Var(&phone, "phone", 0, "The school's phone number")
	flags.StringVar(&ns.Website, "website", "", "The school's website")
	flags.StringVar(&ns.Domain, "domain", "", "The school's email domain")
	return cmd
}
