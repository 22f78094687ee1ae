package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flashmob/go-rfc5322/log"
)

// Exit codes reported to the shell.
const (
	exitValid = 0
	// no type flag was given, the inputs got a diagnostic dump instead
	exitNoType = 40
	// input did not parse against the requested production
	exitParse = 41
	// input parsed but failed post-validation
	exitInvalid = 42
	// input is not a valid domain, IPv4 or IPv6 literal
	exitLiteral = 43
)

var (
	flagAddrSpec    bool
	flagMailbox     bool
	flagAddress     bool
	flagMailboxList bool
	flagAddressList bool
	flagDomain      bool
	flagIPv4        bool
	flagIPv6        bool
	flagIDNA        bool

	logDest string
	verbose bool

	mainlog log.Logger

	rootCmd = &cobra.Command{
		Use:   "chkaddr [flags] [--] input ...",
		Short: "parse and validate email addresses",
		Long: `chkaddr parses its arguments against the RFC 5322 address grammar and the
RFC 5321 length and literal rules. The canonical form of anything that
passes is printed to standard output; the exit code tells the rest.
Without a type flag every input gets a diagnostic dump.`,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(run(args))
		},
	}
)

func init() {
	// log to stderr on startup
	var logOpenError error
	if mainlog, logOpenError = log.GetLogger(log.OutputStderr.String()); logOpenError != nil {
		mainlog.WithError(logOpenError).Errorf("Failed creating a logger to %s", log.OutputStderr)
	}
	flags := rootCmd.Flags()
	flags.BoolVar(&flagAddrSpec, "addrspec", false, "parse as a bare addr-spec")
	flags.BoolVar(&flagMailbox, "mailbox", false, "parse as a single mailbox")
	flags.BoolVar(&flagAddress, "address", false, "parse as a single address (mailbox or group)")
	flags.BoolVar(&flagMailboxList, "mailboxlist", false, "parse as a mailbox-list")
	flags.BoolVar(&flagAddressList, "addresslist", false, "parse as an address-list")
	flags.BoolVar(&flagDomain, "domain", false, "validate as an FQDN")
	flags.BoolVar(&flagIPv4, "ipv4", false, "validate as an IPv4 address")
	flags.BoolVar(&flagIPv6, "ipv6", false, "validate as an IPv6 address")
	flags.BoolVar(&flagIDNA, "idna", false, "convert a domain to its A-label form before validating")
	rootCmd.PersistentFlags().StringVar(&logDest, "log", log.OutputStderr.String(),
		"log destination: a file path, or stderr, stdout, off")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"print out more debug information")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if l, err := log.GetLogger(logDest); err == nil {
			mainlog = l
		} else {
			mainlog.WithError(err).Errorf("Failed creating a logger to %s", logDest)
		}
		if verbose {
			mainlog.SetLevel("debug")
		} else {
			mainlog.SetLevel("info")
		}
	}
}
