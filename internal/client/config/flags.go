package config

import (
	"flag"
	"os"
	"time"

	"github.com/avorobjovs/demoboard/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the user directory API
//	-p string   base URL of the post board API
//	-l string   base URL of the book catalog API
//	-t string   base URL of the token service
//	-f string   path of the local overlay database file
//	-i int      outbound request timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-p", "-l", "-t", "-f", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DirectoryBaseURL, "u", cfg.DirectoryBaseURL, "base URL of the user directory API")
	fs.StringVar(&cfg.BoardBaseURL, "p", cfg.BoardBaseURL, "base URL of the post board API")
	fs.StringVar(&cfg.LibraryBaseURL, "l", cfg.LibraryBaseURL, "base URL of the book catalog API")
	fs.StringVar(&cfg.TokenServiceURL, "t", cfg.TokenServiceURL, "base URL of the token service")
	fs.StringVar(&cfg.DatabaseDSN, "f", cfg.DatabaseDSN, "path of the local overlay database file")
	httpTimeout := fs.Int("i", int(cfg.HTTPTimeout.Seconds()), "outbound request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
