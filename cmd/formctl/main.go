// Command formctl is a command line client of the form API.
//
//	formctl [-a address] [-token token] [-timeout 10s] <command> [args]
//
// Commands:
//
//	create -f form.json [-copy]   create a form, optionally copying the share link
//	list                          list your forms with response counts
//	get <formId>                  print the public form
//	submit -form <id> -data JSON  submit a response (-f file instead of -data)
//	responses <formId>            print the stored responses of your form
//	delete <formId>               delete your form and its responses
//	token -owner <id>             mint a development bearer token
//	version                       print the server version
//	build-info                    print the client build metadata
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("formctl")

	cfg, err := config.GetClientConfig()
	if err != nil && !errors.Is(err, config.ErrInvalidAdapterConfigs) {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg == nil {
		cfg = &config.ClientConfig{}
	}

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	if err = run(context.Background(), os.Args[1:], cfg, buildInfo, os.Stdout, log); err != nil {
		fmt.Fprintln(os.Stderr, "formctl:", err)
		os.Exit(1)
	}
}

// printBuildInfo writes the client build metadata.
func printBuildInfo(w io.Writer, info models.AppBuildInfo) {
	orNA := func(s string) string {
		if s == "" {
			return "N/A"
		}
		return s
	}

	fmt.Fprintf(w, "Build version: %s\n", orNA(info.BuildVersion()))
	fmt.Fprintf(w, "Build date: %s\n", orNA(info.BuildDate()))
	fmt.Fprintf(w, "Build commit: %s\n", orNA(info.BuildCommit()))
}
