package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-form-keeper/internal/adapter"
	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/models"
)

var errUsage = errors.New("usage: formctl [-a address] [-token token] [-timeout d] <create|list|get|submit|responses|delete|token|version> [args]")

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// run parses the global flags and dispatches to the subcommand.
func run(ctx context.Context, args []string, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, stdout io.Writer, log *logger.Logger) error {
	global := flag.NewFlagSet("formctl", flag.ContinueOnError)
	global.SetOutput(io.Discard)
	global.StringVar(&cfg.ServerAddress, "a", cfg.ServerAddress, "API address")
	global.StringVar(&cfg.Token, "token", cfg.Token, "bearer token")
	global.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "request timeout")
	if err := global.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}
	command, cmdArgs := rest[0], rest[1:]

	switch command {
	case "token":
		return runToken(cmdArgs, cfg, stdout)
	case "build-info":
		printBuildInfo(stdout, buildInfo)
		return nil
	}

	client, err := adapter.NewHTTPFormsClient(*cfg, log)
	if err != nil {
		return err
	}

	switch command {
	case "create":
		return runCreate(ctx, client, cmdArgs, stdout)
	case "list":
		forms, err := client.ListForms(ctx)
		if err != nil {
			return err
		}
		return printJSON(stdout, forms)
	case "get":
		formID, err := singleArg(cmdArgs, "formId")
		if err != nil {
			return err
		}
		form, err := client.GetForm(ctx, formID)
		if err != nil {
			return err
		}
		return printJSON(stdout, form)
	case "submit":
		return runSubmit(ctx, client, cmdArgs, stdout)
	case "responses":
		formID, err := singleArg(cmdArgs, "formId")
		if err != nil {
			return err
		}
		responses, err := client.GetResponses(ctx, formID)
		if err != nil {
			return err
		}
		return printJSON(stdout, responses)
	case "delete":
		formID, err := singleArg(cmdArgs, "formId")
		if err != nil {
			return err
		}
		msg, err := client.DeleteForm(ctx, formID)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, msg.Message)
		return nil
	case "version":
		version, err := client.Version(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, version)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func runCreate(ctx context.Context, client adapter.FormsClient, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	file := fs.String("f", "", "form definition JSON file")
	copyLink := fs.Bool("copy", false, "copy the share link to the clipboard")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("%w: create needs -f <file>", errUsage)
	}

	var req models.CreateFormRequest
	if err := readJSONFile(*file, &req); err != nil {
		return err
	}

	created, err := client.CreateForm(ctx, req)
	if err != nil {
		return err
	}

	if *copyLink {
		if err = copyToClipboard(created.ShareLink); err != nil {
			return fmt.Errorf("copy share link: %w", err)
		}
	}
	return printJSON(stdout, created)
}

func runSubmit(ctx context.Context, client adapter.FormsClient, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	formID := fs.String("form", "", "form id")
	data := fs.String("data", "", "submission data as a JSON object")
	file := fs.String("f", "", "submission data JSON file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *formID == "" || (*data == "") == (*file == "") {
		return fmt.Errorf("%w: submit needs -form <id> and one of -data or -f", errUsage)
	}

	req := models.SubmitRequest{FormID: *formID}
	if *file != "" {
		if err := readJSONFile(*file, &req.Data); err != nil {
			return err
		}
	} else if err := decodeJSON(strings.NewReader(*data), &req.Data); err != nil {
		return fmt.Errorf("parse -data: %w", err)
	}

	receipt, err := client.Submit(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(stdout, receipt)
}

func runToken(args []string, cfg *config.ClientConfig, stdout io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	owner := fs.String("owner", "", "owner id (token subject)")
	duration := fs.Duration("ttl", cfg.TokenDuration, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *owner == "" {
		return fmt.Errorf("%w: token needs -owner <id>", errUsage)
	}
	if cfg.TokenSignKey == "" {
		return errors.New("APP_TOKEN_SIGN_KEY is not set")
	}
	if *duration <= 0 {
		*duration = 24 * time.Hour
	}

	token, err := utils.GenerateJWTToken(cfg.TokenIssuer, *owner, *duration, cfg.TokenSignKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, token.SignedString)
	return nil
}

func singleArg(args []string, name string) (string, error) {
	if len(args) != 1 || args[0] == "" {
		return "", fmt.Errorf("%w: expected <%s>", errUsage, name)
	}
	return args[0], nil
}

func readJSONFile(path string, dst any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = decodeJSON(f, dst); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// decodeJSON keeps numbers as json.Number so values reach the server as
// written.
func decodeJSON(r io.Reader, dst any) error {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()
	return decoder.Decode(dst)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
