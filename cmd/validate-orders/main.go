package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gunvolt24/logistics/pkg/validate"
)

// validate-orders — проверка файла с заказами перед массовой загрузкой через POST /api/v1/orders.
// Валидные заказы печатаются в stdout построчно, итог и отклонённые записи — в stderr.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads JSONL from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	showIssues := flag.Bool("issues", false, "print rejected records as JSON to stderr")
	strict := flag.Bool("strict", false, "exit with code 2 if any record is invalid")
	flag.Parse()

	os.Exit(run(*inputPath, validate.InputFormat(*formatStr), *showIssues, *strict))
}

func run(inputPath string, format validate.InputFormat, showIssues, strict bool) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	validator := validate.NewValidator()

	var (
		report validate.Report
		err    error
	)
	if inputPath == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		report, err = validate.ValidateStream(ctx, validator, os.Stdin, format, os.Stdout)
	} else {
		report, err = validate.ValidateFile(ctx, validator, inputPath, format, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, report)
		return 1
	}

	if showIssues && len(report.Issues) > 0 {
		enc := json.NewEncoder(os.Stderr)
		for _, is := range report.Issues {
			_ = enc.Encode(is)
		}
	}
	fmt.Fprintf(os.Stderr, "validation done (%s)\n", report)

	if strict && report.Invalid > 0 {
		return 2
	}
	return 0
}
