// Command verify-subscribers checks candidate subscriber addresses against the
// configured email syntax rule set and prints a PASS/FAIL report.
//
// Addresses are read one per line from -input (default stdin), or from the
// configured subscriptions table when -db is set. Blank lines and lines
// starting with '#' are skipped. The exit status is 1 when any address is
// rejected.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/iamlucasvieira/zero2prod/internal/config"
	"github.com/iamlucasvieira/zero2prod/internal/domain"
	"github.com/iamlucasvieira/zero2prod/internal/pkg/logger"
)

type candidate struct {
	Source string // "line 3" or "row 3"
	Input  string
}

type checkResult struct {
	Source string
	Input  string
	Passed bool
	Detail string
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults are used when empty)")
	input := flag.String("input", "-", "file with one address per line, - for stdin")
	fromDB := flag.Bool("db", false, "read addresses from database.url instead of -input")
	timeout := flag.Duration("timeout", 5*time.Minute, "database query timeout")
	flag.Parse()

	cfg, err := config.LoadFromEnv(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: failed to load config: %v\n", err)
		os.Exit(2)
	}
	log, err := newLogger(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(2)
	}
	parser, err := newParser(cfg.Validation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(2)
	}

	var candidates []candidate
	if *fromDB {
		candidates, err = loadFromDatabase(cfg.Database, *timeout)
	} else {
		candidates, err = loadFromInput(*input)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(2)
	}

	results := verify(parser, candidates, log)
	if !printReport(os.Stdout, cfg.Validation.RuleSet, results) {
		os.Exit(1)
	}
}

func newLogger(cfg config.LoggingConfig, w io.Writer) (*logger.Logger, error) {
	level, err := cfg.GetLevel()
	if err != nil {
		return nil, err
	}
	return logger.New(w, level, cfg.ShouldRedactPII()), nil
}

func newParser(cfg config.ValidationConfig) (*domain.SubscriberEmailParser, error) {
	valid, err := cfg.Predicate()
	if err != nil {
		return nil, err
	}
	return domain.NewSubscriberEmailParser(domain.SyntaxPredicateFunc(valid)), nil
}

func loadFromInput(path string) ([]candidate, error) {
	if path == "-" {
		return readLines(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return readLines(f)
}

func loadFromDatabase(cfg config.DatabaseConfig, timeout time.Duration) ([]candidate, error) {
	if cfg.URL == "" {
		return nil, errors.New("database.url (or DATABASE_URL) is required with -db")
	}
	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return readRows(ctx, db, cfg.Table)
}

// readLines keeps each line verbatim apart from a trailing '\r', so the
// report shows exactly what a caller would have submitted. Lines have no
// length limit; an oversized line is reported as a failed address.
func readLines(r io.Reader) ([]candidate, error) {
	var out []candidate
	br := bufio.NewReader(r)
	for n := 1; ; n++ {
		line, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read input: %w", err)
		}
		if err != nil && line == "" {
			return out, nil
		}
		line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
		if line != "" && !strings.HasPrefix(line, "#") {
			out = append(out, candidate{Source: fmt.Sprintf("line %d", n), Input: line})
		}
		if err != nil {
			return out, nil
		}
	}
}

var tableNameRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

func readRows(ctx context.Context, db *sql.DB, table string) ([]candidate, error) {
	if !tableNameRegex.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	rows, err := db.QueryContext(ctx, `SELECT email FROM `+table+` ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []candidate
	n := 0
	for rows.Next() {
		n++
		var email sql.NullString
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", n, err)
		}
		out = append(out, candidate{Source: fmt.Sprintf("row %d", n), Input: email.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

func verify(parser *domain.SubscriberEmailParser, candidates []candidate, log *logger.Logger) []checkResult {
	results := make([]checkResult, 0, len(candidates))
	for _, c := range candidates {
		r := checkResult{Source: c.Source, Input: c.Input, Passed: true}
		if _, err := parser.Parse(c.Input); err != nil {
			r.Passed = false
			r.Detail = err.Error()
			log.Warn("subscriber email rejected", "source", c.Source, "email", c.Input)
		} else {
			log.Debug("subscriber email accepted", "source", c.Source, "email", c.Input)
		}
		results = append(results, r)
	}
	return results
}

func printReport(w io.Writer, ruleSet string, results []checkResult) bool {
	fmt.Fprintln(w, "=========================================================")
	fmt.Fprintln(w, " SUBSCRIBER EMAIL VERIFICATION REPORT")
	fmt.Fprintln(w, "=========================================================")
	fmt.Fprintf(w, "Rule set:           %s\n", ruleSet)
	fmt.Fprintf(w, "Addresses checked:  %d\n", len(results))
	fmt.Fprintln(w, "---------------------------------------------------------")

	rejected := 0
	for i, r := range results {
		status := "PASS ✓"
		if !r.Passed {
			status = "FAIL ✗"
			rejected++
		}
		fmt.Fprintf(w, "  [%d] %-10s %-40q %s\n", i+1, r.Source, r.Input, status)
		if r.Detail != "" {
			fmt.Fprintf(w, "      %s\n", r.Detail)
		}
	}

	fmt.Fprintln(w, "=========================================================")
	if rejected == 0 {
		fmt.Fprintln(w, "  OVERALL: PASS ✓  — All addresses are valid")
		fmt.Fprintln(w, "=========================================================")
		return true
	}
	fmt.Fprintf(w, "  OVERALL: FAIL ✗  — %d of %d addresses rejected\n", rejected, len(results))
	fmt.Fprintln(w, "=========================================================")
	return false
}
