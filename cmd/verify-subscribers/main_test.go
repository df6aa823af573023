package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamlucasvieira/zero2prod/internal/config"
	"github.com/iamlucasvieira/zero2prod/internal/pkg/logger"
)

func TestReadLines(t *testing.T) {
	in := strings.NewReader("ursula@example.com\r\n\n# comment\n ursula@example.com\n@gmail.com")

	got, err := readLines(in)
	require.NoError(t, err)
	assert.Equal(t, []candidate{
		{Source: "line 1", Input: "ursula@example.com"},
		{Source: "line 4", Input: " ursula@example.com"},
		{Source: "line 5", Input: "@gmail.com"},
	}, got)
}

func TestReadLines_OversizedLineIsKept(t *testing.T) {
	long := strings.Repeat("a", 200*1024) + "@example.com"
	in := strings.NewReader("ursula@example.com\n" + long + "\nada@example.org\n")

	got, err := readLines(in)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "line 2", got[1].Source)
	assert.Equal(t, long, got[1].Input)
	assert.Equal(t, candidate{Source: "line 3", Input: "ada@example.org"}, got[2])

	parser, err := newParser(config.ValidationConfig{RuleSet: "html5"})
	require.NoError(t, err)
	results := verify(parser, got, logger.New(&bytes.Buffer{}, logger.ERROR, true))
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.True(t, results[2].Passed)
}

func TestReadRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM subscriptions ORDER BY email`)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("ada@example.org").
			AddRow(nil).
			AddRow("ursula.com"))

	got, err := readRows(context.Background(), db, "subscriptions")
	require.NoError(t, err)
	assert.Equal(t, []candidate{
		{Source: "row 1", Input: "ada@example.org"},
		{Source: "row 2", Input: ""},
		{Source: "row 3", Input: "ursula.com"},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadRows_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT email FROM public.subscriptions ORDER BY email`)).
		WillReturnError(errors.New("relation does not exist"))

	_, err = readRows(context.Background(), db, "public.subscriptions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relation does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadRows_RejectsUnsafeTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = readRows(context.Background(), db, "subscriptions; DROP TABLE subscriptions")
	assert.Error(t, err)
}

func TestLoadFromDatabase_RequiresURL(t *testing.T) {
	_, err := loadFromDatabase(config.DatabaseConfig{Table: "subscriptions"}, 0)
	assert.Error(t, err)
}

func TestVerify(t *testing.T) {
	parser, err := newParser(config.ValidationConfig{RuleSet: "html5"})
	require.NoError(t, err)

	var logs bytes.Buffer
	log := logger.New(&logs, logger.INFO, true)

	results := verify(parser, []candidate{
		{Source: "line 1", Input: "ursula@example.com"},
		{Source: "line 2", Input: "ursula@"},
	}, log)

	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.Empty(t, results[0].Detail)
	assert.False(t, results[1].Passed)
	assert.Equal(t, "ursula@ is not a valid subscriber email.", results[1].Detail)

	// Only the rejection is logged at INFO, and the address is masked.
	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	require.Len(t, lines, 1)
	var entry map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "line 2", entry["source"])
	assert.Equal(t, "ur***@***", entry["email"])
}

func TestVerify_RuleSetChangesOutcome(t *testing.T) {
	log := logger.New(&bytes.Buffer{}, logger.ERROR, true)
	in := []candidate{{Source: "line 1", Input: "admin@localhost"}}

	html5, err := newParser(config.ValidationConfig{RuleSet: "html5"})
	require.NoError(t, err)
	simple, err := newParser(config.ValidationConfig{RuleSet: "simple"})
	require.NoError(t, err)

	assert.True(t, verify(html5, in, log)[0].Passed)
	assert.False(t, verify(simple, in, log)[0].Passed)
}

func TestNewParser_UnknownRuleSet(t *testing.T) {
	_, err := newParser(config.ValidationConfig{RuleSet: "rfc822"})
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger(config.LoggingConfig{Level: "loud"}, &bytes.Buffer{})
	assert.Error(t, err)

	l, err := newLogger(config.LoggingConfig{Level: "debug"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotNil(t, l)
}

func TestPrintReport(t *testing.T) {
	t.Run("all_pass", func(t *testing.T) {
		var out bytes.Buffer
		ok := printReport(&out, "html5", []checkResult{
			{Source: "line 1", Input: "ursula@example.com", Passed: true},
		})
		assert.True(t, ok)
		assert.Contains(t, out.String(), "Rule set:           html5")
		assert.Contains(t, out.String(), "OVERALL: PASS")
	})

	t.Run("some_fail", func(t *testing.T) {
		var out bytes.Buffer
		ok := printReport(&out, "html5", []checkResult{
			{Source: "line 1", Input: "ursula@example.com", Passed: true},
			{Source: "line 2", Input: "ursula.com", Detail: "ursula.com is not a valid subscriber email."},
		})
		assert.False(t, ok)
		assert.Contains(t, out.String(), "ursula.com is not a valid subscriber email.")
		assert.Contains(t, out.String(), "1 of 2 addresses rejected")
	})
}
