package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sherlog/sherlog"
	"github.com/sherlog/sherlog/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLog(t *testing.T) {
	t.Parallel()

	a := generateLog(100, 1)
	assert.Equal(t, 100, strings.Count(a, "\n"))
	assert.Equal(t, a, generateLog(100, 1), "the same seed yields the same log")
	assert.NotEqual(t, a, generateLog(100, 2))
}

func TestPaging(t *testing.T) {
	t.Parallel()

	e := sherlog.New(generateLog(1000, 42))
	e.SetFilters([]filter.Rule{{Pattern: filter.MustCompile("ERROR|WARN", filter.CaseSensitive), Active: true}})

	want := e.FilteredCount()
	require.NotZero(t, want)
	assert.Equal(t, want, pageForward(e, 7))
	assert.Equal(t, want, pageBackward(e, 7))
}

func TestRun(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	opts := benchOptions{
		Lines:   2000,
		Filters: []string{"! DEBUG"},
		Search:  "timeout",
		Page:    50,
		Seed:    42,
		JSON:    true,
	}
	require.NoError(t, run(context.Background(), opts, &out))

	var results []result
	require.NoError(t, json.Unmarshal(out.Bytes(), &results))

	ops := make([]string, len(results))
	for i, r := range results {
		ops[i] = r.Operation
	}
	assert.Equal(t, []string{"load", "filter", "search", "next result", "page forward", "page backward"}, ops)
	assert.Equal(t, 2000, results[0].Count)
	assert.Equal(t, results[1].Count, results[4].Count, "paging visits every filtered line")
}

func TestRunInvalidFilter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(context.Background(), benchOptions{Lines: 10, Filters: []string{"("}, Page: 10}, &out)
	require.Error(t, err)
}
