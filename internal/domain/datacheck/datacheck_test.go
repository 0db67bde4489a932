package datacheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/tm-siteupdate/internal/domain/datacheck"
	"github.com/andrescamacho/tm-siteupdate/internal/domain/model"
)

func route(root string) *model.Route {
	return &model.Route{Root: root}
}

func TestList_NonFalsePositivesSortedAndExcludesFP(t *testing.T) {
	l := datacheck.NewList()
	l.AddCode(route("b"), "X", "", "", "HIDDEN_TERMINUS", "info-b")
	l.AddCode(route("a"), "X", "", "", "HIDDEN_TERMINUS", "info-a")
	l.AddCode(route("a"), "Y", "", "", "HIDDEN_JUNCTION", "count=3")

	fps := []datacheck.FPEntry{
		{Route: "a", Label1: "Y", Code: "HIDDEN_JUNCTION", Info: "count=3"},
	}
	res := l.Reconcile(fps)
	assert.Empty(t, res.Unmatched)
	assert.Empty(t, res.NearMatches)

	entries := l.NonFalsePositives()
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].RouteRoot())
	assert.Equal(t, "b", entries[1].RouteRoot())
}

func TestReconcile_NearMatchProducesChangeTo(t *testing.T) {
	l := datacheck.NewList()
	l.AddCode(route("a"), "X", "", "", "HIDDEN_JUNCTION", "actual-info")

	res := l.Reconcile([]datacheck.FPEntry{
		{Route: "a", Label1: "X", Code: "HIDDEN_JUNCTION", Info: "stale-info"},
	})
	require.Len(t, res.NearMatches, 1)
	assert.Contains(t, res.NearMatches[0], "actual-info")
	// Info differed, so the original entry stays a live (non-FP) diagnostic.
	require.Len(t, l.NonFalsePositives(), 1)
}

func TestReconcile_UnmatchedFP(t *testing.T) {
	l := datacheck.NewList()
	res := l.Reconcile([]datacheck.FPEntry{
		{Route: "ghost", Label1: "Z", Code: "HIDDEN_JUNCTION", Info: "whatever"},
	})
	require.Len(t, res.Unmatched, 1)
	assert.Equal(t, "ghost", res.Unmatched[0].Route)
}

func TestReconcile_AlwaysErrorCodeRejected(t *testing.T) {
	l := datacheck.NewList()
	l.AddCode(route("a"), "X", "", "", "DISCONNECTED_ROUTE", "info")

	res := l.Reconcile([]datacheck.FPEntry{
		{Route: "a", Label1: "X", Code: "DISCONNECTED_ROUTE", Info: "info"},
	})
	require.Len(t, res.Warnings, 1)
	assert.False(t, l.NonFalsePositives()[0].FalsePositive)
}

func TestStripIntentionalSuffix(t *testing.T) {
	assert.Equal(t, "abc", datacheck.StripIntentionalSuffix("abc [LOOKS INTENTIONAL]"))
	assert.Equal(t, "abc", datacheck.StripIntentionalSuffix("abc [SOME LOOK INTENTIONAL]"))
	assert.Equal(t, "abc", datacheck.StripIntentionalSuffix("abc"))
}
