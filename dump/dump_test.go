package dump

import (
	"testing"

	"github.com/npillmayer/lr0gen/lr"
	"github.com/npillmayer/lr0gen/lr/driver"
	"github.com/npillmayer/lr0gen/parse"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestDumpDoesNotPanic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr0gen.dump")
	defer teardown()

	g, errs := parse.ParseCustom([]byte("S : S a | a ;"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	Grammar(g)

	tbl := lr.Build(g)
	Table(tbl)
	Conflicts(tbl)

	_, steps, err := driver.MatchWithTrace(tbl, []byte("aa"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Trace(steps)
}

func TestConflictsReportsEachRecordedConflict(t *testing.T) {
	g, errs := parse.ParseCustom([]byte("S : a | a ;"))
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	tbl := lr.Build(g)
	if !tbl.HasConflicts() {
		t.Fatalf("expected conflicts")
	}
	Conflicts(tbl)
}
