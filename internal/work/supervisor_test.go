package work

import (
	"testing"

	"github.com/maemo32/polycubes/internal/enum"
	"github.com/maemo32/polycubes/internal/polycube"
)

func positionsOf(jobs []*polycube.Polycube) [][]polycube.Pos {
	out := make([][]polycube.Pos, len(jobs))
	for i, job := range jobs {
		out[i] = job.Positions()
	}
	return out
}

func TestSupervisorFreshRunMatchesKnownCounts(t *testing.T) {
	s := NewSupervisor(Config{N: 6, SpawnN: 3, Threads: 2})
	report, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !s.Done() {
		t.Fatalf("Done() = false after Run returned")
	}
	if len(report.Frontier) != 0 {
		t.Fatalf("Frontier = %v, want empty", report.Frontier)
	}
	want := enum.Counts{1: 1, 2: 1, 3: 2, 4: 8, 5: 29, 6: 166}
	if report.Counts != want {
		t.Fatalf("Counts = %+v, want %+v", report.Counts, want)
	}
}

func TestSupervisorSingleThreadedMatchesDelegatedRun(t *testing.T) {
	single := NewSupervisor(Config{N: 6, Threads: 0})
	singleReport, err := single.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(singleReport.Frontier) != 0 {
		t.Fatalf("Frontier = %v, want empty", singleReport.Frontier)
	}

	delegated := NewSupervisor(Config{N: 6, SpawnN: 4, Threads: 2})
	delegatedReport, err := delegated.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if singleReport.Counts != delegatedReport.Counts {
		t.Fatalf("single-threaded counts %+v != delegated counts %+v", singleReport.Counts, delegatedReport.Counts)
	}
}

// TestSupervisorHaltBeforeWorkersStartLeavesFullFrontier halts the run
// before Run is even called. The delegator's halt check only samples
// every thousand recursive calls, so a run this small finishes
// delegating regardless — but every worker checks for a halt before
// touching its job, so the whole spawn_n frontier comes back intact
// and none of it is double-reported in Counts.
func TestSupervisorHaltBeforeWorkersStartLeavesFullFrontier(t *testing.T) {
	s := NewSupervisor(Config{N: 8, SpawnN: 6, Threads: 2})
	s.RequestHalt()

	report, err := s.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := enum.Counts{1: 1, 2: 1, 3: 2, 4: 8, 5: 29, 6: 166}
	if report.Counts != want {
		t.Fatalf("Counts = %+v, want %+v", report.Counts, want)
	}
	if len(report.Frontier) != 166 {
		t.Fatalf("len(Frontier) = %d, want 166", len(report.Frontier))
	}
}

// TestSupervisorResumeCompletesInterruptedRun feeds the frontier from
// a halted run back in as a ResumeState and checks the combined
// result matches an uninterrupted run to the same target size.
func TestSupervisorResumeCompletesInterruptedRun(t *testing.T) {
	halted := NewSupervisor(Config{N: 8, SpawnN: 6, Threads: 2})
	halted.RequestHalt()
	partial, err := halted.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	resumed := NewSupervisor(Config{
		N:       8,
		SpawnN:  6,
		Threads: 2,
		Resume: &ResumeState{
			Counts:   partial.Counts,
			Frontier: positionsOf(partial.Frontier),
		},
	})
	final, err := resumed.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(final.Frontier) != 0 {
		t.Fatalf("Frontier = %v, want empty", final.Frontier)
	}
	want := enum.Counts{1: 1, 2: 1, 3: 2, 4: 8, 5: 29, 6: 166, 7: 1023, 8: 6922}
	if final.Counts != want {
		t.Fatalf("Counts = %+v, want %+v", final.Counts, want)
	}
}
