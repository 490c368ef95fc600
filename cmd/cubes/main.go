// Command cubes counts free polycubes (shapes built from face-connected
// unit cubes, identified up to rotation) by size, optionally spreading
// the search across multiple goroutines and resuming from a checkpoint
// written by an earlier, interrupted run.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/maemo32/polycubes/internal/checkpoint"
	"github.com/maemo32/polycubes/internal/errs"
	"github.com/maemo32/polycubes/internal/polycube"
	"github.com/maemo32/polycubes/internal/work"
)

type options struct {
	N              int    `short:"n" long:"n" description:"target maximum polycube size, 2..21 (required unless --resume-from-file is given)"`
	Threads        int    `short:"t" long:"threads" default:"0" description:"worker goroutines; 0 runs single-threaded, otherwise must be >= 2"`
	SpawnN         int    `short:"s" long:"spawn-n" default:"8" description:"shape size at which work hands off to worker goroutines; >= 4 and < n (ignored when --threads is 0)"`
	ResumeFromFile string `short:"r" long:"resume-from-file" description:"resume from a halt checkpoint written by an earlier run"`
}

func main() {
	log.SetFlags(log.Lmicroseconds)
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}

	cfg, err := buildConfig(opts)
	if err != nil {
		log.Print(err)
		return 1
	}

	sup := work.NewSupervisor(cfg)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		log.Print("halt requested, finishing in-flight jobs")
		sup.RequestHalt()
	}()

	report, err := sup.Run()
	if err != nil {
		if errors.Is(err, errs.ErrHaltedDelegator) {
			log.Print("halted before delegation completed; no checkpoint written")
			return 0
		}
		log.Print(err)
		return 1
	}

	if len(report.Frontier) > 0 {
		return writeCheckpoint(cfg, report)
	}

	for k, c := range report.Counts {
		if c == 0 {
			continue
		}
		fmt.Printf("%d: %d\n", k, c)
	}
	log.Printf("done in %s", report.Elapsed)
	return 0
}

func buildConfig(opts options) (work.Config, error) {
	if opts.ResumeFromFile != "" {
		ckpt, err := checkpoint.Read(opts.ResumeFromFile)
		if err != nil {
			return work.Config{}, err
		}
		if opts.Threads != 0 && opts.Threads < 2 {
			return work.Config{}, fmt.Errorf("--threads must be 0 or >= 2: %w", errs.ErrArgument)
		}
		return work.Config{
			N:       ckpt.N,
			SpawnN:  ckpt.SpawnN,
			Threads: opts.Threads,
			Resume: &work.ResumeState{
				Counts:       ckpt.Counts,
				Frontier:     ckpt.Frontier,
				PriorElapsed: time.Duration(ckpt.ElapsedSeconds * float64(time.Second)),
			},
		}, nil
	}

	if opts.N < 2 || opts.N > 21 {
		return work.Config{}, fmt.Errorf("--n must be between 2 and 21: %w", errs.ErrArgument)
	}
	if opts.Threads != 0 && opts.Threads < 2 {
		return work.Config{}, fmt.Errorf("--threads must be 0 or >= 2: %w", errs.ErrArgument)
	}
	// spawn-n only means anything once there's a delegator handing jobs
	// to workers; a single-threaded run walks straight from the seed
	// cube to --n and never looks at it.
	if opts.Threads != 0 {
		if opts.SpawnN < 4 {
			return work.Config{}, fmt.Errorf("--spawn-n must be >= 4: %w", errs.ErrArgument)
		}
		if opts.SpawnN >= opts.N {
			return work.Config{}, fmt.Errorf("--spawn-n must be less than --n: %w", errs.ErrArgument)
		}
	}

	return work.Config{N: opts.N, SpawnN: opts.SpawnN, Threads: opts.Threads}, nil
}

func writeCheckpoint(cfg work.Config, report work.Report) int {
	path := checkpoint.FileName(cfg.N, time.Now())
	frontier := make([][]polycube.Pos, len(report.Frontier))
	for i, job := range report.Frontier {
		frontier[i] = job.Positions()
	}

	ckpt := checkpoint.Checkpoint{
		N:              cfg.N,
		SpawnN:         cfg.SpawnN,
		ElapsedSeconds: report.Elapsed.Seconds(),
		Counts:         report.Counts,
		Frontier:       frontier,
	}
	if err := checkpoint.Write(path, ckpt); err != nil {
		log.Print(err)
		return 1
	}
	log.Printf("halted: wrote checkpoint %s", path)
	return 0
}
