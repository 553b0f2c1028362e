package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vktec/multifinder"
	"github.com/vktec/multifinder/seeds"
)

// CompleteMarker is created in the output directory once every worker has
// finished.
const CompleteMarker = "COMPLETE"

// OutputName is the file a worker writes its hits to.
func OutputName(worker int) string {
	return fmt.Sprintf("seeds-%02d.txt", worker)
}

// Shard is the set of candidate indices a worker owns: Start, Start+Stride, ...
type Shard struct {
	Worker int
	Start  int
	Stride int
}

// Each calls fn with every owned index until the candidates run out or reach
// end.
func (s Shard) Each(candidates []int64, end int64, fn func(i int)) {
	for i := s.Start; i < len(candidates) && candidates[i] < end; i += s.Stride {
		fn(i)
	}
}

type Searcher struct {
	opts   *multifinder.Options
	newGen multifinder.GeneratorFactory
	log    *slog.Logger
	stdout io.Writer
}

// NewSearcher returns a Searcher for validated options. opts must not be
// modified while a search runs.
func NewSearcher(opts *multifinder.Options, newGen multifinder.GeneratorFactory, log *slog.Logger) *Searcher {
	if log == nil {
		log = slog.Default()
	}
	return &Searcher{opts, newGen, log, os.Stdout}
}

// SetStdout redirects the output of a single worker run without an output
// directory.
func (s *Searcher) SetStdout(w io.Writer) {
	s.stdout = w
}

// Search runs one worker per thread over the candidates, which must be
// sorted, and returns the per base seed reports, most hits first.
func (s *Searcher) Search(candidates []int64) ([]multifinder.Report, error) {
	start := seeds.StartIndex(candidates, int64(s.opts.StartSeed))

	reportCh := make(chan multifinder.Report, 8)
	wgroup := new(sync.WaitGroup)
	wgroup.Add(s.opts.Threads)
	for t := 0; t < s.opts.Threads; t++ {
		shard := Shard{Worker: t, Start: start + t, Stride: s.opts.Threads}
		go s.work(shard, candidates, reportCh, wgroup)
	}
	go func() {
		wgroup.Wait()
		close(reportCh)
	}()

	var reports []multifinder.Report
	for r := range reportCh {
		reports = append(reports, r)
		for j := len(reports) - 1; j > 0; j-- {
			if reports[j].OrderBefore(reports[j-1]) {
				reports[j-1], reports[j] = reports[j], reports[j-1]
			} else {
				break
			}
		}
	}

	if s.opts.OutputDir != "" {
		path := filepath.Join(s.opts.OutputDir, CompleteMarker)
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return reports, fmt.Errorf("write completion marker: %w", err)
		}
	}
	return reports, nil
}

func (s *Searcher) work(shard Shard, candidates []int64, reportCh chan<- multifinder.Report, wgroup *sync.WaitGroup) {
	defer wgroup.Done()
	log := s.log.With("worker", shard.Worker)

	dst, name, err := s.openOutput(shard.Worker)
	if err != nil {
		log.Error("could not open output", "err", err)
		return
	}
	defer func() {
		if name == "" {
			return
		}
		if err := dst.Close(); err != nil {
			log.Error("could not close output", "file", name, "err", err)
			return
		}
		log.Info("output written", "file", name)
	}()

	gen, err := s.newGen()
	if err != nil {
		log.Error("could not create generator", "err", err)
		return
	}
	defer gen.Close()

	out := bufio.NewWriter(dst)
	w := newWorker(shard.Worker, s.opts, gen, out)
	shard.Each(candidates, int64(s.opts.EndSeed), func(i int) {
		base := candidates[i]
		hits := w.searchBase(base)
		if err := out.Flush(); err != nil {
			log.Error("could not write hits", "base", base, "err", err)
		}
		log.Info("base seed searched", "base", base, "hits", hits)
		reportCh <- multifinder.Report{Base: base, Worker: shard.Worker, Hits: hits}
	})
}

// openOutput returns the worker's output and its file name, which is empty
// when writing to stdout.
func (s *Searcher) openOutput(worker int) (io.WriteCloser, string, error) {
	if s.opts.OutputDir == "" {
		return nopCloser{s.stdout}, "", nil
	}
	name := filepath.Join(s.opts.OutputDir, OutputName(worker))
	f, err := os.Create(name)
	if err != nil {
		return nil, "", err
	}
	return f, name, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
