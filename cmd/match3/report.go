package main

import (
	"io"
	"runtime"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/match3/autoplay"
	"github.com/plus3/match3/processor"
	"github.com/plus3/match3/scheduler"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Width    int
	Height   int
	GemTypes int
	GCPause  bool

	// Results
	TotalTime     time.Duration
	TickTime      Stats
	Scheduler     *scheduler.Stats
	Processor     processor.Stats
	Player        autoplay.Stats
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats

	printer *message.Printer
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

const reportTemplate = `
# Match-3 Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Board:** {{.Width}}x{{.Height}}, {{.GemTypes}} gem types

## Performance Results
- **Total Ticks:** {{num .Scheduler.Ticks}}
- **Total Test Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}
{{range .Scheduler.Systems}}
- **{{.Name}}:** {{num .ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}

## Game Activity
- **Commands:** {{num .Processor.Commands}}
- **Swaps:** {{num .Processor.Swaps}} ({{num .Processor.FailedSwaps}} failed)
- **Pops:** {{num .Processor.Pops}} ({{num .Processor.Popped}} gems)
- **Shuffles:** {{num .Processor.Shuffles}}
- **Events Consumed:** {{num .Player.Events}}

## Memory Usage
- Heap Alloc:     {{num .MemStatsStart.HeapAlloc}} (start) -> {{num .MemStatsEnd.HeapAlloc}} (end) -> delta: {{num (bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc)}}
- Total Alloc:    {{num .MemStatsStart.TotalAlloc}} (start) -> {{num .MemStatsEnd.TotalAlloc}} (end) -> delta: {{num (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPause}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	p := r.printer
	if p == nil {
		p = newPrinter()
	}

	fm := template.FuncMap{
		"num": func(v any) string {
			return p.Sprintf("%d", v)
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
