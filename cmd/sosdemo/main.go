// Command sosdemo drives the perturbation engine from the command line:
// generating sample points, cross-checking the fast path against the
// brute-force harness, and rendering a sign-distribution chart.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"sos-engine/perturb"
	"sos-engine/prng"
	"sos-engine/selftest"
)

func usage() {
	fmt.Println(`usage: sosdemo <gen|selftest|chart> [options]

Subcommands:
  gen        Print the level-1 perturbation vector for a point id.
             Flags:
               -m     <int>    point dimension (default: 2)
               -id    <int>    point id (default: 1)
               -bound <uint>   log_bound B (default: engine default)

  selftest   Cross-check the fast path against the brute-force harness
             for one (m, degree, id) triple.
             Flags:
               -m      <int>   perturbation levels / determinant size (default: 2)
               -degree <int>   predicate degree (default: 2)
               -id     <int>   point id (default: 1)
               -v              verbose escalation tracing

  chart      Sweep ids 1..n through the self-test harness and render a
             bar chart of resolved-sign counts to an HTML file.
             Flags:
               -m      <int>      determinant size (default: 2)
               -degree <int>      predicate degree (default: 2)
               -n      <int>      number of ids to sweep (default: 200)
               -out    <string>   output HTML path (default: sosdemo_chart.html)`)
	os.Exit(1)
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	switch os.Args[1] {
	case "gen":
		runGen(os.Args[2:])
	case "selftest":
		runSelftest(os.Args[2:])
	case "chart":
		runChart(os.Args[2:])
	default:
		usage()
	}
}

func runGen(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	m := fs.Int("m", 2, "point dimension")
	id := fs.Int64("id", 1, "point id")
	bound := fs.Uint("bound", 0, "log_bound B (0 means engine default)")
	fs.Parse(args)

	eng := &perturb.Engine{}
	b := eng.PerturbationBound()
	if *bound != 0 {
		b = *bound
	}
	y := prng.Perturbation(1, *id, *m, b)
	fmt.Printf("id=%d m=%d bound=%d level=1 perturbation=%v\n", *id, *m, b, y)
}

func runSelftest(args []string) {
	fs := flag.NewFlagSet("selftest", flag.ExitOnError)
	m := fs.Int("m", 2, "determinant size / perturbation levels")
	degree := fs.Int("degree", 2, "predicate degree")
	id := fs.Int64("id", 1, "point id")
	verbose := fs.Bool("v", false, "verbose escalation tracing")
	fs.Parse(args)

	eng := &perturb.Engine{Verbose: *verbose}
	r := selftest.Run(eng, *m, *degree, *id)
	fmt.Printf("m=%d degree=%d id=%d fast=%v brute=%v match=%v\n", r.M, r.Degree, r.ID, r.FastSign, r.BruteSign, r.Match())
	if !r.Match() {
		os.Exit(1)
	}
}

func runChart(args []string) {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	m := fs.Int("m", 2, "determinant size / perturbation levels")
	degree := fs.Int("degree", 2, "predicate degree")
	n := fs.Int("n", 200, "number of ids to sweep")
	out := fs.String("out", "sosdemo_chart.html", "output HTML path")
	fs.Parse(args)

	eng := &perturb.Engine{}
	positive, negative, mismatches := 0, 0, 0
	for id := int64(1); id <= int64(*n); id++ {
		r := selftest.Run(eng, *m, *degree, id)
		if !r.Match() {
			mismatches++
			continue
		}
		if r.FastSign {
			positive++
		} else {
			negative++
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Resolved sign distribution",
			Subtitle: fmt.Sprintf("m=%d degree=%d n=%d mismatches=%d", *m, *degree, *n, mismatches),
		}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "sosdemo", Width: "900px", Height: "500px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis([]string{"positive", "negative"}).
		AddSeries("count", []opts.BarData{{Value: positive}, {Value: negative}}).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sosdemo: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	if err := bar.Render(f); err != nil {
		fmt.Fprintf(os.Stderr, "sosdemo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s (positive=%d negative=%d mismatches=%d)\n", *out, positive, negative, mismatches)
}
