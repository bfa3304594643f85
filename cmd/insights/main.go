package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"go-table-insights/internal/analysis"
	"go-table-insights/internal/dataset"
	"go-table-insights/internal/query"
)

func main() {
	var (
		file       = flag.String("file", "", "path or URL of the tabular source (csv, xlsx, json)")
		srcType    = flag.String("type", "", "source type override (csv, xlsx, json); guessed from the extension when empty")
		q          = flag.String("query", "", "free-form filter query, e.g. 'sales > 15000 and status contains active'")
		xAxis      = flag.String("x", "", "column to group by")
		yAxis      = flag.String("y", "", "column to aggregate")
		serviceURL = flag.String("service", os.Getenv("INSIGHTS_ANALYSIS_URL"), "analysis service base URL (pattern matching only when empty)")
		provider   = flag.String("provider", "deepseek", "analysis provider name")
		modelName  = flag.String("model", "", "analysis model name")
		timeout    = flag.Duration("timeout", 2*time.Minute, "overall run timeout")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("missing -file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	ds, err := dataset.Load(ctx, *file, dataset.Source{Type: *srcType, URL: *file})
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	fmt.Printf("📊 Loaded %q: %d columns, %d rows\n", ds.Name, len(ds.Columns), len(ds.Rows))

	rows := ds.Records()

	if *q != "" {
		var analyzer query.Analyzer
		if *serviceURL != "" {
			analyzer = analysis.NewClient(*serviceURL, 30*time.Second)
		}
		interpreter := query.NewInterpreter(analyzer, *provider, *modelName)

		result := interpreter.Interpret(ctx, *q, ds.Columns, ds.Sample(2))
		fmt.Printf("🔍 %s\n", result.Interpretation)
		if !result.Success {
			fmt.Printf("⚠️  %s\n", result.Error)
		}
		for _, f := range result.Filters {
			fmt.Printf("   • %s %s %q\n", f.Column, f.Operator, f.Value)
		}

		rows = query.Apply(rows, result.Filters)
		fmt.Printf("✅ %d of %d rows match\n", len(rows), len(ds.Rows))
	}

	if *xAxis != "" && *yAxis != "" {
		groups := query.Aggregate(rows, *xAxis, *yAxis)
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "%s\tvalue\tcount\taverage\n", *xAxis)
		for _, g := range groups {
			fmt.Fprintf(w, "%s\t%g\t%d\t%g\n", g.GroupKey, g.Value, g.Count, g.Average)
		}
		w.Flush()
	}
}
