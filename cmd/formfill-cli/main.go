package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"go.uber.org/zap"

	formfill "github.com/goliatone/go-formfill"
	"github.com/goliatone/go-formfill/pkg/field"
	"github.com/goliatone/go-formfill/pkg/orchestrator"
	pkgpage "github.com/goliatone/go-formfill/pkg/page"
	"github.com/goliatone/go-formfill/pkg/triage"
	"github.com/goliatone/go-formfill/pkg/values"
)

func main() {
	source := flag.String("source", "", "page path or URL to sweep")
	profile := flag.String("profile", "", "profile values file (JSON or YAML)")
	maxFills := flag.Int("max-fills", 0, "cap committed fills per sweep (0 = no cap)")
	interactive := flag.Bool("interactive", false, "prompt for pending fields and user questions")
	useTriage := flag.Bool("triage", false, "classify fields via OpenAI (needs OPENAI_API_KEY)")
	verbose := flag.Bool("verbose", false, "log tier decisions and sweep internals")
	asJSON := flag.Bool("json", false, "print the sweep result as JSON")
	flag.Parse()

	if *source == "" {
		log.Fatal("a -source page is required")
	}

	ctx := context.Background()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			log.Fatalf("build logger: %v", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	store, err := loadStore(*profile)
	if err != nil {
		log.Fatalf("load profile: %v", err)
	}

	options := []formfill.Option{
		orchestrator.WithValues(store),
		orchestrator.WithAnswers(store),
		orchestrator.WithLogger(logger),
		orchestrator.WithMaxFills(*maxFills),
	}
	if *useTriage {
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required with -triage")
		}
		options = append(options, orchestrator.WithTriage(
			triage.NewOpenAI(apiKey, triage.WithLogger(logger))))
	}

	result, err := formfill.Sweep(ctx, parseSource(*source), options...)
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}

	if *interactive {
		answerPending(&result)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			log.Fatalf("encode result: %v", err)
		}
		return
	}
	printSummary(result)
}

func parseSource(raw string) pkgpage.Source {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return pkgpage.SourceFromURL(raw)
	}
	return pkgpage.SourceFromFile(raw)
}

func loadStore(path string) (*values.Store, error) {
	if path == "" {
		return values.New(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		return values.FromYAML(data)
	}
	return values.FromJSON(data)
}

// answerPending walks the human queues and collects answers with survey
// prompts. Answers are printed back; wiring them into a live page belongs to
// the caller holding the applier.
func answerPending(result *formfill.SweepResult) {
	items := make([]field.PendingItem, 0, len(result.UserQuestions)+len(result.Pending))
	items = append(items, result.UserQuestions...)
	items = append(items, result.Pending...)

	for _, item := range items {
		prompt := item.Prompt
		if prompt == "" {
			prompt = item.Label
		}
		if prompt == "" {
			prompt = item.FieldID
		}
		var answer string
		q := &survey.Input{Message: prompt}
		if err := survey.AskOne(q, &answer); err != nil {
			fmt.Fprintf(os.Stderr, "prompt aborted: %v\n", err)
			return
		}
		if answer != "" {
			fmt.Printf("  %s = %s\n", item.FieldID, answer)
		}
	}
}

func printSummary(result formfill.SweepResult) {
	fmt.Printf("filled %d, pending %d, questions %d, uploads %d, duplicates %d\n",
		len(result.Filled), len(result.Pending), len(result.UserQuestions),
		len(result.FileUploads), len(result.Duplicates))

	for _, f := range result.Filled {
		mark := ""
		if f.Suspicious {
			mark = "  [suspicious]"
		}
		fmt.Printf("  filled   %-20s %-16s %q (tier %s, %.2f)%s\n",
			f.FieldID, f.Key, f.Value, f.Tier, f.Confidence, mark)
	}
	for _, p := range result.Pending {
		fmt.Printf("  pending  %-20s %s (%s)\n", p.FieldID, p.Label, p.Reason)
	}
	for _, q := range result.UserQuestions {
		fmt.Printf("  question %-20s %s\n", q.FieldID, q.Prompt)
	}
	for _, u := range result.FileUploads {
		fmt.Printf("  upload   %-20s %s\n", u.FieldID, u.Label)
	}
}
