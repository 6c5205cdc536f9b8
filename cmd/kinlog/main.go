package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/wbrown/kinlog/kinlog"
	"github.com/wbrown/kinlog/kinlog/chat"
	"github.com/wbrown/kinlog/kinlog/config"
	"github.com/wbrown/kinlog/kinlog/family"
	"github.com/wbrown/kinlog/kinlog/solver"
	"github.com/wbrown/kinlog/kinlog/store"
)

func main() {
	var dbPath string
	var seedPath string
	var ask string

	flag.StringVar(&dbPath, "db", "", "Badger database path (default: in-memory)")
	flag.StringVar(&seedPath, "seed", "", "YAML family file to load at startup")
	flag.StringVar(&ask, "ask", "", "answer a single question and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A family-relationship chatbot backed by a kinship inference engine.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # empty in-memory session\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -seed examples/family.yaml        # start from a sample family\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -db family.db                     # persist facts across sessions\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -ask 'Who are the siblings of peter?'\n", os.Args[0])
	}
	flag.Parse()

	var facts store.FactStore
	if dbPath != "" {
		bs, err := store.NewBadgerStore(dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		facts = bs
	} else {
		facts = store.NewMemoryStore()
	}
	defer facts.Close()

	if seedPath != "" {
		fam, err := config.Load(seedPath)
		if err != nil {
			log.Fatalf("Failed to load seed family: %v", err)
		}
		for _, f := range fam.Facts() {
			if err := facts.Assert(f); err != nil {
				log.Fatalf("Failed to seed %s: %v", f, err)
			}
		}
	}

	kb := family.New(facts)

	if ask != "" {
		fmt.Println(chat.Respond(kb, ask))
		return
	}

	runInteractive(kb)
}

func runInteractive(kb *family.KB) {
	banner := color.New(color.FgCyan, color.Bold)
	banner.Println("Welcome to the family relationship chatbot!")
	fmt.Println("Tell me facts or ask questions; .help lists commands.")
	fmt.Println()
	fmt.Println("  Penny is the mother of Alice")
	fmt.Println("  Is penny the mother of alice?")
	fmt.Println("  Who are the siblings of alice?")
	fmt.Println()

	prompt := color.New(color.FgGreen)
	reply := color.New(color.FgYellow)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		prompt.Print("you> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case line == ".exit" || line == "quit" || line == "bye":
			fmt.Println("Goodbye!")
			return

		case line == ".help":
			fmt.Println("Commands:")
			fmt.Println("  .help             - show this help")
			fmt.Println("  .facts            - list every stored fact")
			fmt.Println("  .solve REL ARGS   - raw query; ?name marks a variable")
			fmt.Println("                      e.g. .solve sibling ?x alice")
			fmt.Println("  .exit             - leave")
			fmt.Println("Anything else is a statement, or a question ending in '?'")

		case line == ".facts":
			printFacts(kb.Store())

		case strings.HasPrefix(line, ".solve"):
			runSolve(kb, strings.Fields(line)[1:])

		default:
			reply.Println(chat.Respond(kb, line))
		}
	}
}

// runSolve executes a raw engine query and renders the bindings
func runSolve(kb *family.KB, args []string) {
	if len(args) < 1 {
		fmt.Println("Usage: .solve RELATION ARG... (?name marks a variable)")
		return
	}
	terms := make([]kinlog.Term, len(args)-1)
	for i, a := range args[1:] {
		if strings.HasPrefix(a, "?") {
			terms[i] = kinlog.Var(a)
		} else {
			terms[i] = kinlog.Atom(a)
		}
	}

	q := solver.Q(args[0], terms...)
	sols, err := kb.Solver().Solve(q)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	answers := sols.All()

	var vars []kinlog.Symbol
	for _, t := range terms {
		if v, ok := t.(kinlog.Variable); ok {
			vars = append(vars, v.Name)
		}
	}
	if len(vars) == 0 {
		if len(answers) > 0 {
			fmt.Println("Yes.")
		} else {
			fmt.Println("No.")
		}
		return
	}

	headers := make([]string, len(vars))
	for i, v := range vars {
		headers[i] = string(v)
	}
	rows := make([][]string, 0, len(answers))
	for _, b := range answers {
		row := make([]string, len(vars))
		for i, v := range vars {
			row[i] = string(b[v])
		}
		rows = append(rows, row)
	}
	fmt.Println(renderTable(headers, rows))
	fmt.Printf("_%d answers_\n", len(rows))
}

func printFacts(fs store.FactStore) {
	facts, err := allFacts(fs)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if len(facts) == 0 {
		fmt.Println("No facts yet.")
		return
	}
	rows := make([][]string, len(facts))
	for i, f := range facts {
		args := make([]string, len(f.Args))
		for j, a := range f.Args {
			args[j] = string(a)
		}
		rows[i] = []string{f.Relation, strings.Join(args, ", ")}
	}
	fmt.Println(renderTable([]string{"relation", "arguments"}, rows))
	fmt.Printf("_%d facts_\n", len(facts))
}

func allFacts(fs store.FactStore) ([]kinlog.Fact, error) {
	switch s := fs.(type) {
	case *store.MemoryStore:
		return s.All(), nil
	case *store.BadgerStore:
		return s.All()
	}
	return nil, nil
}

// renderTable renders rows as a markdown table
func renderTable(headers []string, rows [][]string) string {
	out := &strings.Builder{}

	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(out,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()
	return out.String()
}
