// Command relcore is the operator console for the buffered page
// access layer: it loads a config and catalog, builds an Engine, and
// runs selection/join commands either once (one-shot flags) or
// repeatedly from an interactive prompt.
package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tuannm99/relcore/internal/catalog"
	"github.com/tuannm99/relcore/internal/config"
	"github.com/tuannm99/relcore/internal/engine"
	"github.com/tuannm99/relcore/internal/obslog"
)

func main() {
	var (
		cfgPath  string
		catPath  string
		selSpec  string
		joinSpec string
	)
	flag.StringVar(&cfgPath, "config", "relcore.yaml", "path to engine config (page_size, buf_slots, file_limit)")
	flag.StringVar(&catPath, "catalog", "catalog.yaml", "path to catalog file (database_root + tables)")
	flag.StringVar(&selSpec, "sel", "", "one-shot selection: \"table idx val\"")
	flag.StringVar(&joinSpec, "join", "", "one-shot join: \"t1 idx1 t2 idx2\"")
	flag.Parse()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	cat, err := catalog.LoadFile(catPath)
	if err != nil {
		log.Fatalf("load catalog: %v", err)
	}

	e, err := engine.New(cfg, cat.DatabaseRoot, cat.Tables, obslog.NewSlog(nil))
	if err != nil {
		log.Fatalf("init engine: %v", err)
	}
	defer func() {
		if err := e.Close(); err != nil {
			log.Printf("close engine: %v", err)
		}
	}()

	switch {
	case selSpec != "":
		if err := runCommand(e, "sel "+selSpec); err != nil {
			log.Fatalf("sel: %v", err)
		}
	case joinSpec != "":
		if err := runCommand(e, "join "+joinSpec); err != nil {
			log.Fatalf("join: %v", err)
		}
	default:
		if err := repl(e); err != nil {
			log.Fatalf("repl: %v", err)
		}
	}
}

func repl(e *engine.Engine) error {
	rl, err := readline.New("relcore> ")
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer func() { _ = rl.Close() }()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF on ^D, readline.ErrInterrupt on ^C
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := runCommand(e, line); err != nil {
			fmt.Println("error:", err)
		}
	}
}

// runCommand parses and executes one "sel table idx val" or "join t1
// idx1 t2 idx2" command, printing the resulting relation.
func runCommand(e *engine.Engine, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "sel":
		if len(fields) != 4 {
			return fmt.Errorf("usage: sel table idx val")
		}
		idx, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("idx: %w", err)
		}
		val, err := strconv.ParseInt(fields[3], 10, 32)
		if err != nil {
			return fmt.Errorf("val: %w", err)
		}
		rel, err := e.Select(idx, int32(val), fields[1])
		if err != nil {
			return err
		}
		printRelation(rel)
		return nil

	case "join":
		if len(fields) != 5 {
			return fmt.Errorf("usage: join t1 idx1 t2 idx2")
		}
		idx1, err := strconv.Atoi(fields[2])
		if err != nil {
			return fmt.Errorf("idx1: %w", err)
		}
		idx2, err := strconv.Atoi(fields[4])
		if err != nil {
			return fmt.Errorf("idx2: %w", err)
		}
		rel, err := e.Join(idx1, fields[1], idx2, fields[3])
		if err != nil {
			return err
		}
		printRelation(rel)
		return nil

	default:
		return fmt.Errorf("unknown command %q (expected sel or join)", fields[0])
	}
}

func printRelation(rel *engine.Relation) {
	for _, tup := range rel.Tuples {
		strs := make([]string, len(tup))
		for i, v := range tup {
			strs[i] = strconv.FormatInt(int64(v), 10)
		}
		fmt.Println(strings.Join(strs, " "))
	}
}
