// Command eberban compiles sentences of the eberban logic language into
// first-order formulas.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	eberban "github.com/Magnap/eberban-semantics"
)

const (
	appName     = "eberban"
	historyFile = ".eberban_history"
	promptMain  = "==> "
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "Compile eberban sentences into first-order formulas",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var corpusPath string

func init() {
	demoCmd.Flags().StringVar(&corpusPath, "corpus", "", "YAML corpus file (default: the embedded demo corpus)")
	rootCmd.AddCommand(translateCmd, demoCmd, replCmd, versionCmd)
}

// compile runs the whole pipeline and renders the result, λ-binding the
// free variables for display.
func compile(src string) (string, error) {
	words, err := eberban.Lex(src)
	if err != nil {
		return "", eberban.WrapErrorWithSource(err, src)
	}
	tree, err := eberban.Parse(words)
	if err != nil {
		return "", eberban.WrapErrorWithSource(err, src)
	}
	pred, free := eberban.ToExpr(tree)
	if len(free) > 0 {
		pred = &eberban.Lambda{Vars: free, Pred: pred}
	}
	return eberban.FormatPredicate(pred), nil
}

var translateCmd = &cobra.Command{
	Use:   "translate [sentence...]",
	Short: "Translate a sentence (arguments, or stdin when none are given)",
	RunE: func(cmd *cobra.Command, args []string) error {
		src := strings.Join(args, " ")
		if src == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			src = strings.TrimSpace(string(data))
		}
		out, err := compile(src)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			return errors.New("translation failed")
		}
		fmt.Println(out)
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Translate the demo corpus with per-sentence timings",
	RunE: func(cmd *cobra.Command, args []string) error {
		corpus, err := loadCorpus()
		if err != nil {
			return err
		}
		for _, s := range corpus.Sentences {
			fmt.Println(s.Text)
			start := time.Now()
			words, err := eberban.Lex(s.Text)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(eberban.WrapErrorWithSource(err, s.Text).Error()))
				continue
			}
			lexed := time.Since(start)
			tree, err := eberban.Parse(words)
			if err != nil {
				fmt.Printf("lexed in %d µs\n", lexed.Microseconds())
				continue
			}
			pred, free := eberban.ToExpr(tree)
			if len(free) > 0 {
				pred = &eberban.Lambda{Vars: free, Pred: pred}
			}
			parsed := time.Since(start) - lexed
			fmt.Println(blue(eberban.FormatPredicate(pred)))
			fmt.Printf("lexed in %d µs, parsed in %d µs\n", lexed.Microseconds(), parsed.Microseconds())
		}
		return nil
	},
}

func loadCorpus() (*eberban.Corpus, error) {
	if corpusPath != "" {
		return eberban.LoadCorpus(corpusPath)
	}
	return eberban.DemoCorpus()
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive translation loop",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("eberban %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.\n", eberban.Version)

		home, _ := os.UserHomeDir()
		histPath := filepath.Join(home, historyFile)

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sigc)
		go func() {
			<-sigc
			ln.Close()
			os.Exit(130)
		}()

		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}

		for {
			line, err := ln.Prompt(promptMain)
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return nil
			}
			if err != nil {
				continue
			}
			src := strings.TrimSpace(line)
			if src == "" {
				continue
			}
			if strings.HasPrefix(src, ":") {
				switch strings.ToLower(src) {
				case ":quit":
					return nil
				default:
					fmt.Println("unknown command. Type :quit to exit.")
				}
				continue
			}
			out, err := compile(src)
			if err != nil {
				fmt.Fprintln(os.Stderr, red(err.Error()))
				continue
			}
			fmt.Println(blue(out))
			ln.AppendHistory(src)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the compiled version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(eberban.Version)
	},
}
