package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cuemby/skipstore/pkg/skipstore"
	"github.com/spf13/cobra"
)

var kvCmd = &cobra.Command{
	Use:   "kv",
	Short: "Drive a skipstore engine through a line-oriented command shell",
	Long: `kv builds one in-memory engine and reads commands from stdin (or a
--script file), one per line:

  put CF KEY VALUE     insert or overwrite KEY in CF
  get CF KEY           print the value at KEY, or "(not found)"
  delete CF KEY        remove KEY from CF
  scan CF [LOWER] [UPPER]   print every key/value in [LOWER, UPPER], bounds optional
  stats                 print total_bytes across every column family

The engine carries no persistence across process invocations: it exists
only to exercise the put/get/delete/scan/byte-accounting surface.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfNames, _ := cmd.Flags().GetStringSlice("cf")
		scriptPath, _ := cmd.Flags().GetString("script")

		builder := skipstore.NewBuilder()
		for _, name := range cfNames {
			builder.WithCF(name)
		}
		engine := builder.Build()

		var in io.Reader = os.Stdin
		if scriptPath != "" {
			f, err := os.Open(scriptPath)
			if err != nil {
				return fmt.Errorf("open script: %w", err)
			}
			defer f.Close()
			in = f
		}

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if err := runKVLine(engine, line); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "error: %v\n", err)
			}
		}
		return scanner.Err()
	},
}

func init() {
	kvCmd.Flags().StringSlice("cf", nil, "Column families to create up front (default is just \"default\")")
	kvCmd.Flags().String("script", "", "Read commands from this file instead of stdin")
}

func runKVLine(engine *skipstore.Engine, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch strings.ToLower(fields[0]) {
	case "put":
		if len(fields) != 4 {
			return fmt.Errorf("usage: put CF KEY VALUE")
		}
		return engine.Put(fields[1], []byte(fields[2]), []byte(fields[3]))

	case "get":
		if len(fields) != 3 {
			return fmt.Errorf("usage: get CF KEY")
		}
		v, ok, err := engine.Get(fields[1], []byte(fields[2]))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("(not found)")
			return nil
		}
		fmt.Println(string(v))
		return nil

	case "delete":
		if len(fields) != 3 {
			return fmt.Errorf("usage: delete CF KEY")
		}
		return engine.Delete(fields[1], []byte(fields[2]))

	case "scan":
		if len(fields) < 2 || len(fields) > 4 {
			return fmt.Errorf("usage: scan CF [LOWER] [UPPER]")
		}
		opts := skipstore.IterOptions{}
		if len(fields) >= 3 {
			opts.LowerBound = []byte(fields[2])
		}
		if len(fields) >= 4 {
			opts.UpperBound = []byte(fields[3])
		}
		it, err := engine.NewIterator(fields[1], opts)
		if err != nil {
			return err
		}
		count := 0
		for ok := it.SeekToFirst(); ok; ok = it.Next() {
			fmt.Printf("%s = %s\n", it.Key(), it.Value())
			count++
		}
		if count == 0 {
			fmt.Println("(empty)")
		}
		return nil

	case "stats":
		fmt.Printf("total_bytes = %d\n", engine.TotalBytes())
		return nil

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}
