package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jsalvino/emu1802/pkg/batchrun"
	"github.com/jsalvino/emu1802/pkg/config"
	"github.com/jsalvino/emu1802/pkg/cpu"
	"github.com/jsalvino/emu1802/pkg/inst"
	"github.com/jsalvino/emu1802/pkg/ioport"
	"github.com/jsalvino/emu1802/pkg/machine"
	"github.com/jsalvino/emu1802/pkg/tracer"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emu1802",
		Short: "CDP1802 emulator — fetch/decode/execute over a flat 64K image",
	}

	var configPath string
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Optional TOML config with debug/delay/workers defaults")

	rootCmd.AddCommand(newRunCmd(&configPath), newBatchCmd(&configPath), newDisasmCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadDefaults(path string) config.File {
	if path == "" {
		return config.File{}
	}
	f, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: ignoring --config %s: %v\n", path, err)
		return config.File{}
	}
	return f
}

func newRunCmd(configPath *string) *cobra.Command {
	var debug bool
	var delay int
	var jsonTrace bool
	var snapshotOut string
	var snapshotIn string
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "run <image>",
		Short: "Load a memory image and execute it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			defaults := loadDefaults(*configPath)
			if !c.Flags().Changed("debug") {
				debug = defaults.Debug
			}
			if !c.Flags().Changed("delay") {
				delay = defaults.Delay
			}

			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			s := machine.New(image)
			if snapshotIn != "" {
				restored, err := machine.Restore(snapshotIn)
				if err != nil {
					return err
				}
				s = restored
			}

			port := ioport.NewConsole()
			sink := buildSink(debug, jsonTrace)

			if maxSteps <= 0 {
				maxSteps = 10_000_000
			}
			steps := 0
			for steps < maxSteps {
				halted, err := cpu.Step(s, port, sink)
				if err != nil {
					return fmt.Errorf("step %d: %w", steps, err)
				}
				steps++
				if halted {
					break
				}
				if delay > 0 {
					time.Sleep(time.Duration(delay) * time.Millisecond)
				}
			}

			if snapshotOut != "" {
				if err := machine.Snapshot(snapshotOut, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "Trace every executed instruction to stdout")
	cmd.Flags().IntVar(&delay, "delay", 0, "Inter-instruction delay in milliseconds (0 = full speed)")
	cmd.Flags().BoolVar(&jsonTrace, "json-trace", false, "Emit trace lines as JSON instead of text")
	cmd.Flags().StringVar(&snapshotOut, "snapshot-out", "", "Write machine state to this file after the run")
	cmd.Flags().StringVar(&snapshotIn, "snapshot-in", "", "Restore machine state from this file before the run")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "Abort after this many steps (0 = 10,000,000)")
	return cmd
}

func buildSink(debug, jsonTrace bool) tracer.Sink {
	if !debug {
		return tracer.Discard
	}
	if jsonTrace {
		return &tracer.JSONSink{Writer: os.Stdout}
	}
	return &tracer.LineSink{
		Writer: os.Stdout,
		Mnemonic: func(op uint8) string {
			info, _ := inst.Lookup(op)
			return info.Mnemonic
		},
	}
}

func newBatchCmd(configPath *string) *cobra.Command {
	var numWorkers int
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Run every memory image in a directory concurrently and report outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			defaults := loadDefaults(*configPath)
			if !c.Flags().Changed("workers") {
				numWorkers = defaults.Workers
			}

			entries, err := os.ReadDir(args[0])
			if err != nil {
				return err
			}

			var images []batchrun.Image
			for _, e := range entries {
				if e.IsDir() {
					continue
				}
				data, err := os.ReadFile(filepath.Join(args[0], e.Name()))
				if err != nil {
					return err
				}
				images = append(images, batchrun.Image{Name: e.Name(), Data: data, MaxSteps: maxSteps})
			}

			runner := batchrun.NewRunner(numWorkers)
			outcomes := runner.Run(images, 10*time.Second)

			halted, failed := 0, 0
			for _, o := range outcomes {
				status := "ran to budget"
				if o.Halted {
					status = "halted"
					halted++
				}
				if o.Err != nil {
					status = fmt.Sprintf("error: %v", o.Err)
					failed++
				}
				fmt.Printf("%-30s %8d steps  %s\n", o.Name, o.Steps, status)
			}
			fmt.Printf("\n%d images, %d halted, %d failed\n", len(outcomes), halted, failed)
			return nil
		},
	}
	cmd.Flags().IntVar(&numWorkers, "workers", 0, "Number of concurrent workers (0 = NumCPU)")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 1_000_000, "Per-image step budget")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Dump mnemonics for a memory image without executing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			if limit <= 0 || limit > len(image) {
				limit = len(image)
			}
			addr := 0
			for addr < limit {
				info, ok := inst.Lookup(image[addr])
				if !ok {
					fmt.Printf("%04X: %02X ???\n", addr, image[addr])
					addr++
					continue
				}
				operands := ""
				for i := 0; i < info.Operands && addr+1+i < len(image); i++ {
					operands += fmt.Sprintf(" %02X", image[addr+1+i])
				}
				fmt.Printf("%04X: %02X %-6s%s\n", addr, image[addr], info.Mnemonic, operands)
				addr += 1 + info.Operands
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "Stop after this many bytes (0 = whole image)")
	return cmd
}
