package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"flatvm/vm"
)

func main() {
	var inputPath string
	var debug bool
	var memCeiling uint64

	rootCmd := &cobra.Command{
		Use:   "flatvm [flags]",
		Short: "run a flat-memory byte-code image",
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := loadImage(inputPath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			opts := []vm.Option{vm.WithMemCeiling(memCeiling)}
			if debug {
				opts = append(opts, vm.WithDebug())
			}
			m := vm.New(image, opts...)
			return m.Run()
		},
	}

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "image file (defaults to stdin)")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "single-step under the interactive debugger")
	rootCmd.Flags().Uint64Var(&memCeiling, "mem-ceiling", vm.MemCeilingFromEnv(), "alloc growth ceiling in bytes (0 disables); defaults to FLATVM_MAX_MEMORY")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadImage(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
