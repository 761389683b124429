package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wolfiwolf/sfs/blockdevice"
	"github.com/wolfiwolf/sfs/internal/config"
	"github.com/wolfiwolf/sfs/sfs"
)

func newInitCmd() *cobra.Command {
	var size uint64
	var hasher string
	var logLevel string

	cmd := &cobra.Command{
		Use:   "init <image> <config>",
		Short: "Format a new SFS volume image and write its config file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			imagePath, configPath := args[0], args[1]

			layout := sfs.NewLayout(size)

			dev, err := blockdevice.NewFileDevice(imagePath, layout.DevicePageCount())
			if err != nil {
				return fmt.Errorf("creating image: %w", err)
			}
			defer dev.Close()

			if _, err := sfs.Open(dev, sfs.Options{StorageSize: size}); err != nil {
				return fmt.Errorf("formatting volume: %w", err)
			}

			cfg := config.VolumeConfig{
				ImagePath:   imagePath,
				StorageSize: size,
				Hasher:      hasher,
				LogLevel:    logLevel,
			}

			if err := config.Save(configPath, cfg); err != nil {
				return err
			}

			fmt.Printf("formatted %s (%d bytes, %d data pages)\n", imagePath, size, layout.MaxDataPages)

			return nil
		},
	}

	cmd.Flags().Uint64Var(&size, "size", 1<<20, "volume capacity in bytes")
	cmd.Flags().StringVar(&hasher, "hasher", "legacy", "name hashing strategy: legacy or fnv1a")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "logging verbosity")

	return cmd
}
