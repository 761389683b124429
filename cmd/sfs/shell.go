package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wolfiwolf/sfs/blockdevice"
	"github.com/wolfiwolf/sfs/internal/config"
	"github.com/wolfiwolf/sfs/internal/logging"
	"github.com/wolfiwolf/sfs/search"
	"github.com/wolfiwolf/sfs/sfs"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell <config>",
		Short: "Open an interactive session against a formatted volume",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(args[0])
		},
	}
}

func runShell(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	hasher, err := resolveHasher(cfg.Hasher)
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}

	layout := sfs.NewLayout(cfg.StorageSize)

	dev, err := blockdevice.NewFileDevice(cfg.ImagePath, layout.DevicePageCount())
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer dev.Close()

	fs, err := sfs.Open(dev, sfs.Options{
		StorageSize: cfg.StorageSize,
		Hasher:      hasher,
		CacheSize:   cfg.CacheSize,
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("opening volume: %w", err)
	}

	cli := &shellCLI{fs: fs}

	for {
		cmd := prompt(fmt.Sprintf("sfs @ %s>", cfg.ImagePath))

		response, cont := cli.Handle(cmd)
		fmt.Println(response)

		if !cont {
			return nil
		}
	}
}

func prompt(label string) string {
	var out string

	r := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, label+" ")

		out, _ = r.ReadString('\n')
		if out != "" {
			break
		}
	}

	return strings.TrimSpace(out)
}

type shellCLI struct {
	fs *sfs.FileSystem
}

func (cli *shellCLI) Handle(cmd string) (string, bool) {
	parts := strings.Fields(cmd)
	if len(parts) == 0 {
		return cli.help(), true
	}

	switch parts[0] {
	case "create":
		if len(parts) != 2 {
			return cli.help(), true
		}
		if err := cli.fs.Create(parts[1]); err != nil {
			return fmt.Sprintf("error creating %s: %v", parts[1], err), true
		}
		return fmt.Sprintf("created %s", parts[1]), true

	case "write":
		if len(parts) != 3 {
			return cli.help(), true
		}
		data, err := decodeHex(parts[2])
		if err != nil {
			return err.Error(), true
		}
		if err := cli.fs.Write(parts[1], data); err != nil {
			return fmt.Sprintf("error writing %s: %v", parts[1], err), true
		}
		return fmt.Sprintf("wrote %d bytes to %s", len(data), parts[1]), true

	case "read":
		if len(parts) != 4 {
			return cli.help(), true
		}
		off, err := strconv.ParseUint(parts[2], 10, 64)
		if err != nil {
			return fmt.Sprintf("invalid offset %s: %v", parts[2], err), true
		}
		n, err := strconv.Atoi(parts[3])
		if err != nil {
			return fmt.Sprintf("invalid length %s: %v", parts[3], err), true
		}

		buf := make([]byte, n)
		read, err := cli.fs.Read(parts[1], buf, off)
		if err != nil {
			return fmt.Sprintf("%x (partial, %d bytes: %v)", buf[:read], read, err), true
		}
		return fmt.Sprintf("%x", buf[:read]), true

	case "delete":
		if len(parts) != 2 {
			return cli.help(), true
		}
		if err := cli.fs.Delete(parts[1]); err != nil {
			return fmt.Sprintf("error deleting %s: %v", parts[1], err), true
		}
		return fmt.Sprintf("deleted %s", parts[1]), true

	case "ls":
		return cli.list(), true

	case "find":
		if len(parts) != 2 {
			return cli.help(), true
		}
		owner, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return fmt.Sprintf("invalid owner %s: %v", parts[1], err), true
		}
		return cli.find(uint32(owner)), true

	case "defrag":
		if err := cli.fs.Defragment(); err != nil {
			return fmt.Sprintf("error defragmenting: %v", err), true
		}
		return "defragmented", true

	case "exit":
		return "bye", false

	default:
		return cli.help(), true
	}
}

func (cli *shellCLI) list() string {
	entries := cli.fs.Files()
	sortEntriesByOwner(entries)

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%d\t%d bytes\ttail page %d\n", e.Owner, e.Size, e.LastPage)
	}

	if b.Len() == 0 {
		return "(empty)"
	}

	return b.String()
}

// find looks up owner in a snapshot of the directory sorted by owner id,
// via search.Binary, rather than the fixed-capacity array's own linear
// find (which sfs keeps private and exposes only through name-addressed
// methods).
func (cli *shellCLI) find(owner uint32) string {
	entries := cli.fs.Files()
	sortEntriesByOwner(entries)

	owners := make([]uint32, len(entries))
	for i, e := range entries {
		owners[i] = e.Owner
	}

	idx, ok := search.Binary(owner, owners)
	if !ok {
		return fmt.Sprintf("no file with owner %d", owner)
	}

	e := entries[idx]
	return fmt.Sprintf("%d\t%d bytes\ttail page %d", e.Owner, e.Size, e.LastPage)
}

func (cli *shellCLI) help() string {
	return strings.Join([]string{
		"Valid commands:",
		"",
		"\tcreate <name>",
		"\twrite <name> <hex bytes>",
		"\tread <name> <offset> <length>",
		"\tdelete <name>",
		"\tls",
		"\tfind <owner>",
		"\tdefrag",
		"\texit",
	}, "\n")
}

func decodeHex(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex-encoded data: %w", err)
	}

	return data, nil
}
