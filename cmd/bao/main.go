// Command bao is the collaborator shell around package bao: argument
// parsing, file/stdio wiring, and hex encoding of the root hash. None of
// this is part of the verified tree codec itself (see pkg/bao), which
// never imports "os".
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/baoformat/bao/pkg/bao"
	"github.com/baoformat/bao/pkg/baoio"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "bao:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "bao",
	Short:         "Bao: a verified streaming format layered on the BLAKE3 tree hash",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var outboardPath string

func init() {
	rootCmd.AddCommand(hashCmd, encodeCmd, decodeCmd, sliceCmd, decodeSliceCmd)
	encodeCmd.Flags().StringVar(&outboardPath, "outboard", "", "write an outboard encoding to this file instead of a combined one")
	decodeCmd.Flags().StringVar(&outboardPath, "outboard", "", "read chunk bytes from <input> and the parent tree from this file")
	sliceCmd.Flags().StringVar(&outboardPath, "outboard", "", "read the parent tree from this file instead of <input>")
}

var hashCmd = &cobra.Command{
	Use:   "hash [<inputs>...]",
	Short: "Print the BLAKE3/Bao root hash of one or more inputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			h, err := hashPath("")
			if err != nil {
				return err
			}
			fmt.Println(hex.EncodeToString(h[:]))
			return nil
		}
		for _, name := range args {
			h, err := hashPath(name)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if len(args) > 1 {
				fmt.Printf("%s  %s\n", hex.EncodeToString(h[:]), name)
			} else {
				fmt.Println(hex.EncodeToString(h[:]))
			}
		}
		return nil
	},
}

func hashPath(path string) (bao.Hash, error) {
	f, err := baoio.OpenInput(path)
	if err != nil {
		return bao.Hash{}, err
	}
	if f != os.Stdin {
		defer f.Close()
	}
	return bao.HashReader(f)
}

var encodeCmd = &cobra.Command{
	Use:   "encode <input> (<output> | --outboard=<file>)",
	Short: "Encode an input into a combined or outboard Bao tree",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := baoio.OpenInput(args[0])
		if err != nil {
			return err
		}
		if in != os.Stdin {
			defer in.Close()
		}
		content, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		outboard := outboardPath != ""
		var encoded []byte
		var hash bao.Hash
		if outboard {
			encoded, hash = bao.EncodeOutboard(content)
		} else {
			encoded, hash = bao.Encode(content)
		}

		outPath := ""
		if outboard {
			outPath = outboardPath
		} else if len(args) == 2 {
			outPath = args[1]
		}
		if err := writeFileAtomic(outPath, encoded); err != nil {
			return err
		}
		logrus.WithField("hash", hex.EncodeToString(hash[:])).Debug("Encoded Bao tree")
		return nil
	},
}

// writeFileAtomic writes b to path by writing to a sibling temporary file
// first and renaming it into place, so a failed or interrupted encode
// never leaves a truncated file at the destination. An empty or "-" path
// writes directly to standard output, where atomicity is moot.
func writeFileAtomic(path string, b []byte) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(b)
		return err
	}
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

var decodeCmd = &cobra.Command{
	Use:   "decode <hash> [<input>] [<output>]",
	Short: "Stream-verify a Bao encoding against a root hash",
	Args:  cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := parseHash(args[0])
		if err != nil {
			return err
		}
		inPath, outPath := "", ""
		if len(args) > 1 {
			inPath = args[1]
		}
		if len(args) > 2 {
			outPath = args[2]
		}

		in, err := baoio.OpenInput(inPath)
		if err != nil {
			return err
		}
		if in != os.Stdin {
			defer in.Close()
		}
		out, err := baoio.OpenOutput(outPath)
		if err != nil {
			return err
		}
		if out != os.Stdout {
			defer out.Close()
		}
		sink := bao.NewWriterSink(out)

		if outboardPath != "" {
			tree, err := baoio.OpenInput(outboardPath)
			if err != nil {
				return err
			}
			defer tree.Close()
			return bao.DecodeOutboard(baoio.NewFileSource(tree), baoio.NewFileSource(in), sink, hash)
		}
		return bao.Decode(baoio.NewFileSource(in), sink, hash)
	},
}

var sliceCmd = &cobra.Command{
	Use:   "slice <start> <count> [<input>] [<output>]",
	Short: "Extract the minimum subtree covering a byte range",
	Args:  cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, count, err := parseRange(args[0], args[1])
		if err != nil {
			return err
		}
		inPath, outPath := "", ""
		if len(args) > 2 {
			inPath = args[2]
		}
		if len(args) > 3 {
			outPath = args[3]
		}

		in, err := baoio.OpenInput(inPath)
		if err != nil {
			return err
		}
		if in != os.Stdin {
			defer in.Close()
		}
		out, err := baoio.OpenOutput(outPath)
		if err != nil {
			return err
		}
		if out != os.Stdout {
			defer out.Close()
		}
		sink := bao.NewWriterSink(out)

		contentSource := baoio.NewFileSource(in)
		if in == os.Stdin {
			contentSource = bao.NewReaderSource(in)
		}
		treeSource := contentSource
		if outboardPath != "" {
			tree, err := baoio.OpenInput(outboardPath)
			if err != nil {
				return err
			}
			defer tree.Close()
			treeSource = baoio.NewFileSource(tree)
		}
		return bao.Slice(treeSource, contentSource, sink, start, count)
	},
}

var decodeSliceCmd = &cobra.Command{
	Use:   "decode-slice <hash> <start> <count> [<input>] [<output>]",
	Short: "Verify and extract a byte range from a slice stream",
	Args:  cobra.RangeArgs(3, 5),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := parseHash(args[0])
		if err != nil {
			return err
		}
		start, count, err := parseRange(args[1], args[2])
		if err != nil {
			return err
		}
		inPath, outPath := "", ""
		if len(args) > 3 {
			inPath = args[3]
		}
		if len(args) > 4 {
			outPath = args[4]
		}

		in, err := baoio.OpenInput(inPath)
		if err != nil {
			return err
		}
		if in != os.Stdin {
			defer in.Close()
		}
		out, err := baoio.OpenOutput(outPath)
		if err != nil {
			return err
		}
		if out != os.Stdout {
			defer out.Close()
		}

		return bao.DecodeSlice(bao.NewReaderSource(in), bao.NewWriterSink(out), hash, start, count)
	},
}

func parseHash(s string) (bao.Hash, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return bao.Hash{}, fmt.Errorf("invalid hash %q: %w", s, err)
	}
	if len(b) != bao.HashSize {
		return bao.Hash{}, fmt.Errorf("invalid hash %q: want %d bytes, got %d", s, bao.HashSize, len(b))
	}
	var h bao.Hash
	copy(h[:], b)
	return h, nil
}

func parseRange(startArg, countArg string) (int64, int64, error) {
	start, err := strconv.ParseInt(startArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid start %q: %w", startArg, err)
	}
	count, err := strconv.ParseInt(countArg, 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid count %q: %w", countArg, err)
	}
	return start, count, nil
}
