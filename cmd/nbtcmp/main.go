package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"go.uber.org/zap"
	"golang.org/x/term"

	nbtcompare "github.com/wippyai/nbt-compare"
	"github.com/wippyai/nbt-compare/nbt"
)

// Exit codes: 0 documents equal, 1 documents differ, 2 usage or
// decode failure.
const (
	exitEqual   = 0
	exitDiffer  = 1
	exitFailure = 2
)

var (
	equalStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90")).Bold(true)
	differStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
)

func main() {
	var (
		exclude     = flag.String("exclude", "", "Top-level field to ignore (e.g. LastUpdate)")
		quiet       = flag.Bool("q", false, "No output, exit code only")
		verbose     = flag.Bool("v", false, "Enable debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI diff browser")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: nbtcmp [-exclude field] [-q] [-v] <left.nbt> <right.nbt>")
		fmt.Fprintln(os.Stderr, "       nbtcmp -i <left.nbt> <right.nbt>  (interactive mode)")
		os.Exit(exitFailure)
	}
	leftPath, rightPath := flag.Arg(0), flag.Arg(1)

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
		defer logger.Sync()
		nbt.SetLogger(logger)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	if *interactive {
		if !isTTY {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(exitFailure)
		}
		if err := runInteractive(leftPath, rightPath, *exclude); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitFailure)
		}
		return
	}

	equal, err := run(leftPath, rightPath, *exclude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitFailure)
	}

	if !*quiet {
		printVerdict(equal, isTTY)
	}
	if equal {
		os.Exit(exitEqual)
	}
	os.Exit(exitDiffer)
}

func run(leftPath, rightPath, exclude string) (bool, error) {
	left, err := readDocument(leftPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", leftPath, err)
	}
	right, err := readDocument(rightPath)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", rightPath, err)
	}

	return nbtcompare.CompareWithOptions(left, right, nbtcompare.CompareOptions{
		ExcludeField: exclude,
	})
}

func printVerdict(equal, styled bool) {
	switch {
	case equal && styled:
		fmt.Println(equalStyle.Render("documents are structurally equal"))
	case equal:
		fmt.Println("documents are structurally equal")
	case styled:
		fmt.Println(differStyle.Render("documents differ"))
	default:
		fmt.Println("documents differ")
	}
}

// readDocument loads an NBT file and transparently decompresses it.
// NBT files on disk are usually gzip-wrapped (level.dat) or
// zlib-wrapped (region chunk payloads); bare documents pass through.
func readDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decompress(data)
}

func decompress(data []byte) ([]byte, error) {
	switch {
	case len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b:
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return out, nil
	case len(data) >= 2 && data[0] == 0x78:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		defer zr.Close()
		out, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("zlib: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}
