package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/billshare/bill-engine/internal/billtext"
	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/internal/qrgen"
	"github.com/billshare/bill-engine/internal/renderer"
	"github.com/billshare/bill-engine/internal/sharelink"
	"github.com/billshare/bill-engine/pkg/billformat"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)

func main() {
	var (
		inPath    string
		outDir    string
		origin    string
		payeeID   string
		payeeName string
	)

	flag.StringVar(&inPath, "in", "", "Path to a bill summary JSON file")
	flag.StringVar(&outDir, "out", ".", "Output directory for generated files")
	flag.StringVar(&origin, "origin", "http://localhost:8080", "Public origin for viewer links")
	flag.StringVar(&payeeID, "payee", "", "UPI payee ID for the payment QR")
	flag.StringVar(&payeeName, "payee-name", "", "UPI payee display name")
	flag.Parse()

	if flag.NArg() == 0 || inPath == "" {
		printUsage()
		os.Exit(1)
	}

	summary, err := billformat.ParseFile(inPath)
	if err != nil {
		fail("load bill: %v", err)
	}

	clk := clock.SystemClock{}

	switch flag.Arg(0) {
	case "render":
		rend := renderer.New(renderer.Options{
			PayeeID:   payeeID,
			PayeeName: payeeName,
		}, clk, zerolog.New(os.Stderr).With().Timestamp().Logger())

		rendered, err := rend.Render(summary)
		if err != nil {
			fail("render: %v", err)
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("Bill_%s.png", summary.BillNumber))
		if err := os.WriteFile(outPath, rendered.PNG, 0644); err != nil {
			fail("write image: %v", err)
		}
		success("Receipt written to %s (%dx%d)", pathStyle.Render(outPath), rendered.Width, rendered.Height)

	case "text":
		fmt.Println(billtext.New(clk).Text(summary))

	case "link":
		reduced := sharelink.FromSummary(summary, clk)
		fmt.Println(sharelink.ViewerURL(origin, reduced))

	case "qr":
		reduced := sharelink.FromSummary(summary, clk)
		link := sharelink.ViewerURL(origin, reduced)

		data, err := qrgen.DisplayPNG(link, 512)
		if err != nil {
			fail("generate QR: %v", err)
		}

		outPath := filepath.Join(outDir, fmt.Sprintf("Bill_%s_QR.png", summary.BillNumber))
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			fail("write QR: %v", err)
		}
		success("QR code written to %s (%s)", pathStyle.Render(outPath), link)

	default:
		printUsage()
		os.Exit(1)
	}
}

func success(format string, args ...interface{}) {
	fmt.Println(successStyle.Render("✓") + " " + fmt.Sprintf(format, args...))
}

func fail(format string, args ...interface{}) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Bill Engine CLI

Usage:
  bill-cli [flags] <command>

Flags:
  -in <path>          Bill summary JSON file (required)
  -out <dir>          Output directory (default: current directory)
  -origin <url>       Public origin for viewer links
  -payee <id>         UPI payee ID for the payment QR
  -payee-name <name>  UPI payee display name

Commands:
  render    Render the receipt image to Bill_<number>.png
  text      Print the plain-text bill
  link      Print the shareable viewer link
  qr        Write the viewer-link QR to Bill_<number>_QR.png
`)
}
