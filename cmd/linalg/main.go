// Package main provides the Born linalg CLI.
//
// Usage:
//
//	linalg <command> -shape 2,2 -data 4,3,6,3 [-eps 1e-9] [-v]
//
// Commands: version, det, inv, lu, qr, svd, eig, chol.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/linalg/linalg"
	"github.com/born-ml/linalg/tensor"
)

const version = "v0.1.0-dev"

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}
	cmd := args[0]
	if cmd == "version" {
		fmt.Fprintf(stdout, "Born linalg %s\n", version)
		return nil
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	shapeFlag := fs.String("shape", "", "comma-separated tensor shape, e.g. 2,2")
	dataFlag := fs.String("data", "", "comma-separated row-major elements")
	eps := fs.Float64("eps", linalg.DefaultEpsilon, "pivot, symmetry and convergence tolerance")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args[1:]); err != nil {
		return errUsage
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	eng := tensor.NewEngine(tensor.WithLogger(logger))

	shape, err := parseInts(*shapeFlag)
	if err != nil {
		return fmt.Errorf("-shape: %w", err)
	}
	data, err := parseFloats(*dataFlag)
	if err != nil {
		return fmt.Errorf("-data: %w", err)
	}
	a, err := tensor.FromFlat(eng, data, tensor.Shape(shape))
	if err != nil {
		return err
	}
	logger.Debug("input", "tensor", a)

	switch cmd {
	case "det":
		det, err := linalg.Det(a, *eps)
		if err != nil {
			return err
		}
		printTensor(stdout, "det", det)
	case "inv":
		inv, err := linalg.Inv(a, *eps)
		if err != nil {
			return err
		}
		printTensor(stdout, "inv", inv)
	case "lu":
		lu, err := linalg.LU(a, *eps)
		if err != nil {
			return err
		}
		p, l, u, err := linalg.LUPivot(lu)
		if err != nil {
			return err
		}
		printTensor(stdout, "P", p)
		printTensor(stdout, "L", l)
		printTensor(stdout, "U", u)
	case "qr":
		qr, err := linalg.QR(a)
		if err != nil {
			return err
		}
		printTensor(stdout, "Q", qr.Q)
		printTensor(stdout, "R", qr.R)
	case "svd":
		svd, err := linalg.SVD(a, *eps)
		if err != nil {
			return err
		}
		printTensor(stdout, "U", svd.U)
		printTensor(stdout, "S", svd.S)
		printTensor(stdout, "V", svd.V)
	case "eig":
		eig, err := linalg.SymEig(a, *eps)
		if err != nil {
			return err
		}
		printTensor(stdout, "values", eig.Values)
		printTensor(stdout, "vectors", eig.Vectors)
	case "chol":
		l, err := linalg.Cholesky(a, *eps)
		if err != nil {
			return err
		}
		printTensor(stdout, "L", l)
	default:
		usage(stderr)
		return errUsage
	}
	return nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Born linalg - batched dense decompositions")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Usage: linalg <command> -shape 2,2 -data 4,3,6,3 [-eps 1e-9] [-v]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "  det        Determinant")
	fmt.Fprintln(w, "  inv        Inverse")
	fmt.Fprintln(w, "  lu         LU with partial pivoting (P, L, U)")
	fmt.Fprintln(w, "  qr         Householder QR")
	fmt.Fprintln(w, "  svd        Singular value decomposition")
	fmt.Fprintln(w, "  eig        Symmetric eigendecomposition")
	fmt.Fprintln(w, "  chol       Cholesky factor")
}

func parseInts(s string) ([]int, error) {
	if s == "" {
		return nil, errors.New("required")
	}
	fields := strings.Split(s, ",")
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	if s == "" {
		return nil, errors.New("required")
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// printTensor writes t as its shape followed by one line per trailing row.
func printTensor(w io.Writer, name string, t *tensor.Tensor[float64]) {
	fmt.Fprintf(w, "%s %v\n", name, t.Shape())
	data := t.Data()
	cols := 1
	if t.Rank() > 0 {
		cols = t.Shape()[t.Rank()-1]
	}
	for lo := 0; lo < len(data); lo += cols {
		row := data[lo : lo+cols]
		parts := make([]string, len(row))
		for i, v := range row {
			parts[i] = strconv.FormatFloat(v, 'g', 6, 64)
		}
		fmt.Fprintf(w, "  [%s]\n", strings.Join(parts, " "))
	}
}
