package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiowebux/carcli/internal/mutation"
	"github.com/studiowebux/carcli/internal/types"
	"gopkg.in/yaml.v3"
)

// Mutator is the subset of mutation.Controller used by the CLI
type Mutator interface {
	Create(ctx context.Context, draft types.CarDraft) (types.CarRecord, error)
	Update(ctx context.Context, id string, draft types.CarDraft) (types.CarRecord, error)
	Delete(ctx context.Context, id, label string) error
}

// DraftOptions contains options for create and update
type DraftOptions struct {
	FilePath string
	Output   string // json, yaml or text
	Out      io.Writer
	ErrOut   io.Writer
}

// DeleteOptions contains options for delete
type DeleteOptions struct {
	Label       string // Shown in the confirmation, defaults to the id
	Yes         bool   // Skip confirmation
	Interactive bool
	In          io.Reader
	Out         io.Writer
}

// ErrCancelled is returned when the user declines a confirmation
var ErrCancelled = errors.New("cancelled by user")

// Create reads a draft file and creates the car
func Create(ctx context.Context, m Mutator, opts DraftOptions) error {
	draft, err := LoadDraft(opts.FilePath)
	if err != nil {
		return err
	}

	car, err := m.Create(ctx, draft)
	if err != nil {
		reportFieldErrors(opts.ErrOut, err)
		return err
	}
	return writeRecord(opts.Out, car, opts.Output, "Created")
}

// Update reads a draft file and replaces car id
func Update(ctx context.Context, m Mutator, id string, opts DraftOptions) error {
	draft, err := LoadDraft(opts.FilePath)
	if err != nil {
		return err
	}

	car, err := m.Update(ctx, id, draft)
	if err != nil {
		reportFieldErrors(opts.ErrOut, err)
		return err
	}
	return writeRecord(opts.Out, car, opts.Output, "Updated")
}

// Delete removes car id after confirmation
func Delete(ctx context.Context, m Mutator, id string, opts DeleteOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	label := opts.Label
	if label == "" {
		label = id
	}

	if !opts.Yes {
		if !opts.Interactive {
			return fmt.Errorf("refusing to delete %s without confirmation (non-interactive mode). Use --yes", id)
		}
		ok, err := confirm(opts.In, out, fmt.Sprintf("Delete %s?", label))
		if err != nil {
			return err
		}
		if !ok {
			return ErrCancelled
		}
	}

	if err := m.Delete(ctx, id, label); err != nil {
		return err
	}
	fmt.Fprintf(out, "%sDeleted%s %s\n", colorGreen, colorReset, label)
	return nil
}

// confirm asks a y/N question
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	fmt.Fprintf(out, "%s [y/N]: ", question)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read input: %w", err)
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}

// LoadDraft reads a car draft from a YAML or JSON file
func LoadDraft(path string) (types.CarDraft, error) {
	var draft types.CarDraft

	resolved, err := resolveFilePath(path)
	if err != nil {
		return draft, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return draft, fmt.Errorf("failed to read draft file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(resolved)) {
	case ".json":
		if err := json.Unmarshal(data, &draft); err != nil {
			return draft, fmt.Errorf("failed to parse JSON draft: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &draft); err != nil {
			return draft, fmt.Errorf("failed to parse YAML draft: %w", err)
		}
	}
	return draft, nil
}

// resolveFilePath attempts to find the actual file path, trying common extensions
// if the exact path doesn't exist.
func resolveFilePath(basePath string) (string, error) {
	if basePath == "" {
		return "", fmt.Errorf("no draft file given (use -f)")
	}

	extensions := []string{"", ".yaml", ".yml", ".json"}
	for _, ext := range extensions {
		candidate := basePath + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("file not found: %s (tried .yaml, .yml, .json extensions)", basePath)
}

func writeRecord(out io.Writer, car types.CarRecord, format, verb string) error {
	if out == nil {
		out = os.Stdout
	}

	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(car, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case OutputYAML:
		data, err := yaml.Marshal(car)
		if err != nil {
			return err
		}
		fmt.Fprint(out, string(data))
	default:
		fmt.Fprintf(out, "%s%s%s %s (%s)\n", colorGreen, verb, colorReset, car.Label(), car.ID)
	}
	return nil
}

// reportFieldErrors prints per-field errors of a failed mutation
func reportFieldErrors(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	var mutErr *mutation.MutationError
	if !errors.As(err, &mutErr) || len(mutErr.Fields) == 0 {
		return
	}

	fmt.Fprintf(w, "%sInvalid car:%s\n", colorRed, colorReset)
	for _, field := range mutErr.Fields.Fields() {
		fmt.Fprintf(w, "%s  %s: %s%s\n", colorYellow, field, mutErr.Fields[field], colorReset)
	}
}
