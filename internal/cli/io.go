package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"go-match-backend/internal/domain"
	"go-match-backend/pkg/validation"

	"github.com/spf13/cobra"
)

func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func loadJob(path string) (domain.JobProfile, error) {
	var job domain.JobProfile
	if err := readJSON(path, &job); err != nil {
		return job, err
	}
	if err := validation.New().Struct(job); err != nil {
		return job, fmt.Errorf("invalid job in %s: %s", path, strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return job, nil
}

func loadCandidate(path string) (domain.CandidateProfile, error) {
	var c domain.CandidateProfile
	if err := readJSON(path, &c); err != nil {
		return c, err
	}
	if err := validation.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid candidate in %s: %s", path, strings.Join(validation.FormatValidationErrors(err), "; "))
	}
	return c, nil
}

// loadCandidates reads a JSON array of candidates. Entries that fail
// validation are returned as skipped instead of failing the whole file.
func loadCandidates(path string) ([]domain.CandidateProfile, []domain.SkippedItem, error) {
	var raw []domain.CandidateProfile
	if err := readJSON(path, &raw); err != nil {
		return nil, nil, err
	}

	validate := validation.New()
	candidates := make([]domain.CandidateProfile, 0, len(raw))
	var skipped []domain.SkippedItem
	for i, c := range raw {
		if err := validate.Struct(c); err != nil {
			skipped = append(skipped, domain.SkippedItem{
				CandidateID: c.CandidateID,
				Reason:      fmt.Sprintf("entry %d: %s", i, strings.Join(validation.FormatValidationErrors(err), "; ")),
			})
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, skipped, nil
}

// writeOutput prints v as indented JSON to the --output file or stdout.
// Flush and close errors on the file are reported.
func writeOutput(cmd *cobra.Command, outputFile string, v interface{}) (err error) {
	if outputFile == "" {
		return encodeJSON(cmd.OutOrStdout(), v)
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := encodeJSON(w, v); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
