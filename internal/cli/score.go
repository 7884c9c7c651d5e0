package cli

import (
	"fmt"

	"go-match-backend/internal/scoring"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var candidateFile, jobFile, outputFile string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score one candidate against one job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := getLoggerFromContext(cmd.Context())

			candidate, err := loadCandidate(candidateFile)
			if err != nil {
				return err
			}
			job, err := loadJob(jobFile)
			if err != nil {
				return err
			}

			result, err := scoring.Score(candidate, job)
			if err != nil {
				return fmt.Errorf("failed to score: %w", err)
			}
			log.Debug("Scored candidate", "candidate_id", result.CandidateID, "job_id", result.JobID, "overall", result.Overall)
			return writeOutput(cmd, outputFile, result)
		},
	}

	cmd.Flags().StringVar(&candidateFile, "candidate", "", "Candidate profile JSON file")
	cmd.Flags().StringVar(&jobFile, "job", "", "Job profile JSON file")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (default: stdout)")
	_ = cmd.MarkFlagRequired("candidate")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func newWeightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weights",
		Short: "Print the scoring weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOutput(cmd, "", scoring.DefaultWeights)
		},
	}
}
