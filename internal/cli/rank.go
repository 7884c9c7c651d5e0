package cli

import (
	"fmt"

	"go-match-backend/internal/domain"
	"go-match-backend/internal/scoring"

	"github.com/spf13/cobra"
)

type batchFlags struct {
	jobFile        string
	candidatesFile string
	outputFile     string
	topN           int
}

func (f *batchFlags) register(cmd *cobra.Command, topNUsage string) {
	cmd.Flags().StringVar(&f.jobFile, "job", "", "Job profile JSON file")
	cmd.Flags().StringVar(&f.candidatesFile, "candidates", "", "JSON file with an array of candidate profiles")
	cmd.Flags().IntVar(&f.topN, "top-n", -1, topNUsage)
	cmd.Flags().StringVarP(&f.outputFile, "output", "o", "", "Output file path (default: stdout)")
	_ = cmd.MarkFlagRequired("job")
	_ = cmd.MarkFlagRequired("candidates")
}

// scoreBatch scores every candidate in the file against the job. Invalid
// entries and failed pairs are logged and returned as skipped.
func scoreBatch(cmd *cobra.Command, f *batchFlags) (domain.JobProfile, []domain.MatchResult, []domain.SkippedItem, error) {
	cfg := getConfigFromContext(cmd.Context())
	log := getLoggerFromContext(cmd.Context())

	job, err := loadJob(f.jobFile)
	if err != nil {
		return job, nil, nil, err
	}
	candidates, skipped, err := loadCandidates(f.candidatesFile)
	if err != nil {
		return job, nil, nil, err
	}

	outcomes, err := scoring.ScoreCandidates(cmd.Context(), job, candidates, cfg.ScoringWorkers)
	if err != nil {
		return job, nil, nil, err
	}
	results, failed := scoring.Split(outcomes)
	for _, o := range failed {
		skipped = append(skipped, domain.SkippedItem{CandidateID: o.CandidateID, JobID: o.JobID, Reason: o.Err.Error()})
	}
	for _, s := range skipped {
		log.Warn("Candidate skipped", "candidate_id", s.CandidateID, "reason", s.Reason)
	}
	return job, results, skipped, nil
}

func newRankCmd() *cobra.Command {
	var f batchFlags

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank candidates for a job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.topN == -1 {
				f.topN = getConfigFromContext(cmd.Context()).DefaultTopN
			}

			job, results, skipped, err := scoreBatch(cmd, &f)
			if err != nil {
				return err
			}
			ranked, err := scoring.Rank(results, f.topN)
			if err != nil {
				return err
			}

			return writeOutput(cmd, f.outputFile, domain.RankedApplicants{
				JobID:   job.JobID,
				TopN:    f.topN,
				Total:   len(results),
				Results: ranked,
				Skipped: skipped,
			})
		},
	}
	f.register(cmd, "Number of results (default from DEFAULT_TOP_N)")
	return cmd
}

func newDecideCmd() *cobra.Command {
	var f batchFlags

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Split candidates into selected and rejected",
		Long: `Select the top N candidates for a job and reject the rest. Nothing is
persisted; the decision is printed as JSON.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.topN < 0 {
				return fmt.Errorf("%w: --top-n is required and must not be negative", scoring.ErrInvalidArgument)
			}

			job, results, skipped, err := scoreBatch(cmd, &f)
			if err != nil {
				return err
			}
			d, err := scoring.BulkDecide(results, f.topN)
			if err != nil {
				return err
			}

			return writeOutput(cmd, f.outputFile, domain.BulkDecisionReport{
				JobID:         job.JobID,
				TopN:          f.topN,
				Selected:      d.Selected,
				Rejected:      d.Rejected,
				SelectedCount: len(d.Selected),
				RejectedCount: len(d.Rejected),
				Skipped:       skipped,
			})
		},
	}
	f.register(cmd, "Number of candidates to select")
	return cmd
}
