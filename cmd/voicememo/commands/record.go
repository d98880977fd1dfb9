// ABOUTME: CLI command to record a voice memo and run it through the pipeline
// ABOUTME: Captures audio, saves the row, transcribes, and indexes the transcript
package commands

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/voicememo/internal/recorder"
	"github.com/joho/godotenv"
)

var (
	recordDuration       time.Duration
	recordSkipTranscribe bool
	recordSkipIndex      bool
)

// NewRecordCmd creates the record command
func NewRecordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a voice memo and process it",
		Long: `Record a voice memo and run it through the pipeline.

Recording stops after --duration, or on Ctrl-C when no duration is
given. The saved memo is then transcribed with Whisper and indexed in
the vector store. Each stage is independent: if transcription or
indexing fails the memo keeps its last-good state and the stage can be
retried later.

Examples:
  voicememo record
  voicememo record --duration 30s
  voicememo record --skip-index`,
		RunE: runRecord,
	}

	cmd.Flags().DurationVar(&recordDuration, "duration", 0, "Stop recording after this long (0 = wait for Ctrl-C)")
	cmd.Flags().BoolVar(&recordSkipTranscribe, "skip-transcribe", false, "Save the audio without transcribing")
	cmd.Flags().BoolVar(&recordSkipIndex, "skip-index", false, "Transcribe without indexing in the vector store")

	return cmd
}

func runRecord(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	d, err := openDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	scratch := d.scratchDir()
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return fmt.Errorf("creating scratch directory: %w", err)
	}

	// Collect leftovers from crashed or interrupted runs
	if err := recorder.PurgeScratch(scratch); err != nil && verbose {
		log.Printf("scratch purge: %v", err)
	}

	rec := recorder.New(d.cfg.RecorderBin)
	dest := recorder.NewScratchPath(scratch)
	ctx := cmd.Context()

	if err := rec.Start(ctx, dest); err != nil {
		return fmt.Errorf("starting recording: %w", err)
	}

	if recordDuration > 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Recording for %s...\n", recordDuration)
		}
		time.Sleep(recordDuration)
	} else {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Recording... press Ctrl-C to stop")
		}
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		signal.Stop(sig)
	}

	if err := rec.Stop(); err != nil {
		return fmt.Errorf("stopping recording: %w", err)
	}

	repo := d.repository()

	saved := repo.SaveMemo(ctx, dest)
	memo, ok := saved.Value()
	if !ok {
		return fmt.Errorf("saving memo: %w", saved.Err())
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Saved memo %d (%s)\n", memo.ID, memo.AudioFilePath)
	}

	if recordSkipTranscribe {
		return nil
	}
	if d.llmClient == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "OPENAI_API_KEY not set; skipping transcription")
		return nil
	}

	memoID := memo.ID
	transcribed := repo.TranscribeMemo(ctx, memo)
	memo, ok = transcribed.Value()
	if !ok {
		return fmt.Errorf("transcribing memo %d (audio is saved, retry later): %w", memoID, transcribed.Err())
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Transcribed: %s\n", truncate(memo.Transcription, 120))
	}

	if recordSkipIndex {
		return nil
	}
	if d.vectorClient == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "PINECONE_INDEX_HOST not set; skipping vector index")
		return nil
	}

	indexed := repo.SaveToVectorDB(ctx, memo)
	memo, ok = indexed.Value()
	if !ok {
		return fmt.Errorf("indexing memo %d (transcript is saved, retry later): %w", memoID, indexed.Err())
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed as vector %s\n", memo.VectorID)
	}

	return nil
}
