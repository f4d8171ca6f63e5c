package iocache

import (
	"errors"
	"fmt"

	"github.com/huangsam/timelane/internal/contract"
	"github.com/huangsam/timelane/internal/parquet"
)

// ExecuteRunsExport exports the run history to two Parquet files derived from outputFile.
func ExecuteRunsExport(store contract.RunStore, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("run tracking is disabled. Set --runs-backend to export runs")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no layout runs found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total layout runs: %d\n", status.TotalRuns)
	fmt.Printf("Total placement records: %d\n", status.TableSizes[placementsTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve layout runs: %w", err)
	}
	placements, err := store.GetAllPlacements()
	if err != nil {
		return fmt.Errorf("failed to retrieve placements: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".layout_runs.parquet"
	if err := parquet.WriteLayoutRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write layout runs: %w", err)
	}
	fmt.Printf("Exported %d layout runs to: %s\n", len(parquetRuns), runsFile)

	parquetPlacements := parquet.ConvertPlacementRecords(placements)
	placementsFile := outputFile + ".placements.parquet"
	if err := parquet.WritePlacementsParquet(parquetPlacements, placementsFile); err != nil {
		return fmt.Errorf("failed to write placements: %w", err)
	}
	fmt.Printf("Exported %d placements to: %s\n", len(parquetPlacements), placementsFile)

	return nil
}
