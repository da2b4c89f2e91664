package business

import (
	"context"
	"sync"

	"github.com/Legend-Systems/service-media/config"
	"github.com/Legend-Systems/service-media/service/types"
	"github.com/pitabwire/util"
)

type batchOutcome struct {
	index  int
	result *UploadResult
	err    error
}

// UploadBatch fans the units of one bulk request over a bounded pool
// of workers. Units succeed or fail independently, a cancelled
// context fails the units not yet started with a cancellation error.
func (s *mediaService) UploadBatch(ctx context.Context, scope types.AccessScope, req *BatchUploadRequest) (*BatchUploadResult, error) {
	cfg, _ := s.service.Config().(*config.MediaConfig)

	maxUnits := config.BulkUploadUnitsCeiling
	workers := 4
	if cfg != nil {
		maxUnits = cfg.BulkUploadUnits()
		if cfg.BatchWorkerCount > 0 {
			workers = cfg.BatchWorkerCount
		}
	}

	if req == nil || len(req.Units) == 0 {
		return nil, ValidationErrorf("bulk upload requires at least one file")
	}
	if len(req.Units) > maxUnits {
		return nil, ValidationErrorf("bulk upload accepts at most %d files, got %d", maxUnits, len(req.Units))
	}
	if workers > len(req.Units) {
		workers = len(req.Units)
	}

	logger := util.Log(ctx).With("units", len(req.Units), "workers", workers)
	logger.Debug("processing bulk upload")

	jobs := make(chan int)
	outcomes := make(chan batchOutcome, len(req.Units))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes <- batchOutcome{
						index: idx,
						err:   CancelledError(err, "upload cancelled before start"),
					}
					continue
				}
				res, err := s.UploadFile(ctx, scope, req.Units[idx])
				outcomes <- batchOutcome{index: idx, result: res, err: err}
			}
		}()
	}

	for idx := range req.Units {
		select {
		case <-ctx.Done():
			// Units not yet handed to a worker fail as cancelled.
			outcomes <- batchOutcome{
				index: idx,
				err:   CancelledError(ctx.Err(), "upload cancelled before start"),
			}
		case jobs <- idx:
		}
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	collected := make([]batchOutcome, len(req.Units))
	for outcome := range outcomes {
		collected[outcome.index] = outcome
	}

	result := &BatchUploadResult{Total: len(req.Units)}
	for idx, outcome := range collected {
		if outcome.err != nil {
			result.Failed++
			result.Errors = append(result.Errors, UnitError{
				FileName: unitFileName(req.Units[idx]),
				Error:    outcome.err.Error(),
			})
			continue
		}
		result.Successful++
		result.Uploaded = append(result.Uploaded, outcome.result)
	}

	logger.With("successful", result.Successful, "failed", result.Failed).Info("bulk upload done")
	return result, nil
}

func unitFileName(unit *UploadRequest) string {
	if unit == nil {
		return ""
	}
	return unit.FileName
}
