package issuer

import (
	"fmt"
	"sync"

	"github.com/anupsv/aeonflux-credentials/internal/obslog"
)

// VerifyBatch verifies multiple presentations concurrently, bounded by a
// fixed worker pool, and returns the first verification error encountered
// (if any) alongside a per-presentation boolean result slice.
func (iss *Issuer) VerifyBatch(presentations []*Presentation) ([]bool, error) {
	results := make([]bool, len(presentations))
	if len(presentations) == 0 {
		return results, nil
	}
	if len(presentations) == 1 {
		err := iss.Verify(presentations[0])
		results[0] = err == nil
		return results, err
	}

	const concurrencyLimit = 4
	sem := make(chan struct{}, concurrencyLimit)
	errCh := make(chan error, len(presentations))
	var wg sync.WaitGroup

	for i, p := range presentations {
		wg.Add(1)
		go func(idx int, pres *Presentation) {
			sem <- struct{}{}
			defer func() {
				<-sem
				wg.Done()
			}()
			if err := iss.Verify(pres); err != nil {
				errCh <- fmt.Errorf("presentation %d: %w", idx, err)
				return
			}
			results[idx] = true
		}(i, p)
	}
	wg.Wait()
	close(errCh)

	var firstErr error
	failed := 0
	for err := range errCh {
		failed++
		if firstErr == nil {
			firstErr = err
		}
	}
	obslog.Infow("batch presentation verification complete", "total", len(presentations), "failed", failed)
	return results, firstErr
}
