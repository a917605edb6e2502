package textbreak

import (
	"context"
	"fmt"
	"runtime"

	"github.com/gogpu/textbreak/internal/parallel"
)

// WrapAll wraps every text with the same settings, spreading the work
// over WithWorkers goroutines. Results are in input order.
//
// The arguments are validated once, before any text is measured. The
// first text that fails cancels the texts not yet started; its error is
// returned annotated with the text's index and no results are returned.
func (w *Wrapper) WrapAll(ctx context.Context, texts []string, maxWidth float64, font string, maxLines int) ([]*Result, error) {
	if err := checkMaxWidth(maxWidth); err != nil {
		return nil, err
	}
	if maxLines < NoLimit {
		return nil, ErrInvalidLineLimit
	}

	workers := w.opts.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	pool := parallel.NewPool(min(workers, max(len(texts), 1)))
	defer pool.Close()

	results := make([]*Result, len(texts))
	err := pool.Run(ctx, len(texts), func(i int) error {
		res, err := w.Wrap(texts[i], maxWidth, font, maxLines)
		if err != nil {
			return fmt.Errorf("textbreak: text %d: %w", i, err)
		}
		results[i] = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}
