package pagser

import (
	"context"
	"errors"
)

// ShutdownWithContext runs shutdownFunc and waits for it until ctx is done. When ctx expires first,
// forceCloseFunc (if any) is called and the context error is returned joined with its result.
func ShutdownWithContext(ctx context.Context, shutdownFunc func(ctx context.Context) error, forceCloseFunc func() error) error {
	errCh := make(chan error, 1)

	go func() {
		errCh <- shutdownFunc(ctx)
	}()

	select {
	case <-ctx.Done():
		err := ctx.Err()

		if forceCloseFunc != nil {
			err = errors.Join(err, forceCloseFunc())
		}

		return err
	case err := <-errCh:
		return err
	}
}
